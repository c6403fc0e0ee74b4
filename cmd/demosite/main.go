// Command demosite starts the beacon demo site for demonstrating audits.
// Usage: go run ./cmd/demosite [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/tmarchev/beacon/internal/demosite"
)

func main() {
	cfg := demosite.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   Beacon Demo Site")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Pages on this site exercise every audit check:")
	fmt.Println("  /           structured home page with links")
	fmt.Println("  /article    well-formed article with schema")
	fmt.Println("  /article-v2 near-duplicate of the article")
	fmt.Println("  /gallery    images missing alt text")
	fmt.Println("  /spa        script-dependent shell, noindex")
	fmt.Println("  /bare       nearly empty page")
	fmt.Println()
	fmt.Printf("Audit it with: beacon -url http://localhost:%d -depth 2\n", cfg.Port)
	fmt.Println()

	site := demosite.NewDemoSite(cfg)
	if err := site.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
