// Command beacon audits how readable a website is for automated content
// consumers. It runs one-shot audits to stdout or serves the HTTP API.
//
// Usage:
//
//	beacon -url https://example.com -depth 2
//	beacon -serve -addr :8080
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tmarchev/beacon/internal/app"
	"github.com/tmarchev/beacon/internal/cli"
	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/report"
	"github.com/tmarchev/beacon/internal/server"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("beacon: %v", err)
	}

	cfg := app.DefaultConfig()
	if args.StorageRoot != "" {
		cfg.StorageRoot = args.StorageRoot
	}
	if args.Concurrency > 0 {
		cfg.CrawlerCfg.Concurrency = args.Concurrency
	}
	if args.MaxPages > 0 {
		cfg.CrawlerCfg.MaxPages = args.MaxPages
	}

	if args.Serve {
		runServer(args, cfg)
		return
	}
	runOnce(args, cfg)
}

func runServer(args *cli.CLIArgs, cfg *app.Config) {
	srv, err := server.NewServer(server.Config{
		ListenAddr: args.Addr,
		AppConfig:  cfg,
	})
	if err != nil {
		log.Fatalf("beacon: %v", err)
	}
	defer srv.Close()

	httpSrv := srv.HTTPServer()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		httpSrv.Close()
	}()

	fmt.Printf("beacon API listening on %s\n", args.Addr)
	if err := httpSrv.ListenAndServe(); err != nil {
		log.Printf("server stopped: %v", err)
	}
}

func runOnce(args *cli.CLIArgs, cfg *app.Config) {
	// One-shot runs log to stderr so stdout stays clean for the report.
	logger := logging.NewWriterLogger("beacon", os.Stderr)
	orch := app.NewOrchestrator(cfg, nil, nil, logger)

	rep, err := orch.RunAudit(context.Background(), args.URL, args.Depth)
	if err != nil {
		log.Fatalf("beacon: audit failed: %v", err)
	}

	if args.Format == "json" {
		err = report.WriteJSON(os.Stdout, rep)
	} else {
		err = report.WriteText(os.Stdout, rep)
	}
	if err != nil {
		log.Fatalf("beacon: write report: %v", err)
	}
}
