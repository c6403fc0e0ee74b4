package main

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"

	"github.com/tmarchev/beacon/internal/app"
	"github.com/tmarchev/beacon/internal/demosite"
	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/report"
)

func main() {
	site := httptest.NewServer(demosite.NewDemoSite(demosite.DefaultConfig()).Handler())
	defer site.Close() // Close AFTER auditing

	logger := logging.NewWriterLogger("demo", os.Stderr)
	orch := app.NewOrchestrator(app.DefaultConfig(), nil, nil, logger)

	rep, err := orch.RunAudit(context.Background(), site.URL, 2)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	_ = report.WriteText(os.Stdout, rep)
}
