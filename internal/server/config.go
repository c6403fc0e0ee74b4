package server

import (
	"github.com/tmarchev/beacon/internal/app"
	"github.com/tmarchev/beacon/internal/logging"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server (the CLI
	// uses the orchestrator in-process and does not require the network).
	ListenAddr string

	// AppConfig configures the audit pipeline. Nil gets the defaults.
	AppConfig *app.Config

	// Logger for the server and everything it constructs. Nil gets a
	// stdout logger.
	Logger logging.Logger
}
