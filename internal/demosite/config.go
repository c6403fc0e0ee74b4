package demosite

// Config holds configuration for the demo site.
type Config struct {
	// Port is the port on which the demo site listens.
	Port int

	// BlockAIAgents serves a robots.txt disallowing AI crawler agents, for
	// demonstrating the robots check failing.
	BlockAIAgents bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Port: 9999}
}
