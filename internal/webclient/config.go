package webclient

import "time"

// Config selects and tunes the webclient backend.
type Config struct {
	// Backend names a registered backend constructor; empty means "nethttp".
	Backend string

	// Timeout is the per-request deadline. A hanging page must never stall
	// the whole crawl past this bound.
	Timeout time.Duration

	// UserAgent is sent on every request when the caller set none.
	UserAgent string
}

// DefaultConfig returns the nethttp backend with a 10 second timeout.
func DefaultConfig() Config {
	return Config{
		Backend:   "nethttp",
		Timeout:   10 * time.Second,
		UserAgent: "BeaconBot/1.0 (+https://github.com/tmarchev/beacon)",
	}
}
