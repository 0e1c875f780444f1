// Package api provides the HTTP server exposing the A2A endpoint, health
// check, and context management routes.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":5001")
	ListenAddr string
}
