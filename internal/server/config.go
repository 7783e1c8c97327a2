package server

// Config holds the HTTP server configuration.
type Config struct {
	// Host is the bind address.
	Host string

	// Port is the listen port.
	Port int

	// PathPrefix is prepended to all API routes, e.g. "/api/v1".
	PathPrefix string

	// CORSOrigins are the allowed cross-origin hosts; empty disables
	// CORS, "*" allows all.
	CORSOrigins []string
}

// DefaultConfig returns a server configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:       "localhost",
		Port:       8080,
		PathPrefix: "/api/v1",
	}
}
