package voteclient

import "time"

// ConnectionConfig holds configuration for the WebSocket connection
type ConnectionConfig struct {
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	ReadTimeout      time.Duration
	PingInterval     time.Duration
	MaxMessageSize   int64
	ReadBufferSize   int
	WriteBufferSize  int
	SendBufferSize   int
}

// Config holds configuration for a vote client session
type Config struct {
	// URL is the ws:// or wss:// endpoint of the results service.
	URL        string
	Connection ConnectionConfig
}

// DefaultConnectionConfig returns default WebSocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		ReadTimeout:      60 * time.Second,
		PingInterval:     30 * time.Second,
		MaxMessageSize:   64 * 1024, // results carry every option
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		SendBufferSize:   16,
	}
}

// DefaultConfig returns a config for url with default connection settings.
func DefaultConfig(url string) Config {
	return Config{
		URL:        url,
		Connection: DefaultConnectionConfig(),
	}
}
