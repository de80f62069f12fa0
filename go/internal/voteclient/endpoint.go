package voteclient

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultPath is where the results service accepts WebSocket connections.
const DefaultPath = "/ws"

// EndpointFromPage derives the WebSocket endpoint from the URL of the page
// hosting the client: https pages use wss, anything else uses ws.
func EndpointFromPage(pageURL, path string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page url: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid page url %q: missing host", pageURL)
	}

	scheme := "ws"
	if strings.EqualFold(u.Scheme, "https") {
		scheme = "wss"
	}
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	endpoint := url.URL{Scheme: scheme, Host: u.Host, Path: path}
	return endpoint.String(), nil
}

// httpURL maps a ws(s) endpoint to the http(s) origin serving it.
func httpURL(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	out := *u
	switch strings.ToLower(u.Scheme) {
	case "ws", "http":
		out.Scheme = "http"
	case "wss", "https":
		out.Scheme = "https"
	default:
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	out.Path = "/"
	out.RawQuery = ""
	return &out, nil
}
