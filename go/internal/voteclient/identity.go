package voteclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

const (
	// VoterCookie is the cookie the results service uses to tell voters apart.
	VoterCookie = "usuario_id"
	// VoterIDPath issues a fresh voter cookie.
	VoterIDPath = "/obter-usuario-id"
)

// NewCookieJar returns a jar shared by the identity request and the WebSocket dialer.
func NewCookieJar() http.CookieJar {
	jar, _ := cookiejar.New(nil) // only fails on a bad public suffix list option
	return jar
}

// SetVoterID stores a known voter id for the origin serving endpoint.
func SetVoterID(jar http.CookieJar, endpoint, voterID string) error {
	origin, err := httpURL(endpoint)
	if err != nil {
		return err
	}
	jar.SetCookies(origin, []*http.Cookie{{
		Name:  VoterCookie,
		Value: voterID,
		Path:  "/",
	}})
	return nil
}

// VoterID returns the voter id currently held in jar for endpoint, if any.
func VoterID(jar http.CookieJar, endpoint string) (string, bool) {
	origin, err := httpURL(endpoint)
	if err != nil {
		return "", false
	}
	for _, c := range jar.Cookies(origin) {
		if c.Name == VoterCookie {
			return c.Value, true
		}
	}
	return "", false
}

// FetchVoterID asks the service for a voter id. The response's Set-Cookie lands in
// the client's jar, which the dialer then presents on the WebSocket handshake.
func FetchVoterID(ctx context.Context, client *http.Client, endpoint string) (string, error) {
	origin, err := httpURL(endpoint)
	if err != nil {
		return "", err
	}
	origin.Path = VoterIDPath

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build voter id request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch voter id: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch voter id: status %d", resp.StatusCode)
	}

	var body struct {
		VoterID string `json:"usuario_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode voter id: %w", err)
	}
	if body.VoterID == "" {
		return "", fmt.Errorf("failed to fetch voter id: empty id")
	}

	// Older servers answer without Set-Cookie; keep the id either way.
	if client.Jar != nil {
		if _, ok := VoterID(client.Jar, endpoint); !ok {
			if err := SetVoterID(client.Jar, endpoint, body.VoterID); err != nil {
				return "", err
			}
		}
	}
	return body.VoterID, nil
}
