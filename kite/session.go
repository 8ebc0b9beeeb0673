package kite

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/goaltrack"
)

const sessionFile = "goaltrack-kite-session"

// Session is an authenticated broker session. The zero session is not
// authenticated; demo sessions never touch the network.
type Session struct {
	Token string `json:"token"`
	Demo  bool   `json:"demo,omitempty"`
}

func sessionPath() string {
	return filepath.Join(os.TempDir(), sessionFile)
}

// LoadSession reads the stored session. A missing file yields a nil
// session, which every call treats as unauthenticated.
func LoadSession() (*Session, error) {
	data, err := os.ReadFile(sessionPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read kite session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("cannot parse kite session: %w", err)
	}
	return &s, nil
}

// Save stores the session for later commands.
func (s *Session) Save() error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(sessionPath(), data, 0600); err != nil {
		return fmt.Errorf("cannot save kite session: %w", err)
	}
	return nil
}

// ClearSession forgets the stored session. Clearing an absent session is
// a no-op.
func ClearSession() error {
	err := os.Remove(sessionPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Authenticated reports whether the session can be used for broker calls.
func (s *Session) Authenticated() bool {
	return s != nil && (s.Demo || s.Token != "")
}

// LoginURL returns the Kite Connect login page the user must visit to
// obtain a request token.
func LoginURL() (string, error) {
	key := apiKey()
	if key == "" {
		return "", fmt.Errorf("kite API key is not configured, set " + apiKeyEnv)
	}
	return "https://kite.zerodha.com/connect/login?v=3&api_key=" + url.QueryEscape(key), nil
}

// GenerateSession exchanges the request token from the login redirect for
// an access token, per the Kite Connect v3 protocol: the checksum is the
// SHA-256 of api_key + request_token + api_secret.
func GenerateSession(ctx context.Context, requestToken string) (*Session, error) {
	key, secret := apiKey(), apiSecret()
	if key == "" || secret == "" {
		return nil, fmt.Errorf("kite API key/secret are not configured, set %s and %s", apiKeyEnv, apiSecretEnv)
	}
	if requestToken == "" {
		return nil, fmt.Errorf("no request token provided")
	}

	checksum := fmt.Sprintf("%x", sha256.Sum256([]byte(key+requestToken+secret)))
	form := url.Values{
		"api_key":       {key},
		"request_token": {requestToken},
		"checksum":      {checksum},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/session/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Kite-Version", "3")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot generate kite session: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot generate kite session: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("cannot parse kite session response: %w", err)
	}
	if payload.Data.AccessToken == "" {
		return nil, fmt.Errorf("kite session response carries no access token")
	}
	return &Session{Token: payload.Data.AccessToken}, nil
}

// DemoSession returns a session that serves canned data without any
// network call or credentials.
func DemoSession() *Session { return &Session{Demo: true} }

// unauthenticated wraps the sentinel with a hint for the user.
func unauthenticated() error {
	return fmt.Errorf("%w: no valid kite session, run 'gt login' or 'gt demo' first", goaltrack.ErrUnauthenticated)
}
