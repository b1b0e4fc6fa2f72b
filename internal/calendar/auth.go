package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

const (
	clientSecretsFile = "credentials.json"
	tokenFile         = "token.json"
)

// httpClient builds an authorized HTTP client from a previously stored
// OAuth token. The daemon never runs an interactive flow; the token file
// has to exist already.
func httpClient(ctx context.Context, credentialsDir string) (*http.Client, error) {
	secrets, err := os.ReadFile(filepath.Join(credentialsDir, clientSecretsFile))
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}

	cfg, err := google.ConfigFromJSON(secrets, gcal.CalendarEventsScope, gcal.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}

	tok, err := tokenFromFile(filepath.Join(credentialsDir, tokenFile))
	if err != nil {
		return nil, fmt.Errorf("no stored token (%w); authorize the app first", err)
	}

	return cfg.Client(ctx, tok), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}
