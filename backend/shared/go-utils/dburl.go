package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// WithIsolatedRole swaps the user in baseURL for a per-CI-run role so that
// parallel test runs each get their own schema.
func WithIsolatedRole(baseURL, runnerID, runNumber string) (string, error) {
	if runnerID == "" || runNumber == "" {
		return "", fmt.Errorf("runnerID and runNumber must be non-empty")
	}

	role := strings.ToLower(runnerID + "-" + runNumber)

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid DB URL: %w", err)
	}

	// Preserve the existing password (if any) but swap the user.
	password, _ := u.User.Password()
	u.User = url.UserPassword(role, password)

	return u.String(), nil
}

// RedactDBURL hides the password so the URL can be logged.
func RedactDBURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	return u.Redacted()
}
