// Package version handles update checks against GitHub releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/reap-dev/git-reap/internal/config"
)

// ReleaseURL is the endpoint queried for the latest release.
const ReleaseURL = "https://api.github.com/repos/reap-dev/git-reap/releases/latest"

const checkInterval = 24 * time.Hour

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check queries GitHub for a newer release at most once per day, using the
// config timestamps to throttle. Network and API failures are silent; the
// check must never break a sweep.
func Check(ctx context.Context, current string, cfg *config.Config) (latest string, ok bool) {
	now := time.Now().Unix()

	if now-cfg.LastVersionCheck < int64(checkInterval.Seconds()) {
		if newer(current, cfg.LatestKnownVersion) {
			return cfg.LatestKnownVersion, true
		}
		return "", false
	}

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleaseURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", "git-reap/"+current)

	resp, err := client.Do(req)
	if err != nil {
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", false
	}

	cfg.LastVersionCheck = now
	cfg.LatestKnownVersion = rel.TagName
	if _, saveErr := config.Save(*cfg, ""); saveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record version check: %v\n", saveErr)
	}

	if newer(current, rel.TagName) {
		return rel.TagName, true
	}
	return "", false
}

// Notify prints a short update notice.
func Notify(out io.Writer, current, latest string) {
	_, _ = fmt.Fprintf(out, "A newer git-reap is available: %s (you have %s).\n", latest, current)
	_, _ = fmt.Fprintln(out, "Get it at https://github.com/reap-dev/git-reap/releases/latest")
}

// newer compares versions as strings after stripping a leading "v".
func newer(current, candidate string) bool {
	if candidate == "" {
		return false
	}
	return strings.TrimPrefix(candidate, "v") > strings.TrimPrefix(current, "v")
}
