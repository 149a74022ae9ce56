// Package resolver classifies opaque video/channel identifiers and recovers
// the canonical source-specific ID. It is pure string logic: no I/O.
package resolver

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
)

// Result is a resolved identifier: which source it belongs to and the
// source-native ID with any prefix or URL wrapping stripped.
type Result struct {
	Source      model.Source
	CanonicalID string
}

// Prefixes that mark an ID as external regardless of what follows them.
var externalPrefixes = []string{"external-", "google-search-"}

// tokenRe matches the external platform's 11-character video ID alphabet.
var tokenRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Resolve classifies id. The rules run in order: known source prefix, then
// watch-page URL forms, then the bare 11-character token heuristic, and
// finally local. Ordering matters because a local catalog ID could
// coincidentally be 11 characters long.
func Resolve(id string) Result {
	id = strings.TrimSpace(id)

	for _, p := range externalPrefixes {
		if rest, ok := strings.CutPrefix(id, p); ok && rest != "" {
			return Result{Source: model.SourceExternal, CanonicalID: rest}
		}
	}

	if token := extractURLToken(id); token != "" {
		return Result{Source: model.SourceExternal, CanonicalID: token}
	}

	if tokenRe.MatchString(id) {
		return Result{Source: model.SourceExternal, CanonicalID: id}
	}

	return Result{Source: model.SourceLocal, CanonicalID: id}
}

// extractURLToken pulls the 11-character video token out of any of the
// platform's known URL shapes: watch pages, short links, embeds and shorts.
// Returns "" if id is not a recognized URL.
func extractURLToken(id string) string {
	if !strings.Contains(id, "://") && !strings.HasPrefix(id, "www.") &&
		!strings.HasPrefix(id, "youtube.com") && !strings.HasPrefix(id, "youtu.be") {
		return ""
	}

	raw := id
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var token string
	switch host {
	case "youtube.com":
		switch {
		case u.Path == "/watch":
			token = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			token = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			token = strings.TrimPrefix(u.Path, "/shorts/")
		case strings.HasPrefix(u.Path, "/v/"):
			token = strings.TrimPrefix(u.Path, "/v/")
		}
	case "youtu.be":
		token = strings.TrimPrefix(u.Path, "/")
	default:
		return ""
	}

	token = strings.TrimSuffix(token, "/")
	if i := strings.IndexAny(token, "/?&"); i >= 0 {
		token = token[:i]
	}
	if tokenRe.MatchString(token) {
		return token
	}
	return ""
}
