package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Normalize parses arbitrary user input into a canonical video reference.
// Recognized forms, in precedence order: standard watch URL, youtu.be
// short link, shorts, embed, and the legacy /v/ form. The identifier is
// always the 11-character segment of the matching form.
func Normalize(rawInput string) (VideoRef, error) {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		return VideoRef{}, fmt.Errorf("%w: empty input", engine.ErrInvalidURL)
	}

	// url.Parse treats scheme-less input as a bare path.
	if !strings.Contains(input, "://") {
		input = "https://" + input
	}
	u, err := url.Parse(input)
	if err != nil {
		return VideoRef{}, fmt.Errorf("%w: %q", engine.ErrInvalidURL, rawInput)
	}

	id := extractVideoID(u)
	if id == "" {
		return VideoRef{}, fmt.Errorf("%w: %q", engine.ErrInvalidURL, rawInput)
	}

	return VideoRef{ID: id, CanonicalURL: watchURLPrefix + id}, nil
}

// extractVideoID matches the host and path against the recognized URL
// shapes. Host matching is exact (after stripping www./m.) so lookalike
// domains never yield an identifier.
func extractVideoID(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "youtube.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); videoIDRe.MatchString(id) {
				return id
			}
			return ""
		}
		for _, prefix := range []string{"/shorts/", "/embed/", "/v/"} {
			if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
				id, _, _ := strings.Cut(rest, "/")
				if videoIDRe.MatchString(id) {
					return id
				}
				return ""
			}
		}
	case "youtu.be":
		id := strings.TrimPrefix(u.Path, "/")
		id, _, _ = strings.Cut(id, "/")
		if videoIDRe.MatchString(id) {
			return id
		}
	}
	return ""
}
