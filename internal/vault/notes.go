package vault

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

// invalidFilenameChars are stripped from titles before use as filenames.
const invalidFilenameChars = `\/:*?"<>|`

// NoteFileName converts a video title into a safe markdown filename.
func NoteFileName(title string) string {
	safe := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return -1
		}
		return r
	}, title)
	return strings.TrimSpace(safe) + ".md"
}

// TranscriptNote renders a captured transcript note: front matter carrying
// the canonical URL and creation date, then the formatted transcript.
func TranscriptNote(url, transcript string) string {
	return fmt.Sprintf("---\nurl: %s\ncreated: %s\n---\n\n%s", url, currentDate(), transcript)
}

// SummaryNote renders a summary note: front matter with a back-reference to
// the parent note, creation date and cost, then the summary under a heading.
func SummaryNote(parentBase, summary string, cost float64) string {
	return fmt.Sprintf("---\nparent: [[%s]]\ncreated: %s\ncost: %s\n---\n\n# Summary of %s\n\n%s",
		parentBase, currentDate(), FormatCost(cost), parentBase, summary)
}

// SummaryPath derives the summary note path from its parent: extension
// removed, "-summary" appended, extension restored.
func SummaryPath(parentPath string) string {
	ext := path.Ext(parentPath)
	return strings.TrimSuffix(parentPath, ext) + "-summary" + ext
}

// ParentBase returns the parent note's name without folder or extension,
// as used in the [[wikilink]] back-reference and summary heading.
func ParentBase(parentPath string) string {
	base := path.Base(parentPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// FormatCost renders a cost with minimal digits that round-trip.
func FormatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'g', -1, 64)
}

// currentDate returns today's date in ISO 8601 format (UTC).
func currentDate() string {
	return time.Now().UTC().Format("2006-01-02")
}
