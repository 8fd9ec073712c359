package engine

import "strings"

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot    = "GoTLDR/1.0"
	UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// entityReplacer reverses the entities YouTube leaves in timedtext payloads.
// A single pass keeps the decode idempotent on already-decoded text.
var entityReplacer = strings.NewReplacer(
	"&#39;", "'",
	"&amp;", "&",
	"&quot;", `"`,
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

// DecodeEntities decodes the standard HTML entities found in caption text.
func DecodeEntities(s string) string {
	return entityReplacer.Replace(s)
}
