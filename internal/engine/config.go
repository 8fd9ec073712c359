package engine

import (
	"net/http"
	"time"
)

// LLMConfig holds the Anthropic summarization settings. Every field is
// checked by ValidateLLMConfig before the first network call.
type LLMConfig struct {
	APIKey            string
	APIBase           string // override for tests; defaults to api.anthropic.com
	Model             string
	Temperature       float64
	MaxTokens         int
	TopP              float64
	TopK              int
	Prompt            string // instructional prompt prepended to the transcript
	RequestsPerMinute int    // client-side throttle; 0 = unlimited
}

// Config holds all engine configuration, injected from main.
type Config struct {
	LLM                  LLMConfig
	Language             string // preferred caption language code
	BucketSeconds        int    // transcript timestamp bucket width
	NotesFolder          string // vault folder for captured transcripts ("" = root)
	Debug                bool
	FetchTimeout         time.Duration // bound on one full transcript fetch (page + captions)
	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
}
