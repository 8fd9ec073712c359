package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the capture and summarization pipelines. Stages wrap
// these with %w so callers can classify failures with errors.Is.
var (
	ErrInvalidURL       = errors.New("invalid video URL")
	ErrPageFetch        = errors.New("video page fetch failed")
	ErrMetadataNotFound = errors.New("player metadata not found")
	ErrNoCaptions       = errors.New("no captions available")
	ErrCaptionFetch     = errors.New("caption fetch failed")
	ErrEmptyContent     = errors.New("content is empty")
	ErrInvalidInput     = errors.New("invalid input")
	ErrPersistence      = errors.New("note creation failed")
	ErrRateLimit        = errors.New("rate limit exceeded")
	ErrConnection       = errors.New("connection to summarization endpoint failed")
)

// ConfigError reports the first invalid summarization setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Field, e.Reason)
}

// APIError carries an error reported by the summarization endpoint itself,
// with the structured message surfaced verbatim.
type APIError struct {
	Type    string
	Message string
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}
