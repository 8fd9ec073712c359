package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	PageFetches      atomic.Int64
	PageFetchErrors  atomic.Int64
	CaptionFetches   atomic.Int64
	LLMCalls         atomic.Int64
	LLMErrors        atomic.Int64
	NotesCreated     atomic.Int64
	SummariesCreated atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"page_fetches":      metrics.PageFetches.Load(),
		"page_fetch_errors": metrics.PageFetchErrors.Load(),
		"caption_fetches":   metrics.CaptionFetches.Load(),
		"llm_calls":         metrics.LLMCalls.Load(),
		"llm_errors":        metrics.LLMErrors.Load(),
		"notes_created":     metrics.NotesCreated.Load(),
		"summaries_created": metrics.SummariesCreated.Load(),
		"cache_hits":        hits,
		"cache_misses":      misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"page_fetches", "page_fetch_errors", "caption_fetches",
		"llm_calls", "llm_errors",
		"notes_created", "summaries_created",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the youtube/ sub-package and pipeline.
func IncrPageFetch()      { metrics.PageFetches.Add(1) }
func IncrPageFetchError() { metrics.PageFetchErrors.Add(1) }
func IncrCaptionFetch()   { metrics.CaptionFetches.Add(1) }
func IncrLLMCall()        { metrics.LLMCalls.Add(1) }
func IncrLLMError()       { metrics.LLMErrors.Add(1) }
func IncrNoteCreated()    { metrics.NotesCreated.Add(1) }
func IncrSummaryCreated() { metrics.SummariesCreated.Add(1) }
