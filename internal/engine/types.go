package engine

// TokenUsage holds the token counts reported by the summarization endpoint.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// SummarizationResult is the generated summary plus its token usage.
type SummarizationResult struct {
	Summary string     `json:"summary"`
	Usage   TokenUsage `json:"usage"`
}
