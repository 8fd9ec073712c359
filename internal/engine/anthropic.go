package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	anthropicAPIBase    = "https://api.anthropic.com"
	anthropicMessages   = "/v1/messages"
	anthropicAPIVersion = "2023-06-01"
)

// anthropicRequest is the /v1/messages request body.
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	TopP        float64            `json:"top_p"`
	TopK        int                `json:"top_k"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the success body; usage may be absent.
type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Summarizer sends transcript text to the Anthropic messages endpoint and
// returns the generated summary with token usage. A client-side limiter
// smooths request bursts; server-side throttling still surfaces as errors.
type Summarizer struct {
	cfg     LLMConfig
	prompt  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewSummarizer builds a Summarizer from validated settings.
func NewSummarizer(cfg LLMConfig, client *http.Client) *Summarizer {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Summarizer{cfg: cfg, prompt: prompt, client: client, limiter: limiter}
}

// Summarize sends the content with the configured sampling parameters.
// Endpoint-reported failures surface as *APIError with the structured message
// verbatim; transport failures map to ErrRateLimit or ErrConnection.
func (s *Summarizer) Summarize(ctx context.Context, content string) (SummarizationResult, error) {
	var zero SummarizationResult

	body, err := json.Marshal(anthropicRequest{
		Model:     s.cfg.Model,
		MaxTokens: s.cfg.MaxTokens,
		Messages: []anthropicMessage{{
			Role:    "user",
			Content: s.prompt + "\n\nContent to summarize:\n" + content,
		}},
		Temperature: s.cfg.Temperature,
		TopP:        s.cfg.TopP,
		TopK:        s.cfg.TopK,
	})
	if err != nil {
		return zero, fmt.Errorf("marshal request: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return zero, err
	}

	IncrLLMCall()
	slog.Debug("calling summarization endpoint",
		slog.String("model", s.cfg.Model),
		slog.Int("max_tokens", s.cfg.MaxTokens),
		slog.Float64("temperature", s.cfg.Temperature),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(body))
	if err != nil {
		return zero, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		IncrLLMError()
		if strings.Contains(err.Error(), "rate") {
			return zero, fmt.Errorf("%w: please try again later", ErrRateLimit)
		}
		return zero, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		IncrLLMError()
		return zero, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if resp.StatusCode != http.StatusOK {
		IncrLLMError()
		var apiErr anthropicErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return zero, &APIError{Type: apiErr.Error.Type, Message: apiErr.Error.Message}
		}
		return zero, &APIError{Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	var out anthropicResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		IncrLLMError()
		return zero, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Content) == 0 {
		IncrLLMError()
		return zero, &APIError{Message: "response contains no content"}
	}

	var usage TokenUsage
	if out.Usage != nil {
		usage = TokenUsage{InputTokens: out.Usage.InputTokens, OutputTokens: out.Usage.OutputTokens}
	}

	return SummarizationResult{
		Summary: strings.TrimSpace(out.Content[0].Text),
		Usage:   usage,
	}, nil
}

func (s *Summarizer) endpoint() string {
	base := s.cfg.APIBase
	if base == "" {
		base = anthropicAPIBase
	}
	return base + anthropicMessages
}
