// Package noteserver exposes the transcript and summarization pipeline as
// MCP tools: capture_transcript, summarize_note, video_tldr, cost_report.
package noteserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tldr/internal/engine"
	"github.com/anatolykoptev/go_tldr/internal/ledger"
	"github.com/anatolykoptev/go_tldr/internal/pipeline"
	"github.com/anatolykoptev/go_tldr/internal/vault"
)

// Deps carries the shared collaborators the tools operate on.
type Deps struct {
	Cfg    *engine.Config
	Vault  vault.Vault
	Ledger *ledger.Ledger
}

// RegisterTools registers all note tools on the given MCP server.
func RegisterTools(server *mcp.Server, deps Deps) {
	registerCaptureTranscript(server, deps)
	registerSummarizeNote(server, deps)
	registerVideoTLDR(server, deps)
	registerCostReport(server, deps)
}

// newPipeline builds a pipeline whose notifications are collected into the
// returned slice for inclusion in the tool output.
func newPipeline(deps Deps) (*pipeline.Pipeline, *[]string) {
	var messages []string
	n := pipeline.NotifierFunc(func(msg string) {
		slog.Info("notify", slog.String("msg", msg))
		messages = append(messages, msg)
	})
	return pipeline.New(deps.Cfg, deps.Vault, deps.Ledger, n), &messages
}

type captureTranscriptInput struct {
	URL    string `json:"url" jsonschema:"YouTube video URL in any supported form (watch, youtu.be, shorts, embed)"`
	Folder string `json:"folder,omitempty" jsonschema:"Vault folder for the note; defaults to the configured notes folder"`
}

type captureTranscriptOutput struct {
	VideoID  string   `json:"video_id"`
	Title    string   `json:"title"`
	NotePath string   `json:"note_path"`
	Messages []string `json:"messages,omitempty"`
}

func registerCaptureTranscript(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture_transcript",
		Description: "Fetch a YouTube video's caption transcript and save it as a markdown note with timestamped sections. Accepts watch, youtu.be, shorts, and embed URLs.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input captureTranscriptInput) (*mcp.CallToolResult, captureTranscriptOutput, error) {
		if input.URL == "" {
			return nil, captureTranscriptOutput{}, fmt.Errorf("url is required")
		}

		p, messages := newPipeline(deps)
		res, err := p.CaptureTranscript(ctx, input.URL, input.Folder)
		if err != nil {
			return nil, captureTranscriptOutput{}, err
		}
		return nil, captureTranscriptOutput{
			VideoID:  res.VideoID,
			Title:    res.Title,
			NotePath: res.NotePath,
			Messages: *messages,
		}, nil
	})
}

type summarizeNoteInput struct {
	Path string `json:"path" jsonschema:"Vault path of the markdown note to summarize"`
}

type summarizeNoteOutput struct {
	SummaryPath  string   `json:"summary_path"`
	Cost         float64  `json:"cost"`
	InputTokens  int      `json:"input_tokens"`
	OutputTokens int      `json:"output_tokens"`
	Messages     []string `json:"messages,omitempty"`
}

func registerSummarizeNote(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_note",
		Description: "Summarize an existing markdown note with the configured Anthropic model. Creates a sibling note with a -summary suffix and records the API cost.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input summarizeNoteInput) (*mcp.CallToolResult, summarizeNoteOutput, error) {
		if input.Path == "" {
			return nil, summarizeNoteOutput{}, fmt.Errorf("path is required")
		}

		p, messages := newPipeline(deps)
		res, err := p.SummarizeNote(ctx, input.Path)
		if err != nil {
			return nil, summarizeNoteOutput{}, err
		}
		return nil, summarizeNoteOutput{
			SummaryPath:  res.SummaryPath,
			Cost:         res.Cost,
			InputTokens:  res.Usage.InputTokens,
			OutputTokens: res.Usage.OutputTokens,
			Messages:     *messages,
		}, nil
	})
}

type videoTLDRInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL in any supported form"`
}

type videoTLDROutput struct {
	VideoID     string   `json:"video_id"`
	Title       string   `json:"title"`
	NotePath    string   `json:"note_path"`
	SummaryPath string   `json:"summary_path"`
	Cost        float64  `json:"cost"`
	Messages    []string `json:"messages,omitempty"`
}

func registerVideoTLDR(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_tldr",
		Description: "Full pipeline: fetch a YouTube transcript, save it as a note, then summarize it. Returns both note paths and the summarization cost.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input videoTLDRInput) (*mcp.CallToolResult, videoTLDROutput, error) {
		if input.URL == "" {
			return nil, videoTLDROutput{}, fmt.Errorf("url is required")
		}

		p, messages := newPipeline(deps)
		res, err := p.VideoTLDR(ctx, input.URL)
		if err != nil {
			return nil, videoTLDROutput{}, err
		}
		return nil, videoTLDROutput{
			VideoID:     res.Capture.VideoID,
			Title:       res.Capture.Title,
			NotePath:    res.Capture.NotePath,
			SummaryPath: res.Summary.SummaryPath,
			Cost:        res.Summary.Cost,
			Messages:    *messages,
		}, nil
	})
}

type costReportInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Number of recent entries to return (default 20)"`
}

type costReportEntry struct {
	NotePath     string  `json:"note_path"`
	SummaryPath  string  `json:"summary_path"`
	Model        string  `json:"model"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`
	CreatedAt    string  `json:"created_at"`
}

type costReportOutput struct {
	TotalSummaries int64             `json:"total_summaries"`
	TotalCost      float64           `json:"total_cost"`
	Recent         []costReportEntry `json:"recent,omitempty"`
}

func registerCostReport(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cost_report",
		Description: "Report accumulated summarization costs: total spend plus the most recent entries with per-summary token counts.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input costReportInput) (*mcp.CallToolResult, costReportOutput, error) {
		if deps.Ledger == nil {
			return nil, costReportOutput{}, fmt.Errorf("cost ledger is not configured")
		}

		count, total, err := deps.Ledger.Total(ctx)
		if err != nil {
			return nil, costReportOutput{}, err
		}
		entries, err := deps.Ledger.Recent(ctx, input.Limit)
		if err != nil {
			return nil, costReportOutput{}, err
		}

		out := costReportOutput{TotalSummaries: count, TotalCost: total}
		for _, e := range entries {
			out.Recent = append(out.Recent, costReportEntry{
				NotePath:     e.NotePath,
				SummaryPath:  e.SummaryPath,
				Model:        e.Model,
				InputTokens:  e.InputTokens,
				OutputTokens: e.OutputTokens,
				Cost:         e.Cost,
				CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		return nil, out, nil
	})
}
