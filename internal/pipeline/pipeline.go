// Package pipeline wires the capture and summarization stages together:
// URL normalization, transcript fetch with caching, note creation, LLM
// summarization, cost accounting, and user notifications.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/anatolykoptev/go_tldr/internal/engine"
	"github.com/anatolykoptev/go_tldr/internal/engine/youtube"
	"github.com/anatolykoptev/go_tldr/internal/ledger"
	"github.com/anatolykoptev/go_tldr/internal/vault"
)

// Pipeline orchestrates the full video-to-summary flow. The ledger is
// optional; when nil, cost rows are simply not recorded.
type Pipeline struct {
	cfg        *engine.Config
	fetcher    *youtube.Fetcher
	summarizer *engine.Summarizer
	vault      vault.Vault
	ledger     *ledger.Ledger
	notifier   Notifier
}

// New assembles a pipeline from its collaborators. A nil notifier falls
// back to log-based notifications.
func New(cfg *engine.Config, v vault.Vault, l *ledger.Ledger, n Notifier) *Pipeline {
	if n == nil {
		n = LogNotifier{}
	}
	return &Pipeline{
		cfg:        cfg,
		fetcher:    youtube.NewFetcher(cfg),
		summarizer: engine.NewSummarizer(cfg.LLM, cfg.HTTPClient),
		vault:      v,
		ledger:     l,
		notifier:   n,
	}
}

// CaptureResult describes a created transcript note.
type CaptureResult struct {
	VideoID  string
	Title    string
	NotePath string
}

// SummaryResult describes a created summary note and its cost.
type SummaryResult struct {
	SummaryPath string
	Cost        float64
	Usage       engine.TokenUsage
}

// TLDRResult is the combined outcome of capture followed by summarization.
type TLDRResult struct {
	Capture CaptureResult
	Summary SummaryResult
}

// CaptureTranscript normalizes the input URL, fetches the transcript
// (honoring the cache), formats it into time buckets and writes a
// transcript note. folder overrides the configured notes folder when
// non-empty. Every terminal failure is reported to the notifier exactly
// once and returned to the caller.
func (p *Pipeline) CaptureTranscript(ctx context.Context, rawURL, folder string) (CaptureResult, error) {
	res, err := p.captureTranscript(ctx, rawURL, folder)
	if err != nil {
		p.notifier.Show(fmt.Sprintf("❌ Failed to capture transcript: %v", err))
		return CaptureResult{}, err
	}
	return res, nil
}

func (p *Pipeline) captureTranscript(ctx context.Context, rawURL, folder string) (CaptureResult, error) {
	var zero CaptureResult

	ref, err := youtube.Normalize(rawURL)
	if err != nil {
		return zero, err
	}

	doc, err := p.fetchTranscript(ctx, ref)
	if err != nil {
		return zero, err
	}

	formatted := youtube.FormatTranscript(doc.Lines, p.cfg.BucketSeconds)
	if strings.TrimSpace(formatted) == "" {
		return zero, fmt.Errorf("%w: transcript has no text", engine.ErrEmptyContent)
	}

	if folder == "" {
		folder = p.cfg.NotesFolder
	}
	if folder != "" {
		if err := p.vault.Mkdir(folder); err != nil {
			return zero, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
		}
	}

	notePath := path.Join(folder, vault.NoteFileName(doc.Title))
	created, err := p.vault.Create(notePath, vault.TranscriptNote(ref.CanonicalURL, formatted))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}

	engine.IncrNoteCreated()
	slog.Info("transcript note created",
		slog.String("video", ref.ID),
		slog.String("path", created),
		slog.Int("lines", len(doc.Lines)),
	)
	p.notifier.Show(fmt.Sprintf("📄 Transcript saved: %s", created))

	return CaptureResult{VideoID: ref.ID, Title: doc.Title, NotePath: created}, nil
}

// fetchTranscript consults the transcript cache before going to the network.
func (p *Pipeline) fetchTranscript(ctx context.Context, ref youtube.VideoRef) (*youtube.TranscriptDocument, error) {
	key := engine.CacheKey("yt", ref.ID, p.cfg.Language)
	if doc, ok := engine.CacheLoadJSON[youtube.TranscriptDocument](ctx, key); ok {
		slog.Debug("transcript cache hit", slog.String("video", ref.ID))
		return &doc, nil
	}

	doc, err := p.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	engine.CacheStoreJSON(ctx, key, *doc)
	return doc, nil
}

// SummarizeNote reads an existing markdown note, summarizes its content
// and writes the summary as a sibling note with a "-summary" suffix. The
// cost is recorded in the ledger when one is configured. Every terminal
// failure is reported to the notifier exactly once and returned to the
// caller.
func (p *Pipeline) SummarizeNote(ctx context.Context, notePath string) (SummaryResult, error) {
	res, err := p.summarizeNote(ctx, notePath)
	if err != nil {
		p.notifier.Show(fmt.Sprintf("❌ Failed to create summary: %v", err))
		return SummaryResult{}, err
	}
	return res, nil
}

func (p *Pipeline) summarizeNote(ctx context.Context, notePath string) (SummaryResult, error) {
	var zero SummaryResult

	if path.Ext(notePath) != ".md" {
		return zero, fmt.Errorf("%w: not a markdown note: %s", engine.ErrInvalidInput, notePath)
	}
	exists, err := p.vault.Exists(notePath)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}
	if !exists {
		return zero, fmt.Errorf("%w: note not found: %s", engine.ErrInvalidInput, notePath)
	}

	if err := engine.ValidateLLMConfig(p.cfg.LLM); err != nil {
		return zero, err
	}

	content, err := p.vault.Read(notePath)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}
	if strings.TrimSpace(content) == "" {
		return zero, fmt.Errorf("%w: note is empty: %s", engine.ErrEmptyContent, notePath)
	}

	p.notifier.Show("🤖 Starting TLDR generation...")

	result, err := p.summarizer.Summarize(ctx, content)
	if err != nil {
		return zero, err
	}

	cost := engine.EstimateCost(result.Usage, p.cfg.LLM.Model)

	summaryPath := vault.SummaryPath(notePath)
	created, err := p.vault.Create(summaryPath, vault.SummaryNote(vault.ParentBase(notePath), result.Summary, cost))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", engine.ErrPersistence, err)
	}

	if p.ledger != nil {
		err := p.ledger.Record(ctx, ledger.Entry{
			NotePath:     notePath,
			SummaryPath:  created,
			Model:        p.cfg.LLM.Model,
			InputTokens:  result.Usage.InputTokens,
			OutputTokens: result.Usage.OutputTokens,
			Cost:         cost,
		})
		if err != nil {
			// Summary note exists; a lost ledger row is not worth failing for.
			slog.Warn("cost ledger record failed", slog.Any("error", err))
		}
	}

	engine.IncrSummaryCreated()
	slog.Info("summary note created",
		slog.String("path", created),
		slog.String("model", p.cfg.LLM.Model),
		slog.Int("input_tokens", result.Usage.InputTokens),
		slog.Int("output_tokens", result.Usage.OutputTokens),
		slog.Float64("cost", cost),
	)
	p.notifier.Show(fmt.Sprintf("✅ Summary created successfully (Cost: $%.4f)", cost))

	return SummaryResult{SummaryPath: created, Cost: cost, Usage: result.Usage}, nil
}

// VideoTLDR captures a transcript and immediately summarizes it.
func (p *Pipeline) VideoTLDR(ctx context.Context, rawURL string) (TLDRResult, error) {
	capture, err := p.CaptureTranscript(ctx, rawURL, "")
	if err != nil {
		return TLDRResult{}, err
	}
	summary, err := p.SummarizeNote(ctx, capture.NotePath)
	if err != nil {
		return TLDRResult{Capture: capture}, err
	}
	return TLDRResult{Capture: capture, Summary: summary}, nil
}
