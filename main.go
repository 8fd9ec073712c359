// go_tldr — YouTube transcript & summary MCP server.
//
// Exposes four MCP tools: capture_transcript, summarize_note, video_tldr,
// cost_report. Fetches caption transcripts from YouTube watch pages, stores
// them as markdown notes, and summarizes them via the Anthropic API with
// per-summary cost accounting.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tldr/internal/engine"
	"github.com/anatolykoptev/go_tldr/internal/ledger"
	"github.com/anatolykoptev/go_tldr/internal/noteserver"
	"github.com/anatolykoptev/go_tldr/internal/vault"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	cfg := loadConfig()
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("starting go_tldr",
		slog.String("port", mcpPort),
		slog.String("model", cfg.LLM.Model),
	)

	v, err := vault.NewDirVault(env.Str("VAULT_DIR", "./vault"))
	if err != nil {
		slog.Error("vault init failed", slog.Any("error", err))
		return
	}
	slog.Info("vault ready", slog.String("root", v.Root()))

	var led *ledger.Ledger
	if dbPath := env.Str("LEDGER_DB", "tldr-costs.db"); dbPath != "" {
		led, err = ledger.Open(dbPath)
		if err != nil {
			slog.Warn("cost ledger init failed, costs will not be recorded", slog.Any("error", err))
		} else {
			defer led.Close()
		}
	}

	engine.InitCache(env.Str("REDIS_URL", ""),
		cfg.CacheTTL, cfg.CacheMaxEntries, cfg.CacheCleanupInterval)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_tldr",
		Version: version,
	}, nil)

	noteserver.RegisterTools(server, noteserver.Deps{
		Cfg:    cfg,
		Vault:  v,
		Ledger: led,
	})
	slog.Info("tools registered", slog.Int("count", 4))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_tldr",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func loadConfig() *engine.Config {
	return &engine.Config{
		LLM: engine.LLMConfig{
			APIKey:            env.Str("ANTHROPIC_API_KEY", ""),
			Model:             env.Str("LLM_MODEL", "claude-3-5-sonnet-latest"),
			Temperature:       env.Float("LLM_TEMPERATURE", 0.5),
			MaxTokens:         env.Int("LLM_MAX_TOKENS", 4000),
			TopP:              env.Float("LLM_TOP_P", 0.9),
			TopK:              env.Int("LLM_TOP_K", 40),
			Prompt:            env.Str("SUMMARY_PROMPT", ""),
			RequestsPerMinute: env.Int("LLM_REQUESTS_PER_MINUTE", 0),
		},
		Language:             env.Str("CAPTION_LANGUAGE", "en"),
		BucketSeconds:        env.Int("TRANSCRIPT_BUCKET_SECONDS", 30),
		NotesFolder:          env.Str("NOTES_FOLDER", ""),
		Debug:                env.Str("DEBUG", "") != "",
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 10*time.Second),
		CacheTTL:             env.Duration("CACHE_TTL", 15*time.Minute),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
}
