package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

const timedTextBody = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.12" dur="2.5">it&#39;s a test</text>
  <text start="31.0" dur="1.0">second &amp; block</text>
</transcript>`

func watchPageHTML(captionsURL string) string {
	player := fmt.Sprintf(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
		`{"baseUrl":"%s&lang=de","languageCode":"de"},`+
		`{"baseUrl":"%s","languageCode":"en","kind":"asr"}]}}}`, captionsURL, captionsURL)
	return fmt.Sprintf(`<html><head>
<meta name="title" content="Test Video Title">
<script>var something = 1;</script>
<script>var ytInitialPlayerResponse = %s;var other = {"x":1};</script>
</head><body></body></html>`, player)
}

// newWatchServer serves the watch page produced by makeHTML, which receives
// the server's own base URL so caption track URLs can point back at it.
func newWatchServer(t *testing.T, makeHTML func(baseURL string) string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, timedTextBody)
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, makeHTML(srv.URL))
	})
	return srv
}

func staticHTML(html string) func(string) string {
	return func(string) string { return html }
}

func testConfig(srv *httptest.Server) *engine.Config {
	return &engine.Config{
		Language:   "en",
		HTTPClient: srv.Client(),
	}
}

func TestFetchTranscript(t *testing.T) {
	srv := newWatchServer(t, func(baseURL string) string {
		return watchPageHTML(baseURL + "/api/timedtext?v=test")
	})

	f := NewFetcher(testConfig(srv))
	doc, err := f.Fetch(context.Background(), VideoRef{ID: "dQw4w9WgXcQ", CanonicalURL: srv.URL + "/watch"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if doc.Title != "Test Video Title" {
		t.Errorf("Title = %q, want Test Video Title", doc.Title)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(doc.Lines))
	}
	if doc.Lines[0].Text != "it's a test" {
		t.Errorf("entities not decoded: %q", doc.Lines[0].Text)
	}
	if doc.Lines[0].StartMS != 120 {
		t.Errorf("StartMS = %d, want 120", doc.Lines[0].StartMS)
	}
	if doc.Lines[1].Text != "second & block" {
		t.Errorf("second line = %q", doc.Lines[1].Text)
	}
	if doc.Lines[1].StartMS != 31000 {
		t.Errorf("second StartMS = %d, want 31000", doc.Lines[1].StartMS)
	}
}

func TestFetchNoPlayerResponse(t *testing.T) {
	srv := newWatchServer(t, staticHTML(`<html><head><script>var x = 1;</script></head></html>`))

	f := NewFetcher(testConfig(srv))
	_, err := f.Fetch(context.Background(), VideoRef{ID: "dQw4w9WgXcQ", CanonicalURL: srv.URL + "/watch"})
	if !errors.Is(err, engine.ErrMetadataNotFound) {
		t.Errorf("error = %v, want ErrMetadataNotFound", err)
	}
}

func TestFetchNoCaptions(t *testing.T) {
	srv := newWatchServer(t, staticHTML(
		`<html><head><script>var ytInitialPlayerResponse = {"videoDetails":{"title":"x"}};</script></head></html>`))

	f := NewFetcher(testConfig(srv))
	_, err := f.Fetch(context.Background(), VideoRef{ID: "dQw4w9WgXcQ", CanonicalURL: srv.URL + "/watch"})
	if !errors.Is(err, engine.ErrNoCaptions) {
		t.Errorf("error = %v, want ErrNoCaptions", err)
	}
}

func TestFetchEmptyTrackList(t *testing.T) {
	srv := newWatchServer(t, staticHTML(
		`<html><head><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[]}}};</script></head></html>`))

	f := NewFetcher(testConfig(srv))
	_, err := f.Fetch(context.Background(), VideoRef{ID: "dQw4w9WgXcQ", CanonicalURL: srv.URL + "/watch"})
	if !errors.Is(err, engine.ErrNoCaptions) {
		t.Errorf("error = %v, want ErrNoCaptions", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	})

	cfg := testConfig(srv)
	cfg.FetchTimeout = 20 * time.Millisecond
	f := NewFetcher(cfg)

	start := time.Now()
	_, err := f.Fetch(context.Background(), VideoRef{ID: "dQw4w9WgXcQ", CanonicalURL: srv.URL + "/watch"})
	if !errors.Is(err, engine.ErrPageFetch) {
		t.Fatalf("error = %v, want ErrPageFetch", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("fetch not bounded by configured timeout, took %v", elapsed)
	}
}

func TestFetchCaptionsStatusError(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, watchPageHTML(srv.URL+"/gone"))
	})
	mux.HandleFunc("/gone", http.NotFound)

	f := NewFetcher(testConfig(srv))
	_, err := f.Fetch(context.Background(), VideoRef{ID: "dQw4w9WgXcQ", CanonicalURL: srv.URL + "/watch"})
	if !errors.Is(err, engine.ErrCaptionFetch) {
		t.Fatalf("error = %v, want ErrCaptionFetch", err)
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error should carry the status, got: %v", err)
	}
	if strings.Contains(err.Error(), "XML") {
		t.Errorf("status failure should not surface as a parse error: %v", err)
	}
}

func TestSelectTrackPrefersLanguage(t *testing.T) {
	player := &playerResponse{}
	player.Captions = &captionsRenderer{}
	player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks = []captionTrack{
		{BaseURL: "/de", LanguageCode: "de"},
		{BaseURL: "/en-us", LanguageCode: "en-US"},
	}

	track, err := selectTrack(player, "en")
	if err != nil {
		t.Fatal(err)
	}
	if track.BaseURL != "/en-us" {
		t.Errorf("selected %q, want /en-us", track.BaseURL)
	}

	// No match falls back to the first track.
	track, err = selectTrack(player, "fr")
	if err != nil {
		t.Fatal(err)
	}
	if track.BaseURL != "/de" {
		t.Errorf("fallback selected %q, want /de", track.BaseURL)
	}
}

func TestExtractJSONBraceWalk(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `{"a":1};var x`, `{"a":1}`},
		{"nested", `{"a":{"b":2}} trailing`, `{"a":{"b":2}}`},
		{"braces in strings", `{"a":"}{"} rest`, `{"a":"}{"}`},
		{"escaped quote", `{"a":"\"}"} rest`, `{"a":"\"}"}`},
		{"escaped backslash closes string", `{"a":"b\\"};var next = 1;`, `{"a":"b\\"}`},
		{"escaped backslash then brace", `{"path":"C:\\"} tail`, `{"path":"C:\\"}`},
		{"unbalanced", `{"a":1`, ""},
		{"not an object", `[1,2]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(extractJSON([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
