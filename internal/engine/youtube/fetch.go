package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

// playerResponseMarker introduces the player metadata JSON in watch page HTML.
const playerResponseMarker = "var ytInitialPlayerResponse = "

const defaultTitle = "Untitled Video"

// maxCaptionBytes caps the timedtext body read.
const maxCaptionBytes = 512 * 1024

// Fetcher retrieves a video's watch page and caption track and parses them
// into a TranscriptDocument. The two HTTP fetches are strictly sequential:
// the caption URL is only known from the page response.
type Fetcher struct {
	cfg *engine.Config
}

// NewFetcher returns a Fetcher using the injected HTTP client and the
// configured preferred caption language.
func NewFetcher(cfg *engine.Config) *Fetcher {
	return &Fetcher{cfg: cfg}
}

// Fetch retrieves and parses the transcript for a normalized video reference.
// The configured fetch timeout bounds the whole run, both HTTP round trips
// included.
func (f *Fetcher) Fetch(ctx context.Context, ref VideoRef) (*TranscriptDocument, error) {
	if f.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.FetchTimeout)
		defer cancel()
	}

	engine.IncrPageFetch()
	body, err := engine.FetchHTML(ctx, f.cfg.HTTPClient, ref.CanonicalURL)
	if err != nil {
		engine.IncrPageFetchError()
		return nil, fmt.Errorf("%w: %v", engine.ErrPageFetch, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse watch page: %v", engine.ErrMetadataNotFound, err)
	}

	player, err := extractPlayerResponse(doc)
	if err != nil {
		return nil, err
	}

	track, err := selectTrack(player, f.cfg.Language)
	if err != nil {
		return nil, err
	}
	slog.Debug("selected caption track",
		slog.String("video", ref.ID),
		slog.String("lang", track.LanguageCode),
		slog.String("kind", track.Kind),
	)

	lines, err := f.fetchCaptions(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	return &TranscriptDocument{
		Title: extractTitle(doc),
		Lines: lines,
	}, nil
}

// extractPlayerResponse locates the script embedding ytInitialPlayerResponse
// and decodes the JSON object that follows the marker.
func extractPlayerResponse(doc *goquery.Document) (*playerResponse, error) {
	var raw []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		raw = extractJSON([]byte(text[idx+len(playerResponseMarker):]))
		return false
	})
	if raw == nil {
		return nil, fmt.Errorf("%w: ytInitialPlayerResponse not in watch page", engine.ErrMetadataNotFound)
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("%w: decode ytInitialPlayerResponse: %v", engine.ErrMetadataNotFound, err)
	}
	return &player, nil
}

// selectTrack picks the caption track whose language code contains the
// preferred code, falling back to the first available track.
func selectTrack(player *playerResponse, lang string) (captionTrack, error) {
	if player.Captions == nil {
		return captionTrack{}, engine.ErrNoCaptions
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return captionTrack{}, engine.ErrNoCaptions
	}
	for _, t := range tracks {
		if strings.Contains(t.LanguageCode, lang) {
			return t, nil
		}
	}
	return tracks[0], nil
}

// fetchCaptions retrieves the timedtext XML and parses every text element
// into a CaptionLine.
func (f *Fetcher) fetchCaptions(ctx context.Context, baseURL string) ([]CaptionLine, error) {
	captionsURL := baseURL
	if !strings.Contains(captionsURL, "://") {
		captionsURL = "https://www.youtube.com" + captionsURL
	}

	engine.IncrCaptionFetch()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, captionsURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return f.cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrCaptionFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", engine.ErrCaptionFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", engine.ErrCaptionFetch, err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("%w: parse timedtext XML: %v", engine.ErrCaptionFetch, err)
	}

	lines := make([]CaptionLine, 0, len(tt.Lines))
	for _, l := range tt.Lines {
		lines = append(lines, CaptionLine{
			Text:       engine.DecodeEntities(l.Text),
			StartMS:    secondsToMS(l.Start),
			DurationMS: secondsToMS(l.Dur),
		})
	}
	return lines, nil
}

// secondsToMS converts a decimal-seconds attribute to milliseconds.
// Missing or malformed attributes default to 0.
func secondsToMS(attr string) int64 {
	sec, err := strconv.ParseFloat(attr, 64)
	if err != nil {
		return 0
	}
	return int64(sec * 1000)
}

// extractTitle reads the page title from the title meta tag.
func extractTitle(doc *goquery.Document) string {
	if title, ok := doc.Find("meta[name=title]").First().Attr("content"); ok && title != "" {
		return title
	}
	return defaultTitle
}

// extractJSON returns the balanced JSON object at the start of b, walking
// braces outside string literals. Escapes are tracked with a flag rather
// than a previous-byte check so a string ending in an escaped backslash
// (`"b\\"`) still closes.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case inStr:
			if c == '"' {
				inStr = false
			}
		default:
			switch c {
			case '"':
				inStr = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return b[:i+1]
				}
			}
		}
	}
	return nil
}
