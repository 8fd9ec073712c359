// Package youtube turns a user-supplied video URL into a parsed, formatted
// transcript: URL normalization, watch-page scraping for the player metadata,
// caption-track selection, and timedtext parsing.
package youtube

// VideoRef is a normalized video reference. Constructed only by Normalize;
// CanonicalURL is always the watch?v= form.
type VideoRef struct {
	ID           string `json:"id"`
	CanonicalURL string `json:"url"`
}

// CaptionLine is one parsed timedtext element. Text is entity-decoded;
// offsets are milliseconds.
type CaptionLine struct {
	Text       string `json:"text"`
	StartMS    int64  `json:"start_ms"`
	DurationMS int64  `json:"duration_ms"`
}

// TranscriptDocument holds the page title and caption lines in document
// order. The source order is generally chronological but not guaranteed
// monotonic; nothing here may assume sortedness.
type TranscriptDocument struct {
	Title string        `json:"title"`
	Lines []CaptionLine `json:"lines"`
}

// playerResponse is the subset of ytInitialPlayerResponse we read.
type playerResponse struct {
	Captions *captionsRenderer `json:"captions"`
}

type captionsRenderer struct {
	PlayerCaptionsTracklistRenderer struct {
		CaptionTracks []captionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// timedText maps the caption XML: a root of text elements carrying start and
// dur attributes in decimal seconds.
type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}
