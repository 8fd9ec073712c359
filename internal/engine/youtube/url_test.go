package youtube

import (
	"errors"
	"testing"

	"github.com/anatolykoptev/go_tldr/internal/engine"
)

func TestNormalizeCanonicalForms(t *testing.T) {
	const want = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	tests := []struct {
		name  string
		input string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL1"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"legacy v path", "https://www.youtube.com/v/dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ"},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.input, err)
			}
			if ref.CanonicalURL != want {
				t.Errorf("CanonicalURL = %q, want %q", ref.CanonicalURL, want)
			}
			if ref.ID != "dQw4w9WgXcQ" {
				t.Errorf("ID = %q, want dQw4w9WgXcQ", ref.ID)
			}
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"not a video url", "https://example.com/watch?v=dQw4w9WgXcQ"},
		{"lookalike domain", "https://notyoutube.com/watch?v=dQw4w9WgXcQ"},
		{"id too short", "https://www.youtube.com/watch?v=short"},
		{"id too long", "https://youtu.be/dQw4w9WgXcQextra"},
		{"id invalid chars", "https://www.youtube.com/watch?v=dQw4w9Wg!cQ"},
		{"channel path", "https://www.youtube.com/@somechannel"},
		{"plain text", "not a url at all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			if !errors.Is(err, engine.ErrInvalidURL) {
				t.Errorf("Normalize(%q) error = %v, want ErrInvalidURL", tt.input, err)
			}
		})
	}
}
