package engine

import "testing"

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"apostrophe and ampersand", "it&#39;s &amp; all", "it's & all"},
		{"quotes", "&quot;hi&quot; &apos;there&apos;", `"hi" 'there'`},
		{"angle brackets", "&lt;b&gt;bold&lt;/b&gt;", "<b>bold</b>"},
		{"no entities", "plain text", "plain text"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.in); got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeEntitiesIdempotent(t *testing.T) {
	once := DecodeEntities("a &amp; b")
	if twice := DecodeEntities(once); twice != once {
		t.Errorf("second decode changed text: %q -> %q", once, twice)
	}
}
