package youtube

import (
	"strings"
	"testing"
)

func TestFormatTranscriptBuckets(t *testing.T) {
	lines := []CaptionLine{
		{Text: "hello", StartMS: 1000},
		{Text: "world", StartMS: 29000},
		{Text: "next block", StartMS: 31000},
	}

	got := FormatTranscript(lines, 30)
	want := "[00:00]\nhello world\n\n[00:30]\nnext block\n"
	if got != want {
		t.Errorf("FormatTranscript = %q, want %q", got, want)
	}
}

func TestFormatTranscriptOutOfOrder(t *testing.T) {
	lines := []CaptionLine{
		{Text: "late", StartMS: 65000},
		{Text: "early", StartMS: 0},
	}

	got := FormatTranscript(lines, 30)
	if !strings.HasPrefix(got, "[00:00]\nearly") {
		t.Errorf("buckets not sorted ascending: %q", got)
	}
	if !strings.Contains(got, "[01:00]\nlate") {
		t.Errorf("missing later bucket: %q", got)
	}
}

func TestFormatTranscriptMinutesOverflow(t *testing.T) {
	// 2 hours in has no hour component, just large minutes.
	lines := []CaptionLine{{Text: "deep", StartMS: 7200 * 1000}}
	got := FormatTranscript(lines, 30)
	if !strings.Contains(got, "[120:00]") {
		t.Errorf("want [120:00] timestamp, got %q", got)
	}
}

func TestFormatTranscriptDefaultBucket(t *testing.T) {
	lines := []CaptionLine{
		{Text: "a", StartMS: 0},
		{Text: "b", StartMS: 29999},
		{Text: "c", StartMS: 30000},
	}
	// 0 falls back to the 30s default.
	got := FormatTranscript(lines, 0)
	if !strings.Contains(got, "[00:00]\na b\n") {
		t.Errorf("default bucket width not applied: %q", got)
	}
	if !strings.Contains(got, "[00:30]\nc\n") {
		t.Errorf("boundary line in wrong bucket: %q", got)
	}
}

func TestFormatTranscriptEmpty(t *testing.T) {
	if got := FormatTranscript(nil, 30); got != "" {
		t.Errorf("FormatTranscript(nil) = %q, want empty", got)
	}
}
