package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "costs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndTotal(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	count, cost, err := l.Total(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, cost)

	require.NoError(t, l.Record(ctx, Entry{
		NotePath:     "Video.md",
		SummaryPath:  "Video-summary.md",
		Model:        "claude-3-5-sonnet-latest",
		InputTokens:  100,
		OutputTokens: 50,
		Cost:         0.005,
	}))
	require.NoError(t, l.Record(ctx, Entry{
		NotePath:    "Other.md",
		SummaryPath: "Other-summary.md",
		Model:       "claude-3-5-haiku-latest",
		Cost:        0.001,
	}))

	count, cost, err = l.Total(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.InDelta(t, 0.006, cost, 1e-9)
}

func TestRecentOrderAndLimit(t *testing.T) {
	l := openTestLedger(t)
	ctx := context.Background()

	for _, p := range []string{"a.md", "b.md", "c.md"} {
		require.NoError(t, l.Record(ctx, Entry{NotePath: p, SummaryPath: p, Model: "m"}))
	}

	entries, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c.md", entries[0].NotePath)
	assert.Equal(t, "b.md", entries[1].NotePath)
	assert.False(t, entries[0].CreatedAt.IsZero())

	// Zero limit falls back to the default.
	entries, err = l.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
