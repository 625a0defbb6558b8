package tracker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"jobradar-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "seen.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAnnotateNewThenSeen(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	jobs := []domain.JobResult{
		{Title: "Backend Engineer", Company: "Acme", URL: "https://x/1", Source: "Dice"},
		{Title: "Platform Engineer", Company: "Initech", URL: "https://x/2", Source: "Adzuna"},
	}

	first, err := s.Annotate(ctx, jobs)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.True(t, first[0].IsNew)
	assert.True(t, first[1].IsNew)

	second, err := s.Annotate(ctx, jobs)
	require.NoError(t, err)
	assert.False(t, second[0].IsNew)
	assert.False(t, second[1].IsNew)

	n, err := s.SeenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAnnotateCaseInsensitiveKey(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	out, err := s.Annotate(ctx, []domain.JobResult{
		{Title: "Backend Engineer", Company: "Acme", URL: "https://x/1", Source: "Dice"},
		{Title: "  backend engineer ", Company: "ACME", URL: "https://x/2", Source: "Adzuna"},
	})
	require.NoError(t, err)
	assert.True(t, out[0].IsNew)
	assert.False(t, out[1].IsNew, "same dedup key within one run")
}

func TestCleanupKeepsRecent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	_, err := s.Annotate(ctx, []domain.JobResult{
		{Title: "Backend Engineer", Company: "Acme", URL: "https://x/1", Source: "Dice"},
	})
	require.NoError(t, err)

	removed, err := s.Cleanup(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed, "rows inserted just now are inside the window")

	n, err := s.SeenCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOpenRejectsSecondLocker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seen.db")

	s, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	_, err = Open(path, zap.NewNop())
	assert.Error(t, err, "sidecar lock blocks a second concurrent run")
}
