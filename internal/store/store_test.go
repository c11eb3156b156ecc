package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "smekit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smekit.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	rec, err := s.Put(ctx, Record{
		Kind:         KindFinance,
		BusinessName: "Duka",
		InputHash:    "sha256:abc",
		Score:        80,
		Format:       "md",
		Body:         "# Financial Report\n",
		CreatedAt:    created,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPut_RequiresKind(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Put(context.Background(), Record{Body: "x"})
	assert.Error(t, err)
}

func TestList_NewestFirstAndFiltered(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, kind := range []string{KindCompliance, KindFinance, KindCompliance} {
		_, err := s.Put(ctx, Record{
			Kind:         kind,
			BusinessName: "Duka",
			Score:        i,
			Format:       "json",
			Body:         "{}",
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[0].Score, "newest first")
	assert.Empty(t, all[0].Body, "list omits bodies")

	comp, err := s.List(ctx, KindCompliance, 0)
	require.NoError(t, err)
	require.Len(t, comp, 2)
	for _, r := range comp {
		assert.Equal(t, KindCompliance, r.Kind)
	}

	limited, err := s.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestUpSection(t *testing.T) {
	got := upSection("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n")
	assert.Contains(t, got, "CREATE TABLE a")
	assert.NotContains(t, got, "DROP TABLE")
	assert.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}
