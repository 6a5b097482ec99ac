package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "conversions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(filepath.Join("..", "..", "..", "migrations", "001_init_conversions.sql")))
	return repo
}

func TestRepositoryInsertAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, "conv-1", "plan.json", 3))

	got, err := repo.GetByID(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", got.ID)
	assert.Equal(t, "plan.json", got.Filename)
	assert.Equal(t, "uploaded", got.Status)
	assert.Equal(t, 3, got.Pages)
	assert.Zero(t, got.Floors)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryUpdateResult(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, "conv-1", "plan.json", 2))
	require.NoError(t, repo.UpdateResult(ctx, "conv-1", "generated", 2, 5, 480, 720))

	got, err := repo.GetByID(ctx, "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "generated", got.Status)
	assert.Equal(t, 2, got.Floors)
	assert.Equal(t, 5, got.Rooms)
	assert.Equal(t, 480, got.VertexCount)
	assert.Equal(t, 720, got.FaceCount)
}

func TestRepositoryUpdateMissing(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateResult(context.Background(), "nope", "generated", 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Insert(ctx, "conv-a", "a.json", 1))
	require.NoError(t, repo.Insert(ctx, "conv-b", "b.json", 1))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	ids := []string{list[0].ID, list[1].ID}
	assert.ElementsMatch(t, []string{"conv-a", "conv-b"}, ids)
}
