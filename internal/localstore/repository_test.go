// AngelaMos | 2026
// repository_test.go

package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db)
}

func repositories(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"memory": NewMemoryRepository(),
		"sqlite": newSQLiteRepo(t),
	}
}

func TestRepository_Contract(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := repo.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, repo.Set(ctx, "a", []byte("one")))
			require.NoError(t, repo.Set(ctx, "a", []byte("two")))
			require.NoError(t, repo.Set(ctx, "b", []byte("bee")))

			got, err = repo.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte("two"), got)

			got, err = repo.Get(ctx, "b")
			require.NoError(t, err)
			assert.Equal(t, []byte("bee"), got)

			require.NoError(t, repo.Delete(ctx, "a"))
			require.NoError(t, repo.Delete(ctx, "a"))
			got, err = repo.Get(ctx, "a")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestMemoryRepository_CopiesValues(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	value := []byte("abc")
	require.NoError(t, repo.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'z'
	again, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
}
