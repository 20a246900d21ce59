package wardroberepo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
)

func sampleItems() []wardrobe.Item {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return []wardrobe.Item{
		{ID: "b", ImageURL: "https://img/b.jpg", Attributes: attributes.Extract("navy wool coat"), Source: wardrobe.SourceURL, CreatedAt: created},
		{ID: "a", ImageURL: "https://img/a.jpg", Attributes: attributes.Extract("white cotton shirt, chest: 100cm"), Source: wardrobe.SourceManual, CreatedAt: created.Add(time.Hour)},
		{ID: "c", ImageURL: "/api/photos/photos/c.jpg", Attributes: attributes.Extract("black leather jacket"), Source: wardrobe.SourcePhoto, PhotoKey: "photos/c.jpg", CreatedAt: created.Add(2 * time.Hour)},
	}
}

// exerciseRepository checks the whole-collection contract shared by all backends.
func exerciseRepository(t *testing.T, repo wardrobe.Repository, owner string) {
	t.Helper()
	ctx := context.Background()

	empty, err := repo.List(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, empty)

	items := sampleItems()
	require.NoError(t, repo.Save(ctx, owner, items))

	got, err := repo.List(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, items, got)

	require.NoError(t, repo.Save(ctx, owner, items[1:]))
	got, err = repo.List(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, items[1:], got)

	other, err := repo.List(ctx, owner+"-other")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository(), "local")
}

func TestMemoryRepositoryCopiesSlices(t *testing.T) {
	repo := NewMemoryRepository()
	items := sampleItems()
	require.NoError(t, repo.Save(context.Background(), "local", items))
	items[0].ID = "mutated"

	got, err := repo.List(context.Background(), "local")
	require.NoError(t, err)
	require.Equal(t, "b", got[0].ID)
}

func TestValkeyRepository(t *testing.T) {
	addr := os.Getenv("VALKEY_TEST_ADDR")
	if addr == "" {
		t.Skip("VALKEY_TEST_ADDR not set")
	}
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)
	defer client.Close()

	owner := "test-" + time.Now().Format("150405.000000")
	exerciseRepository(t, NewValkeyRepository(client, "outfit-test"), owner)
}

func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	repo := NewPostgresRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	owner := "test-" + time.Now().Format("150405.000000")
	exerciseRepository(t, repo, owner)
}
