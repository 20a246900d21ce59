package analysiscache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
	"github.com/yanqian/outfit-advisor/internal/domain/attributes"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := New(10, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	_, ok := c.Get(ctx, "https://shop/p/1")
	require.False(t, ok)

	want := analyzer.ProductAnalysis{URL: "https://shop/p/1", Title: "Coat", Attributes: attributes.Extract("wool coat")}
	c.Set(ctx, "https://shop/p/1", want)
	c.client.Wait()

	got, ok := c.Get(ctx, "https://shop/p/1")
	require.True(t, ok)
	require.Equal(t, want, got)
}
