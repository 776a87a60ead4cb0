package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Nackophilz/fankai-jellyfin/config"
	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("snapshot file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "title": "One Piece Kai"}]`), 0o600))

		catalogFile = path
		t.Cleanup(func() { catalogFile = "" })

		c, err := newCatalog(config.Catalog{})
		require.NoError(t, err)
		assert.IsType(t, &catalog.Snapshot{}, c)

		series, err := c.GetSeriesByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "One Piece Kai", series.Title)
	})

	t.Run("missing snapshot file", func(t *testing.T) {
		catalogFile = filepath.Join(t.TempDir(), "missing.json")
		t.Cleanup(func() { catalogFile = "" })

		_, err := newCatalog(config.Catalog{})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("cached api client", func(t *testing.T) {
		c, err := newCatalog(config.Catalog{URI: "https://metadata.example.com", CacheTTL: time.Minute})
		require.NoError(t, err)
		assert.IsType(t, &catalog.Cached{}, c)
	})

	t.Run("uncached api client", func(t *testing.T) {
		c, err := newCatalog(config.Catalog{URI: "https://metadata.example.com"})
		require.NoError(t, err)
		assert.IsType(t, &catalog.Client{}, c)
	})

	t.Run("invalid uri", func(t *testing.T) {
		_, err := newCatalog(config.Catalog{URI: "not a url"})
		assert.Error(t, err)
	})
}

func TestFlagInt(t *testing.T) {
	var value int
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&value, "year", 0, "")

	fallback := 1999
	assert.Equal(t, &fallback, flagInt(cmd, "year", value, &fallback))

	require.NoError(t, cmd.Flags().Set("year", "0"))
	got := flagInt(cmd, "year", value, &fallback)
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []string{"Series", "Episodes"}, [][]string{{"One Piece Kai", "2"}})

	out := buf.String()
	assert.Contains(t, out, "SERIES")
	assert.Contains(t, out, "One Piece Kai")
	assert.Contains(t, out, "╭")
}
