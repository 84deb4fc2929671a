package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EconomyNewsletter/internal/config"
	"EconomyNewsletter/internal/infrastructure/storage"
	"EconomyNewsletter/internal/sample"
	"EconomyNewsletter/internal/usecase"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	dir := t.TempDir()
	return config.Config{
		Logging:  config.LoggingConfig{Level: "error"},
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "news.db")},
		Output:   config.OutputConfig{Dir: filepath.Join(dir, "outputs")},
	}
}

func TestRunOnceFromInputFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	input := filepath.Join(t.TempDir(), "articles.json")
	raw, err := json.Marshal(sample.Articles())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(input, raw, 0o644))

	ctx := context.Background()
	application, err := New(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), Options{InputPath: input})
	require.NoError(t, err)

	result := application.RunOnce(ctx)
	require.NoError(t, application.Close())

	require.Equal(t, usecase.StatusSuccess, result.Status, result.Error)
	assert.FileExists(t, result.Newsletter)
	assert.Equal(t, cfg.Output.Dir, filepath.Dir(result.Newsletter))

	repo, err := storage.Open(ctx, cfg.Database.Path)
	require.NoError(t, err)
	defer repo.Close()
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(sample.Articles()), n)
}

func TestRunArticlesWithoutStorage(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	ctx := context.Background()

	application, err := New(ctx, cfg, nil, Options{SkipStorage: true})
	require.NoError(t, err)
	defer application.Close()

	result := application.RunArticles(ctx, sample.Articles())

	require.Equal(t, usecase.StatusSuccess, result.Status, result.Error)
	assert.NoFileExists(t, cfg.Database.Path)
}

func TestNewRejectsMissingInput(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), testConfig(t), nil, Options{InputPath: "/does/not/exist.json"})
	assert.Error(t, err)
}
