package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EconomyNewsletter/internal/domain"
)

func stored(url string) domain.StoredArticle {
	return domain.StoredArticle{
		Article: domain.Article{
			Title:     "Copom mantém Selic",
			Content:   "O Copom manteve a taxa Selic.",
			URL:       url,
			Timestamp: "2025-06-23T18:00:00",
			Category:  "juros",
			Sentiment: 0.25,
		},
		CollectedAt: time.Date(2025, 6, 23, 21, 0, 0, 0, time.UTC),
	}
}

func openTemp(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "news.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func findByURL(ctx context.Context, r *SQLiteRepository, url string) (domain.StoredArticle, error) {
	var (
		stored    domain.StoredArticle
		sentiment sql.NullFloat64
		category  sql.NullString
	)
	err := sq.Select("fonte", "url", "titulo", "categoria", "sentimento").
		From(articlesTable).
		Where(sq.Eq{"url": url}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&stored.Source, &stored.URL, &stored.Title, &category, &sentiment)
	stored.Category = category.String
	stored.Sentiment = sentiment.Float64
	return stored, err
}

func TestSaveIsAppendOnlyByURL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTemp(t)

	inserted, err := repo.Save(ctx, stored("https://cnn/a"))
	require.NoError(t, err)
	assert.True(t, inserted)

	changed := stored("https://cnn/a")
	changed.Title = "Outro título"
	inserted, err = repo.Save(ctx, changed)
	require.NoError(t, err)
	assert.False(t, inserted)

	inserted, err = repo.Save(ctx, stored("https://cnn/b"))
	require.NoError(t, err)
	assert.True(t, inserted)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := findByURL(ctx, repo, "https://cnn/a")
	require.NoError(t, err)
	assert.Equal(t, "Copom mantém Selic", got.Title)
	assert.Equal(t, defaultSource, got.Source)
	assert.Equal(t, "juros", got.Category)
	assert.InDelta(t, 0.25, got.Sentiment, 1e-9)
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "news.db")

	first, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = first.Save(ctx, stored("https://cnn/a"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	n, err := second.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFreshStoreHasNoRows(t *testing.T) {
	t.Parallel()

	_, err := findByURL(context.Background(), openTemp(t), "https://nowhere")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSaveWrapsDriverErrors(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO noticias")).
		WillReturnError(errors.New("database is locked"))

	_, err = NewSQLiteRepository(db).Save(context.Background(), stored("https://cnn/a"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert article https://cnn/a")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUsesConflictClause(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO noticias \(fonte,url,titulo,texto,data,sentimento,categoria,data_coleta\) VALUES .* ON CONFLICT\(url\) DO NOTHING`).
		WithArgs("CNN Brasil", "https://cnn/a", "Copom mantém Selic", "O Copom manteve a taxa Selic.",
			"2025-06-23T18:00:00", 0.25, "juros", "2025-06-23T21:00:00").
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err := NewSQLiteRepository(db).Save(context.Background(), stored("https://cnn/a"))

	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountWrapsDriverErrors(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM noticias")).
		WillReturnError(errors.New("no such table"))

	_, err = NewSQLiteRepository(db).Count(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "count articles")
	assert.NoError(t, mock.ExpectationsWereMet())
}
