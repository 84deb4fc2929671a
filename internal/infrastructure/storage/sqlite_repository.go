package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"EconomyNewsletter/internal/domain"
	"EconomyNewsletter/internal/ports"
)

const (
	articlesTable = "noticias"
	defaultSource = "CNN Brasil"
)

const schema = `CREATE TABLE IF NOT EXISTS noticias (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    fonte TEXT NOT NULL,
    url TEXT UNIQUE NOT NULL,
    titulo TEXT NOT NULL,
    texto TEXT NOT NULL,
    data TEXT,
    sentimento REAL,
    categoria TEXT,
    data_coleta TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteRepository is the append-only article store. Articles are keyed by
// URL; saving a known URL is a no-op.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*SQLiteRepository)(nil)

// Open connects to the sqlite file at path and creates the schema.
func Open(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	repo := NewSQLiteRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLiteRepository wires an existing sql.DB.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Migrate creates the articles table when missing.
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}
	return nil
}

// Save inserts the article, ignoring URL conflicts.
func (r *SQLiteRepository) Save(ctx context.Context, article domain.StoredArticle) (bool, error) {
	if r.db == nil {
		return false, nil
	}

	source := article.Source
	if source == "" {
		source = defaultSource
	}

	query := sq.Insert(articlesTable).
		Columns("fonte", "url", "titulo", "texto", "data", "sentimento", "categoria", "data_coleta").
		Values(
			source,
			article.URL,
			article.Title,
			article.Content,
			article.Timestamp,
			article.Sentiment,
			article.Category,
			article.CollectedAt.UTC().Format(domain.TimestampLayout),
		).
		Suffix("ON CONFLICT(url) DO NOTHING").
		RunWith(r.db)

	res, err := query.ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("insert article %s: %w", article.URL, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of stored articles.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	if r.db == nil {
		return 0, nil
	}

	var n int
	err := sq.Select("COUNT(*)").
		From(articlesTable).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
