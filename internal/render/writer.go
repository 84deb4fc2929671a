package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"EconomyNewsletter/internal/ports"
)

// FileWriter stores rendered newsletters as timestamped HTML files.
type FileWriter struct {
	dir string
}

var _ ports.NewsletterPublisher = (*FileWriter)(nil)

// NewFileWriter writes into dir, defaulting to "outputs".
func NewFileWriter(dir string) *FileWriter {
	if dir == "" {
		dir = "outputs"
	}
	return &FileWriter{dir: dir}
}

// Publish writes the page and returns the file path.
func (w *FileWriter) Publish(ctx context.Context, html []byte, at time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, FileName(at))
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return "", fmt.Errorf("write newsletter: %w", err)
	}
	return path, nil
}

// FileName is the newsletter file name for a run at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("newsletter_economia_%s.html", t.Format("20060102_150405"))
}
