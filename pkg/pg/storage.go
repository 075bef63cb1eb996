package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the part of *pgxpool.Pool used by Storage.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Document is a stored row of html_documents.
type Document struct {
	Key         string
	Content     string
	ContentType string
	UpdatedAt   time.Time
}

const (
	upsertDocumentSQL = `INSERT INTO html_documents (key, content, content_type, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (key) DO UPDATE
SET content = EXCLUDED.content, content_type = EXCLUDED.content_type, updated_at = EXCLUDED.updated_at`

	selectDocumentSQL = `SELECT key, content, content_type, updated_at FROM html_documents WHERE key = $1`
)

// Storage keeps documents in the html_documents table created by Migrate.
// A Put for an existing key replaces its content.
type Storage struct {
	db DB
}

func NewStorage(db DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Put(ctx context.Context, key string, content []byte, contentType string) error {
	if contentType == "" {
		contentType = "text/html"
	}
	if _, err := s.db.Exec(ctx, upsertDocumentSQL, key, string(content), contentType); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPutFailed, key, err)
	}
	return nil
}

// Get loads the document stored under key.
func (s *Storage) Get(ctx context.Context, key string) (Document, error) {
	var doc Document
	err := s.db.QueryRow(ctx, selectDocumentSQL, key).
		Scan(&doc.Key, &doc.Content, &doc.ContentType, &doc.UpdatedAt)
	if err != nil {
		if IsNotFoundError(err) {
			return Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, key)
		}
		return Document{}, fmt.Errorf("pg: get %s: %w", key, err)
	}
	return doc, nil
}
