package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/mohamed66886/erp90-search/pkg/core"
)

// CollectionStorage is one collection's database. Documents are stored as a
// JSON fields blob next to their id and creation time, mirroring the
// schema-less collection model of the upstream store.
type CollectionStorage struct {
	db         *sql.DB
	collection string
}

func NewCollectionStorage(dbPath, collection string) (*CollectionStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA cache_size = -16000",
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			fields TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	return &CollectionStorage{db: db, collection: collection}, nil
}

func (s *CollectionStorage) Close() error {
	return s.db.Close()
}

func (s *CollectionStorage) Put(ctx context.Context, doc core.Document) error {
	return s.PutBatch(ctx, []core.Document{doc})
}

func (s *CollectionStorage) PutBatch(ctx context.Context, docs []core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO documents (id, created_at, fields)
		VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, doc := range docs {
		fieldsJSON, err := json.Marshal(doc.Fields)
		if err != nil {
			return fmt.Errorf("marshaling fields for %s: %w", doc.ID, err)
		}
		createdAt := doc.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		// Stored in UTC so the RFC3339 TEXT column sorts chronologically;
		// mixed zone offsets would break the ORDER BY in GetRecent.
		if _, err := stmt.ExecContext(ctx, doc.ID, createdAt.UTC().Format(time.RFC3339), string(fieldsJSON)); err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.ID, err)
		}
	}

	return tx.Commit()
}

func (s *CollectionStorage) GetAll(ctx context.Context) ([]core.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, fields FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.collection, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDocuments(rows)
}

// GetByField returns documents whose named field equals value exactly.
// The comparison happens in SQL via json_extract, so it is an equality
// predicate, never a substring match.
func (s *CollectionStorage) GetByField(ctx context.Context, field string, value any) ([]core.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, fields FROM documents
		WHERE json_extract(fields, ?) = ?`, "$."+field, value)
	if err != nil {
		return nil, fmt.Errorf("querying %s by %s: %w", s.collection, field, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDocuments(rows)
}

// GetRecent returns up to limit documents ordered by orderField descending.
// "created_at" uses the indexed column; any other field name orders on the
// JSON value.
func (s *CollectionStorage) GetRecent(ctx context.Context, orderField string, limit int) ([]core.Document, error) {
	var query string
	var args []any

	if orderField == "" || orderField == "created_at" {
		query = `
			SELECT id, created_at, fields FROM documents
			ORDER BY created_at DESC LIMIT ?`
		args = []any{limit}
	} else {
		query = `
			SELECT id, created_at, fields FROM documents
			ORDER BY json_extract(fields, ?) DESC LIMIT ?`
		args = []any{"$." + orderField, limit}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recent %s: %w", s.collection, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDocuments(rows)
}

func (s *CollectionStorage) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s: %w", s.collection, err)
	}
	return count, nil
}

func (s *CollectionStorage) Optimize() error {
	if _, err := s.db.Exec("PRAGMA optimize"); err != nil {
		return fmt.Errorf("optimizing %s: %w", s.collection, err)
	}
	return nil
}

func scanDocuments(rows *sql.Rows) ([]core.Document, error) {
	var docs []core.Document
	for rows.Next() {
		var id, createdAtStr, fieldsJSON string
		if err := rows.Scan(&id, &createdAtStr, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		createdAt, err := time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			createdAt = time.Time{}
		}

		var fields map[string]any
		if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
			return nil, fmt.Errorf("unmarshaling fields for %s: %w", id, err)
		}

		docs = append(docs, core.Document{
			ID:        id,
			CreatedAt: createdAt,
			Fields:    fields,
		})
	}
	return docs, rows.Err()
}
