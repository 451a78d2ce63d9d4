package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every collection in one documents table, body as JSON.
type SQLiteStore struct {
	db *sqlx.DB
}

func Open(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents(
  collection TEXT NOT NULL,
  id         TEXT NOT NULL,
  body       TEXT NOT NULL,
  updated_at TEXT,
  PRIMARY KEY(collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStore) DB() *sqlx.DB { return s.db }

func (s *SQLiteStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	body, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents(collection, id, body, updated_at) VALUES(?,?,?,?)
	`, collection, id, string(body), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []struct {
		ID   string `db:"id"`
		Body string `db:"body"`
	}
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, body FROM documents WHERE collection = ? ORDER BY updated_at, id
	`, collection); err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(rows))
	for _, r := range rows {
		var fields map[string]any
		if err := json.Unmarshal([]byte(r.Body), &fields); err != nil {
			return nil, err
		}
		out = append(out, Document{ID: r.ID, Fields: fields})
	}
	return out, nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var body string
	err := s.db.GetContext(ctx, &body, `
		SELECT body FROM documents WHERE collection = ? AND id = ?
	`, collection, id)
	if err == sql.ErrNoRows {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return Document{}, err
	}
	return Document{ID: id, Fields: fields}, nil
}

// Update merges partial into the stored body, creating no document: a missing
// key is ErrNotFound.
func (s *SQLiteStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	for k, v := range partial {
		doc.Fields[k] = v
	}
	body, err := json.Marshal(doc.Fields)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?
	`, string(body), time.Now().UTC().Format(time.RFC3339), collection, id)
	return err
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE collection = ? AND id = ?
	`, collection, id)
	return err
}
