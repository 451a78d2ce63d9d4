// Package docstore is the client for the remote document database. The
// contract is deliberately narrow: keyed create/read/update/delete over named
// collections, no transactions, no batch atomicity. Callers that need
// multi-record consistency have to build it themselves (and mostly don't,
// which is part of the workflow contract this service reproduces).
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("docstore: document not found")

// Collections consumed by the application.
const (
	ColInventory = "inventory"
	ColUsers     = "users"
)

// Document is one record in a collection. Fields is the decoded JSON body.
type Document struct {
	ID     string
	Fields map[string]any
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
	b, err := json.Marshal(d.Fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Encode converts a struct into a field map suitable for Create/Update.
// The id field is stripped; the store owns record keys.
func Encode(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	delete(m, "id")
	return m, nil
}

// Store is the CRUD surface of the document database. Update takes a partial
// field map and merges it into the stored body; Delete is idempotent.
type Store interface {
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Update(ctx context.Context, collection, id string, partial map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}
