package pos

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"stitchpos/internal/docstore"
)

// fakeStore is an in-memory document store with per-key failure injection,
// standing in for the remote database in terminal tests.
type fakeStore struct {
	mu         sync.Mutex
	data       map[string]map[string]map[string]any // collection -> id -> fields
	next       int
	failUpdate map[string]bool // id -> fail
	failDelete map[string]bool
	failCreate bool
	failList   bool
}

var errInjected = errors.New("injected store failure")

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:       map[string]map[string]map[string]any{},
		failUpdate: map[string]bool{},
		failDelete: map[string]bool{},
	}
}

func (s *fakeStore) col(name string) map[string]map[string]any {
	if s.data[name] == nil {
		s.data[name] = map[string]map[string]any{}
	}
	return s.data[name]
}

func (s *fakeStore) put(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := map[string]any{}
	for k, v := range fields {
		cp[k] = v
	}
	s.col(collection)[id] = cp
}

func (s *fakeStore) Create(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return "", errInjected
	}
	s.next++
	id := "doc-" + strconv.Itoa(s.next)
	cp := map[string]any{}
	for k, v := range fields {
		cp[k] = v
	}
	s.col(collection)[id] = cp
	return id, nil
}

func (s *fakeStore) List(_ context.Context, collection string) ([]docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList {
		return nil, errInjected
	}
	var out []docstore.Document
	for id, fields := range s.col(collection) {
		cp := map[string]any{}
		for k, v := range fields {
			cp[k] = v
		}
		out = append(out, docstore.Document{ID: id, Fields: cp})
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, collection, id string) (docstore.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.col(collection)[id]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	cp := map[string]any{}
	for k, v := range fields {
		cp[k] = v
	}
	return docstore.Document{ID: id, Fields: cp}, nil
}

func (s *fakeStore) Update(_ context.Context, collection, id string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpdate[id] {
		return fmt.Errorf("update %s: %w", id, errInjected)
	}
	fields, ok := s.col(collection)[id]
	if !ok {
		return docstore.ErrNotFound
	}
	for k, v := range partial {
		fields[k] = v
	}
	return nil
}

func (s *fakeStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete[id] {
		return fmt.Errorf("delete %s: %w", id, errInjected)
	}
	delete(s.col(collection), id)
	return nil
}

func (s *fakeStore) stock(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.col(docstore.ColInventory)[id]
	if !ok {
		return 0, false
	}
	switch v := fields["stock"].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, true
}
