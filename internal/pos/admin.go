package pos

import (
	"context"

	"stitchpos/internal/docstore"
	"stitchpos/internal/domain"
)

// SaveProduct creates or updates an inventory record. With editingID set the
// store is updated first and the cache patched only after the write lands, so
// a failed edit leaves the cached entry byte-identical to its pre-edit value.
// Without editingID the store assigns the id and the cache appends the new
// record under it.
func (t *Terminal) SaveProduct(ctx context.Context, p domain.Product, editingID string) (domain.Product, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fields, err := docstore.Encode(p)
	if err != nil {
		return domain.Product{}, err
	}

	if editingID != "" {
		i := t.findProduct(editingID)
		if i < 0 {
			return domain.Product{}, ErrProductNotFound
		}
		err := t.store.Update(ctx, docstore.ColInventory, editingID, fields)
		t.record("update", docstore.ColInventory, editingID, err)
		if err != nil {
			return domain.Product{}, err
		}
		p.ID = editingID
		t.inventory[i] = p
		return p, nil
	}

	id, err := t.store.Create(ctx, docstore.ColInventory, fields)
	t.record("create", docstore.ColInventory, id, err)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id
	t.inventory = append(t.inventory, p)
	return p, nil
}

// DeleteProduct removes the record remotely, then from the cache. A failed
// delete leaves the cache untouched.
func (t *Terminal) DeleteProduct(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.findProduct(id)
	if i < 0 {
		return ErrProductNotFound
	}
	err := t.store.Delete(ctx, docstore.ColInventory, id)
	t.record("delete", docstore.ColInventory, id, err)
	if err != nil {
		return err
	}
	t.inventory = append(t.inventory[:i], t.inventory[i+1:]...)
	return nil
}
