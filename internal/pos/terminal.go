// Package pos holds the in-process state of one register: the inventory
// cache, the active cart, the order log, and the customer book. All command
// paths go through the Terminal so there is exactly one owner of the mutable
// state, with remote effects replayed against the document store after the
// local mutation.
package pos

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"stitchpos/internal/docstore"
	"stitchpos/internal/domain"
	"stitchpos/internal/metrics"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrBadStatus         = errors.New("unknown order status")
)

// WalkIn is the customer label used when no customer is selected at checkout.
const WalkIn = "Walk-in Customer"

// RollbackPolicy decides what happens to already-applied local checkout state
// when remote stock writes fail. KeepLocalOnFailure reproduces the historical
// behavior: the order and the local stock decrements stand and the failure is
// advisory only. RevertLocalOnFailure restores the cache entries of failed
// lines, trading the advisory for local/remote agreement.
type RollbackPolicy int

const (
	KeepLocalOnFailure RollbackPolicy = iota
	RevertLocalOnFailure
)

// Terminal owns all register state. Methods serialize behind one mutex, so
// commands observe the same single-threaded discipline the workflow assumes;
// remote writes during checkout stay bounded to one in flight.
type Terminal struct {
	store  docstore.Store
	met    *metrics.Registry
	policy RollbackPolicy

	mu        sync.Mutex
	inventory []domain.Product
	cart      []domain.CartLine
	orders    []domain.Order // newest first
	customers []domain.Customer
	selected  *domain.Customer
	journal   []SyncRecord
}

func NewTerminal(store docstore.Store, met *metrics.Registry, policy RollbackPolicy) *Terminal {
	return &Terminal{store: store, met: met, policy: policy}
}

// ReloadInventory replaces the cache wholesale from the inventory collection.
// A fetch yielding zero records leaves the existing cache untouched; an empty
// page is indistinguishable from a transient read glitch, so the last known
// state wins. There is no background refresh after this.
func (t *Terminal) ReloadInventory(ctx context.Context) error {
	docs, err := t.store.List(ctx, docstore.ColInventory)
	if err != nil {
		return err
	}
	items := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		var p domain.Product
		if err := d.Decode(&p); err != nil {
			return err
		}
		p.ID = d.ID
		items = append(items, p)
	}
	if len(items) == 0 {
		return nil
	}
	t.mu.Lock()
	t.inventory = items
	t.mu.Unlock()
	return nil
}

// Products returns a copy of the inventory cache.
func (t *Terminal) Products() []domain.Product {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Product, len(t.inventory))
	copy(out, t.inventory)
	return out
}

// SearchInventory matches the term against product name or category,
// case-insensitive. An empty term returns everything.
func (t *Terminal) SearchInventory(term string) []domain.Product {
	t.mu.Lock()
	defer t.mu.Unlock()
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.Product, 0, len(t.inventory))
	for _, p := range t.inventory {
		if term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			out = append(out, p)
		}
	}
	return out
}

func (t *Terminal) findProduct(id string) int {
	for i := range t.inventory {
		if t.inventory[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Terminal) findLine(id string) int {
	for i := range t.cart {
		if t.cart[i].Product.ID == id {
			return i
		}
	}
	return -1
}

func today() string { return time.Now().Format("2006-01-02") }

func dueDate() string { return time.Now().Add(7 * 24 * time.Hour).Format("2006-01-02") }
