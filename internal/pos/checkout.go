package pos

import (
	"context"

	"stitchpos/internal/docstore"
	"stitchpos/internal/domain"
)

// AdvisoryPartialFailure is the notice attached to a receipt when one or more
// remote stock writes failed after the sale was already applied locally.
const AdvisoryPartialFailure = "sale completed but stock update failed"

// Receipt is what the register hands back after a checkout settles.
type Receipt struct {
	Order        domain.Order `json:"order"`
	Retired      int          `json:"retired"`      // products dropped at stock <= 0
	FailedWrites int          `json:"failedWrites"` // remote writes that did not land
	Advisory     string       `json:"advisory,omitempty"`
}

// Checkout converts the cart into an order and replays the stock deltas
// against the store, one line at a time.
//
// Phases: validate (empty cart fails with no mutation), reserve (order built
// with id max+1 or 1001, prepended pending; cache decremented per line with
// entries at stock <= 0 dropped entirely), persist (sequential per-line
// delete-or-update computed against the pre-checkout cache snapshot; failures
// are collected, never retried), settle (cart and selected customer cleared,
// success regardless of remote failures).
//
// Under KeepLocalOnFailure a failed write leaves all local state in place and
// only sets the advisory, asymmetric with the single-entity paths, which roll
// back. RevertLocalOnFailure restores the cache entries of failed lines and
// drops the order from the log if no line landed.
func (t *Terminal) Checkout(ctx context.Context) (Receipt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Validating
	if len(t.cart) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	// Reserving
	order := domain.Order{
		ID:       t.nextOrderID(),
		Customer: WalkIn,
		Total:    t.cartTotalLocked(),
		Status:   domain.StatusPending,
		Date:     today(),
		DueDate:  dueDate(),
	}
	if t.selected != nil {
		order.Customer = t.selected.Name
	}
	for _, l := range t.cart {
		order.Items = append(order.Items, domain.OrderItem{
			Name:  l.Product.Name,
			Qty:   l.Quantity,
			Price: l.Product.Price,
		})
	}
	t.orders = append([]domain.Order{order}, t.orders...)

	snapshot := make([]domain.Product, len(t.inventory))
	copy(snapshot, t.inventory)

	retired := 0
	kept := t.inventory[:0:0]
	for _, p := range t.inventory {
		if li := t.findLine(p.ID); li >= 0 {
			p.Stock -= t.cart[li].Quantity
			if p.Stock <= 0 {
				// Fully retired, not just zeroed.
				retired++
				continue
			}
		}
		kept = append(kept, p)
	}
	t.inventory = kept

	// Persisting: strictly one remote write in flight; each delta computed
	// against the pre-checkout snapshot, so an over-sold line can push the
	// computed stock negative and still resolve to a delete.
	var failed []domain.CartLine
	for _, l := range t.cart {
		var snap *domain.Product
		for i := range snapshot {
			if snapshot[i].ID == l.Product.ID {
				snap = &snapshot[i]
				break
			}
		}
		if snap == nil {
			continue
		}
		newStock := snap.Stock - l.Quantity

		var err error
		if newStock <= 0 {
			err = t.store.Delete(ctx, docstore.ColInventory, snap.ID)
			t.record("delete", docstore.ColInventory, snap.ID, err)
		} else {
			err = t.store.Update(ctx, docstore.ColInventory, snap.ID, map[string]any{
				"name":     snap.Name,
				"category": snap.Category,
				"price":    snap.Price,
				"stock":    newStock,
				"unit":     snap.Unit,
			})
			t.record("update", docstore.ColInventory, snap.ID, err)
		}
		if err != nil {
			failed = append(failed, l)
			if t.met != nil {
				t.met.StockWriteFailures.Inc()
			}
		}
	}

	if t.policy == RevertLocalOnFailure && len(failed) > 0 {
		for _, l := range failed {
			t.restoreFromSnapshot(snapshot, l.Product.ID)
		}
		if len(failed) == len(t.cart) {
			t.orders = t.orders[1:]
		}
	}

	// Settled
	t.cart = nil
	t.selected = nil
	if t.met != nil {
		t.met.OrdersPlaced.Inc()
		t.met.OrderValue.Add(order.Total)
		t.met.ProductsRetired.Add(float64(retired))
	}

	rcpt := Receipt{Order: order, Retired: retired, FailedWrites: len(failed)}
	if len(failed) > 0 {
		rcpt.Advisory = AdvisoryPartialFailure
	}
	return rcpt, nil
}

func (t *Terminal) restoreFromSnapshot(snapshot []domain.Product, id string) {
	for _, p := range snapshot {
		if p.ID != id {
			continue
		}
		if i := t.findProduct(id); i >= 0 {
			t.inventory[i] = p
		} else {
			t.inventory = append(t.inventory, p)
		}
		return
	}
}

// nextOrderID takes the max of the existing in-memory order ids, not a
// store-assigned sequence; concurrent registers will collide.
func (t *Terminal) nextOrderID() int {
	if len(t.orders) == 0 {
		return 1001
	}
	max := t.orders[0].ID
	for _, o := range t.orders[1:] {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}
