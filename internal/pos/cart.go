package pos

import (
	"context"

	"stitchpos/internal/docstore"
	"stitchpos/internal/domain"
)

// AddToCart puts one unit of the product into the cart. The cache stock drops
// by exactly 1 per call regardless of the line's quantity, and the new stock
// is written through to the store. On a failed write the stock decrement is
// undone; the cart line stays (only the cache rolls back on this path).
func (t *Terminal) AddToCart(ctx context.Context, productID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.findProduct(productID)
	if i < 0 {
		return ErrProductNotFound
	}
	p := t.inventory[i]

	inCart := 0
	if li := t.findLine(productID); li >= 0 {
		inCart = t.cart[li].Quantity
	}
	if inCart >= p.Stock {
		return ErrInsufficientStock
	}

	if li := t.findLine(productID); li >= 0 {
		t.cart[li].Quantity++
	} else {
		t.cart = append(t.cart, domain.CartLine{Product: p, Quantity: 1})
	}

	prev := t.inventory[i]
	updated := p
	updated.Stock = p.Stock - 1
	t.inventory[i] = updated

	fields, err := docstore.Encode(updated)
	if err == nil {
		err = t.store.Update(ctx, docstore.ColInventory, productID, fields)
	}
	t.record("update", docstore.ColInventory, productID, err)
	if err != nil {
		t.inventory[i] = prev
		if t.met != nil {
			t.met.StockWriteFailures.Inc()
		}
		return err
	}
	return nil
}

// UpdateQuantity overwrites a line's quantity. Zero or negative removes the
// line. The new quantity is bounded by current cache stock when the product
// is still cached; this path never adjusts the cache itself, so stock and
// cart quantity track independently after the initial add.
func (t *Terminal) UpdateQuantity(productID string, quantity int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if quantity <= 0 {
		t.removeLine(productID)
		return nil
	}
	if i := t.findProduct(productID); i >= 0 && quantity > t.inventory[i].Stock {
		return ErrInsufficientStock
	}
	if li := t.findLine(productID); li >= 0 {
		t.cart[li].Quantity = quantity
	}
	return nil
}

// RemoveFromCart drops the line. Stock already decremented by AddToCart is
// not restored.
func (t *Terminal) RemoveFromCart(productID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLine(productID)
}

// ClearCart empties the cart without restoring stock.
func (t *Terminal) ClearCart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cart = nil
}

func (t *Terminal) removeLine(productID string) {
	for i := range t.cart {
		if t.cart[i].Product.ID == productID {
			t.cart = append(t.cart[:i], t.cart[i+1:]...)
			return
		}
	}
}

// Cart returns a copy of the current lines in insertion order.
func (t *Terminal) Cart() []domain.CartLine {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.CartLine, len(t.cart))
	copy(out, t.cart)
	return out
}

// CartTotal sums price-at-add times quantity over all lines.
func (t *Terminal) CartTotal() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cartTotalLocked()
}

func (t *Terminal) cartTotalLocked() float64 {
	total := 0.0
	for _, l := range t.cart {
		total += l.Subtotal()
	}
	return total
}
