package pos

import "stitchpos/internal/domain"

// Orders returns the log newest-first, optionally filtered by status.
// "all" (or empty) returns everything.
func (t *Terminal) Orders(filter string) []domain.Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Order, 0, len(t.orders))
	for _, o := range t.orders {
		if filter == "" || filter == "all" || o.Status == filter {
			out = append(out, o)
		}
	}
	return out
}

// SetOrderStatus is the only mutation allowed on a created order.
func (t *Terminal) SetOrderStatus(id int, status string) error {
	if status != domain.StatusPending && status != domain.StatusCompleted {
		return ErrBadStatus
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.orders {
		if t.orders[i].ID == id {
			t.orders[i].Status = status
			return nil
		}
	}
	return ErrOrderNotFound
}

// AddCustomer assigns the next sequential local id. Customers are never
// persisted and never deleted.
func (t *Terminal) AddCustomer(c domain.Customer) domain.Customer {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := 1
	for _, x := range t.customers {
		if x.ID >= next {
			next = x.ID + 1
		}
	}
	c.ID = next
	c.TotalOrders = 0
	t.customers = append(t.customers, c)
	return c
}

func (t *Terminal) Customers() []domain.Customer {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Customer, len(t.customers))
	copy(out, t.customers)
	return out
}

// SelectCustomer marks the customer the next checkout is billed to.
func (t *Terminal) SelectCustomer(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.customers {
		if t.customers[i].ID == id {
			c := t.customers[i]
			t.selected = &c
			return nil
		}
	}
	return ErrCustomerNotFound
}

func (t *Terminal) ClearSelectedCustomer() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = nil
}

// SelectedCustomer returns the current selection or nil.
func (t *Terminal) SelectedCustomer() *domain.Customer {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected == nil {
		return nil
	}
	c := *t.selected
	return &c
}
