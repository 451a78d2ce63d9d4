package domain

// Product categories recognized by the shop.
const (
	CategoryService = "Service"
	CategoryThread  = "Thread"
	CategoryBlank   = "Blank"
	CategorySupply  = "Supply"
)

// Product is one inventory entry. ID is assigned by the document store.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Unit     string  `json:"unit"`
	Barcode  string  `json:"barcode,omitempty"`
}

// CartLine holds a product snapshot taken at add time plus the quantity.
// The snapshot price is authoritative for totals; later inventory edits do
// not reprice lines already in the cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() float64 { return l.Product.Price * float64(l.Quantity) }

// Order statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// OrderItem is an immutable line snapshot inside a completed order.
type OrderItem struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// Order lives only in process memory; it is never written to the store.
// All fields except Status are immutable after creation.
type Order struct {
	ID       int         `json:"id"`
	Customer string      `json:"customer"`
	Items    []OrderItem `json:"items"`
	Total    float64     `json:"total"`
	Status   string      `json:"status"`
	Date     string      `json:"date"`    // YYYY-MM-DD
	DueDate  string      `json:"dueDate"` // Date + 7 days
}

// Customer is session-local; ids are assigned sequentially starting at 1.
type Customer struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	TotalOrders int    `json:"totalOrders"`
}
