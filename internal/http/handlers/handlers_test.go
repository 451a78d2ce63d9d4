package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"stitchpos/internal/docstore"
	"stitchpos/internal/identity"
	"stitchpos/internal/metrics"
	"stitchpos/internal/pos"
)

type testEnv struct {
	app  *fiber.App
	term *pos.Terminal
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	mk := func(email, role string) {
		h, _ := bcrypt.GenerateFromPassword([]byte("Stitch1ng!"), bcrypt.MinCost)
		fields := map[string]any{"email": email, "name": email, "password_hash": string(h)}
		if role != "" {
			fields["role"] = role
		}
		if _, err := store.Create(ctx, docstore.ColUsers, fields); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	mk("admin@shop.test", "admin")
	mk("cashier@shop.test", "")

	seed := []map[string]any{
		{"name": "Rayon Thread", "category": "Thread", "price": 4.50, "stock": 10, "unit": "spool", "barcode": "4006381333931"},
		{"name": "Canvas Tote", "category": "Blank", "price": 12.00, "stock": 2, "unit": "item"},
	}
	for _, fields := range seed {
		if _, err := store.Create(ctx, docstore.ColInventory, fields); err != nil {
			t.Fatalf("seed inventory: %v", err)
		}
	}

	auth := identity.New(store)
	met := metrics.NewRegistry()
	term := pos.NewTerminal(store, met, pos.KeepLocalOnFailure)
	if err := term.ReloadInventory(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	deps := NewDeps(term, auth, met)
	app.Post("/login", deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Get("/session", deps.AuthHandler.Session)

	api := app.Group("/api/v1", RequireUser(auth))
	api.Get("/products", deps.POSHandler.Products)
	api.Post("/scan", deps.POSHandler.Scan)
	api.Get("/cart", deps.POSHandler.CartView)
	api.Post("/cart", deps.POSHandler.CartAdd)
	api.Post("/cart/quantity", deps.POSHandler.CartQuantity)
	api.Post("/cart/remove", deps.POSHandler.CartRemove)
	api.Post("/cart/clear", deps.POSHandler.CartClear)
	api.Post("/checkout", deps.POSHandler.Checkout)
	api.Get("/orders", deps.OrderHandler.List)
	api.Post("/orders/:id/status", deps.OrderHandler.UpdateStatus)
	api.Get("/customers", deps.CustomerHandler.List)
	api.Post("/customers", deps.CustomerHandler.Create)
	api.Post("/customers/select", deps.CustomerHandler.Select)

	admin := app.Group("/admin", RequireAdmin(auth))
	admin.Get("/inventory", deps.AdminHandler.Inventory)
	admin.Post("/inventory", deps.AdminHandler.Save)
	admin.Post("/inventory/:id/delete", deps.AdminHandler.Delete)
	admin.Get("/journal", deps.AdminHandler.Journal)
	admin.Get("/reports", deps.ReportHandler.Stats)
	admin.Get("/reports/download", deps.ReportHandler.Download)

	return &testEnv{app: app, term: term}
}

func jsonReq(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	return resp
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp := e.do(t, jsonReq("POST", "/login", map[string]string{
		"email": email, "password": "Stitch1ng!",
	}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			return ck.Value
		}
	}
	t.Fatal("no sid cookie in login response")
	return ""
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func withSID(req *http.Request, sid string) *http.Request {
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	return req
}

func TestLoginAndSession(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "cashier@shop.test")

	resp := env.do(t, withSID(httptest.NewRequest("GET", "/session", nil), sid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("session status %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["email"] != "cashier@shop.test" || body["role"] != "user" {
		t.Fatalf("session body: %v", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, jsonReq("POST", "/login", map[string]string{
		"email": "cashier@shop.test", "password": "not-the-password",
	}))
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["error"] != "incorrect password" {
		t.Fatalf("error message: %q", body["error"])
	}
}

func TestLoginThrottle(t *testing.T) {
	app := fiber.New()
	app.Post("/login", limiter.New(limiter.Config{
		Max:        3,
		Expiration: 10 * time.Minute,
	}), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusUnauthorized) })

	var last int
	for i := 0; i < 4; i++ {
		resp, err := app.Test(jsonReq("POST", "/login", map[string]string{"email": "x@y.test", "password": "nope"}))
		if err != nil {
			t.Fatal(err)
		}
		last = resp.StatusCode
	}
	if last != fiber.StatusTooManyRequests {
		t.Fatalf("4th attempt: status %d, want 429", last)
	}
}

func TestAnonymousIsRejected(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, httptest.NewRequest("GET", "/api/v1/products", nil))
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status %d, want 401", resp.StatusCode)
	}
}

func TestAdminSurfaceDeniesDefaultRole(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "cashier@shop.test")
	resp := env.do(t, withSID(httptest.NewRequest("GET", "/admin/inventory", nil), sid))
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status %d, want 403", resp.StatusCode)
	}
}

func TestCartCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "cashier@shop.test")

	var products []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	resp := env.do(t, withSID(httptest.NewRequest("GET", "/api/v1/products?q=thread", nil), sid))
	decodeJSON(t, resp, &products)
	if len(products) != 1 {
		t.Fatalf("product search: %+v", products)
	}
	pid := products[0].ID

	resp = env.do(t, withSID(jsonReq("POST", "/api/v1/cart", map[string]string{"productId": pid}), sid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("cart add: status %d", resp.StatusCode)
	}
	resp = env.do(t, withSID(jsonReq("POST", "/api/v1/cart/quantity", map[string]any{"productId": pid, "quantity": 3}), sid))
	var cart struct {
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
	}
	decodeJSON(t, resp, &cart)
	if cart.Subtotal != 13.50 {
		t.Fatalf("subtotal: %v", cart.Subtotal)
	}

	resp = env.do(t, withSID(jsonReq("POST", "/api/v1/checkout", nil), sid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("checkout: status %d", resp.StatusCode)
	}
	var rcpt struct {
		Order struct {
			ID       int     `json:"id"`
			Total    float64 `json:"total"`
			Status   string  `json:"status"`
			Customer string  `json:"customer"`
		} `json:"order"`
		Advisory string `json:"advisory"`
	}
	decodeJSON(t, resp, &rcpt)
	if rcpt.Order.ID != 1001 || rcpt.Order.Total != 13.50 || rcpt.Order.Status != "pending" {
		t.Fatalf("receipt: %+v", rcpt.Order)
	}
	if rcpt.Order.Customer != pos.WalkIn {
		t.Fatalf("customer: %q", rcpt.Order.Customer)
	}
	if rcpt.Advisory != "" {
		t.Fatalf("unexpected advisory: %q", rcpt.Advisory)
	}

	// The order is visible and the empty cart rejects a second checkout.
	var orders []struct {
		ID int `json:"id"`
	}
	resp = env.do(t, withSID(httptest.NewRequest("GET", "/api/v1/orders", nil), sid))
	decodeJSON(t, resp, &orders)
	if len(orders) != 1 || orders[0].ID != 1001 {
		t.Fatalf("orders: %+v", orders)
	}
	resp = env.do(t, withSID(jsonReq("POST", "/api/v1/checkout", nil), sid))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("empty checkout: status %d", resp.StatusCode)
	}
}

func TestScanAddsToCart(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "cashier@shop.test")

	resp := env.do(t, withSID(jsonReq("POST", "/api/v1/scan", map[string]string{"code": "4006381333931"}), sid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("scan: status %d", resp.StatusCode)
	}
	if len(env.term.Cart()) != 1 {
		t.Fatalf("cart after scan: %+v", env.term.Cart())
	}

	resp = env.do(t, withSID(jsonReq("POST", "/api/v1/scan", map[string]string{"code": "0000000000000"}), sid))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("unknown code: status %d", resp.StatusCode)
	}
}

func TestAdminProductSaveAndDelete(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "admin@shop.test")

	resp := env.do(t, withSID(jsonReq("POST", "/admin/inventory", map[string]string{
		"name": "Monogram Service", "category": "Service", "price": "15.00", "stock": "999", "unit": "job",
	}), sid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("save: status %d", resp.StatusCode)
	}
	var saved struct {
		ID      string `json:"id"`
		Barcode string `json:"barcode"`
	}
	decodeJSON(t, resp, &saved)
	if saved.ID == "" || len(saved.Barcode) != 13 {
		t.Fatalf("saved product: %+v", saved)
	}

	resp = env.do(t, withSID(jsonReq("POST", "/admin/inventory", map[string]string{
		"name": "Bad", "category": "Gadget", "price": "1", "stock": "1",
	}), sid))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("invalid category: status %d", resp.StatusCode)
	}

	resp = env.do(t, withSID(jsonReq("POST", "/admin/inventory/"+saved.ID+"/delete", nil), sid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	for _, p := range env.term.Products() {
		if p.ID == saved.ID {
			t.Fatal("product survived delete")
		}
	}
}

func TestCustomerSelectFlow(t *testing.T) {
	env := newTestEnv(t)
	sid := env.login(t, "cashier@shop.test")

	resp := env.do(t, withSID(jsonReq("POST", "/api/v1/customers", map[string]string{
		"name": "Dana Reyes", "phone": "555-010-2288",
	}), sid))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create customer: status %d", resp.StatusCode)
	}
	var cust struct {
		ID int `json:"id"`
	}
	decodeJSON(t, resp, &cust)

	resp = env.do(t, withSID(jsonReq("POST", "/api/v1/customers/select", map[string]int{"id": cust.ID}), sid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("select: status %d", resp.StatusCode)
	}
	if sel := env.term.SelectedCustomer(); sel == nil || sel.Name != "Dana Reyes" {
		t.Fatalf("selection: %+v", sel)
	}

	resp = env.do(t, withSID(jsonReq("POST", "/api/v1/customers/select", map[string]int{"id": 0}), sid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("clear: status %d", resp.StatusCode)
	}
	if env.term.SelectedCustomer() != nil {
		t.Fatal("selection not cleared")
	}

	resp = env.do(t, withSID(jsonReq("POST", "/api/v1/customers/select", map[string]int{"id": 99}), sid))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("missing customer: status %d", resp.StatusCode)
	}
}

func TestReportStatsAndDownload(t *testing.T) {
	env := newTestEnv(t)
	cashier := env.login(t, "cashier@shop.test")
	admin := env.login(t, "admin@shop.test")

	// One sale so the report has content.
	var products []struct {
		ID string `json:"id"`
	}
	resp := env.do(t, withSID(httptest.NewRequest("GET", "/api/v1/products", nil), cashier))
	decodeJSON(t, resp, &products)
	env.do(t, withSID(jsonReq("POST", "/api/v1/cart", map[string]string{"productId": products[0].ID}), cashier))
	env.do(t, withSID(jsonReq("POST", "/api/v1/checkout", nil), cashier))

	resp = env.do(t, withSID(httptest.NewRequest("GET", "/admin/reports", nil), admin))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("stats: status %d", resp.StatusCode)
	}
	var stats struct {
		Summary struct {
			TotalOrders int `json:"totalOrders"`
		} `json:"summary"`
		SalesByDay []struct {
			Date   string  `json:"date"`
			Amount float64 `json:"amount"`
		} `json:"salesByDay"`
	}
	decodeJSON(t, resp, &stats)
	if stats.Summary.TotalOrders != 1 {
		t.Fatalf("summary: %+v", stats.Summary)
	}
	if len(stats.SalesByDay) < 28 {
		t.Fatalf("salesByDay length: %d", len(stats.SalesByDay))
	}

	resp = env.do(t, withSID(httptest.NewRequest("GET", "/admin/reports/download", nil), admin))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("download: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); !strings.Contains(ct, "vnd.ms-excel") {
		t.Fatalf("content type: %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "<table") {
		t.Fatal("download body is not an HTML table")
	}
}

func TestBadMonthRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, "admin@shop.test")
	resp := env.do(t, withSID(httptest.NewRequest("GET", "/admin/reports?month=February", nil), admin))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}
