package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"stitchpos/internal/config"
	"stitchpos/internal/docstore"
	"stitchpos/internal/domain"
	"stitchpos/internal/http/handlers"
	"stitchpos/internal/identity"
	applog "stitchpos/internal/log"
	"stitchpos/internal/metrics"
	"stitchpos/internal/pos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	store, err := docstore.Open(cfg.StoreDSN)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := identity.SeedUsers(ctx, store, cfg.SeedAdminMail, cfg.SeedAdminPass); err != nil {
		log.Fatal(err)
	}

	auth := identity.New(store)
	auth.OnChange(func(u *domain.User) {
		if u != nil {
			log.Printf("[auth] session started for %s", u.Email)
		} else {
			log.Printf("[auth] session ended")
		}
	})

	met := metrics.NewRegistry()
	term := pos.NewTerminal(store, met, pos.KeepLocalOnFailure)

	// One wholesale load at startup; a failed read leaves the register on its
	// last known (possibly empty) cache rather than killing the process.
	if err := term.ReloadInventory(ctx); err != nil {
		log.Printf("[warn] inventory load failed, starting with empty cache: %v", err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(term, auth, met)

	// Auth (login throttled)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Get("/session", deps.AuthHandler.Session)

	// Register surface
	api := app.Group("/api/v1", handlers.RequireUser(auth))
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

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(auth))
	admin.Get("/inventory", deps.AdminHandler.Inventory)
	admin.Post("/inventory", deps.AdminHandler.Save)
	admin.Post("/inventory/:id/delete", deps.AdminHandler.Delete)
	admin.Get("/journal", deps.AdminHandler.Journal)
	admin.Get("/reports", deps.ReportHandler.Stats)
	admin.Get("/reports/download", deps.ReportHandler.Download)

	// Health & metrics
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(met.Handler()))

	log.Fatal(app.Listen(":" + cfg.Port))
}
