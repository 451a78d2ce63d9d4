package identity

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"stitchpos/internal/docstore"
	"stitchpos/internal/domain"
)

// SeedUsers ensures an admin and a cashier account exist so the service is
// reachable on first run. Inventory is never seeded; products enter through
// the admin surface.
func SeedUsers(ctx context.Context, store docstore.Store, adminEmail, adminPass string) error {
	docs, err := store.List(ctx, docstore.ColUsers)
	if err != nil {
		return err
	}
	if len(docs) > 0 {
		return nil
	}

	log.Println("[seed] inserting admin and cashier users")

	mk := func(email, name, role, raw string) map[string]any {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return map[string]any{
			"email":         email,
			"name":          name,
			"password_hash": string(h),
			"role":          role,
		}
	}

	if _, err := store.Create(ctx, docstore.ColUsers, mk(adminEmail, "Admin", domain.RoleAdmin, adminPass)); err != nil {
		return err
	}
	_, err = store.Create(ctx, docstore.ColUsers, mk("cashier@stitchpos.test", "Cashier", domain.RoleUser, adminPass))
	return err
}
