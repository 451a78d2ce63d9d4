package domain

// Roles stored on user documents. Anything else (or nothing) is treated as
// the default role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Hash  string `json:"password_hash"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user unlocks the inventory/reports/admin
// surfaces.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
