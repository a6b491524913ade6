package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User usuario del back-office (staff de la tienda).
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"` // bcrypt
	Name         string    `db:"name"`
	Role         string    `db:"role"` // admin, vendedor
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ValidRole indica si el rol es uno de los soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVendedor
}
