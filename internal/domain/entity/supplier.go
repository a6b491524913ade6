package entity

import "time"

// Supplier proveedor al que se le registran compras.
type Supplier struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	RUT         string    `db:"rut"`
	ContactName string    `db:"contact_name"`
	Phone       string    `db:"phone"`
	Email       string    `db:"email"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
