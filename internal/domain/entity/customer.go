package entity

import "time"

// Customer cliente de la tienda (persona o empresa).
type Customer struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	RUT       string    `db:"rut"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Address   string    `db:"address"`
	Comuna    string    `db:"comuna"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
