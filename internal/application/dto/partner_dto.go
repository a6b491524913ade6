package dto

import "time"

// CustomerRequest entrada para crear o actualizar un cliente.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	RUT     string `json:"rut" validate:"max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=300"`
	Comuna  string `json:"comuna" validate:"max=100"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RUT       string    `json:"rut"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Comuna    string    `json:"comuna"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SupplierRequest entrada para crear o actualizar un proveedor.
type SupplierRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	RUT         string `json:"rut" validate:"max=20"`
	ContactName string `json:"contact_name" validate:"max=200"`
	Phone       string `json:"phone" validate:"max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RUT         string    `json:"rut"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
