package dto

import "time"

// CreateOrderRequest entrada para crear un pedido de despacho.
type CreateOrderRequest struct {
	CustomerID string  `json:"customer_id" validate:"required"`
	Address    string  `json:"address" validate:"required,max=300"`
	TimeWindow string  `json:"time_window" validate:"max=100"`
	Notes      string  `json:"notes" validate:"max=1000"`
	SaleID     *string `json:"sale_id"`
}

// UpdateOrderStatusRequest entrada para cambiar el estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NEW PREPARATION OUT_FOR_DELIVERY DELIVERED CANCELLED"`
}

// LinkOrderSaleRequest entrada para asociar una venta confirmada al pedido.
type LinkOrderSaleRequest struct {
	SaleID string `json:"sale_id" validate:"required"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Address    string    `json:"address"`
	TimeWindow string    `json:"time_window"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
	SaleID     *string   `json:"sale_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
