package entity

import "time"

// OrderStatus estado de un pedido de despacho.
type OrderStatus string

const (
	OrderNew            OrderStatus = "NEW"
	OrderPreparation    OrderStatus = "PREPARATION"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderNew:            {OrderPreparation, OrderCancelled},
	OrderPreparation:    {OrderOutForDelivery, OrderCancelled},
	OrderOutForDelivery: {OrderDelivered, OrderCancelled},
}

// Valid indica si el estado es uno de los conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderNew, OrderPreparation, OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal indica que el pedido ya no admite cambios.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo indica si el pedido puede pasar de s a next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order pedido de despacho a domicilio.
type Order struct {
	ID         string      `db:"id"`
	CustomerID string      `db:"customer_id"`
	Address    string      `db:"address"`
	TimeWindow string      `db:"time_window"`
	Notes      string      `db:"notes"`
	Status     OrderStatus `db:"status"`
	SaleID     *string     `db:"sale_id"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
}
