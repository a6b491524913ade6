package repository

import "context"

// UnitOfWork repositorios atados a una misma transacción.
type UnitOfWork struct {
	Products  ProductRepository
	Movements StockMovementRepository
	Purchases PurchaseRepository
	Sales     SaleRepository
	Orders    OrderRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error
}
