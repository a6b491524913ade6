package repository

import (
	"context"

	"github.com/jhoicas/petmaison-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error)
}
