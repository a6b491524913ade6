package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

var (
	customerColumns = []string{"id", "name", "rut", "email", "phone", "address", "comuna", "created_at", "updated_at"}
	supplierColumns = []string{"id", "name", "rut", "contact_name", "phone", "email", "created_at", "updated_at"}
)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	sql, args, err := psql.Insert("customers").Columns(customerColumns...).Values(
		c.ID, c.Name, c.RUT, c.Email, c.Phone, c.Address, c.Comuna, c.CreatedAt, c.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert customer: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if !isUUID(id) {
		return nil, nil
	}
	sql, args, err := psql.Select(customerColumns...).From("customers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get customer: %w", err)
	}
	var c entity.Customer
	if err := pgxscan.Get(ctx, r.q, &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos de contacto.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE customers SET name = $2, rut = $3, email = $4, phone = $5, address = $6, comuna = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, c.RUT, c.Email, c.Phone, c.Address, c.Comuna, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("cliente", c.ID)
	}
	return nil
}

// Delete elimina el cliente. Si tiene ventas o pedidos devuelve Conflict.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.NotFound("cliente", id)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("el cliente %s tiene ventas o pedidos asociados", id)
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("cliente", id)
	}
	return nil
}

// List lista clientes por nombre, con búsqueda opcional por nombre, RUT o email.
func (r *CustomerRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	q := psql.Select(customerColumns...).From("customers").OrderBy("name", "id")
	if search != "" {
		p := likePattern(search)
		q = q.Where(squirrel.Or{squirrel.ILike{"name": p}, squirrel.ILike{"rut": p}, squirrel.ILike{"email": p}})
	}
	q = paginate(q, limit, offset)
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list customers: %w", err)
	}
	var list []*entity.Customer
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return list, nil
}

// SupplierRepo implementación de SupplierRepository.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	sql, args, err := psql.Insert("suppliers").Columns(supplierColumns...).Values(
		s.ID, s.Name, s.RUT, s.ContactName, s.Phone, s.Email, s.CreatedAt, s.UpdatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert supplier: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if !isUUID(id) {
		return nil, nil
	}
	sql, args, err := psql.Select(supplierColumns...).From("suppliers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get supplier: %w", err)
	}
	var s entity.Supplier
	if err := pgxscan.Get(ctx, r.q, &s, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, rut = $3, contact_name = $4, phone = $5, email = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.Name, s.RUT, s.ContactName, s.Phone, s.Email, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("proveedor", s.ID)
	}
	return nil
}

// Delete elimina el proveedor. Con compras registradas devuelve Conflict.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.NotFound("proveedor", id)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("el proveedor %s tiene compras asociadas", id)
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("proveedor", id)
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Supplier, error) {
	q := psql.Select(supplierColumns...).From("suppliers").OrderBy("name", "id")
	if search != "" {
		p := likePattern(search)
		q = q.Where(squirrel.Or{squirrel.ILike{"name": p}, squirrel.ILike{"rut": p}, squirrel.ILike{"contact_name": p}})
	}
	q = paginate(q, limit, offset)
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list suppliers: %w", err)
	}
	var list []*entity.Supplier
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return list, nil
}

func paginate(q squirrel.SelectBuilder, limit, offset int) squirrel.SelectBuilder {
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}
	return q
}
