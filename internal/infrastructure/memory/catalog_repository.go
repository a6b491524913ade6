package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct {
	a access
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.products.get(product.ID); ok {
			return domain.ErrDuplicate
		}
		for _, p := range st.products.rows {
			if strings.EqualFold(p.SKU, product.SKU) {
				return domain.ErrDuplicate
			}
		}
		st.products.insert(product.ID, *product)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(st *state) error {
		if p, ok := st.products.get(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate en memoria la exclusión la da el lock de la transacción.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(st *state) error {
		for _, p := range st.products.rows {
			if strings.EqualFold(p.SKU, sku) {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.a.write(func(st *state) error {
		cur, ok := st.products.get(product.ID)
		if !ok {
			return domain.NotFound("producto", product.ID)
		}
		for id, p := range st.products.rows {
			if id != product.ID && strings.EqualFold(p.SKU, product.SKU) {
				return domain.ErrDuplicate
			}
		}
		upd := *product
		upd.Stock = cur.Stock
		upd.CreatedAt = cur.CreatedAt
		st.products.update(product.ID, upd)
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, productID string, stock int) error {
	return r.a.write(func(st *state) error {
		p, ok := st.products.get(productID)
		if !ok {
			return domain.NotFound("producto", productID)
		}
		p.Stock = stock
		st.products.update(productID, p)
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(st *state) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		rows := make([]entity.Product, 0, len(st.products.rows))
		for _, p := range st.products.all() {
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.SKU), search) {
				continue
			}
			if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
				continue
			}
			if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
				continue
			}
			if f.Active != nil && p.Active != *f.Active {
				continue
			}
			rows = append(rows, p)
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		for _, p := range page(rows, f.Limit, f.Offset) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListBelowMinStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(st *state) error {
		for _, p := range st.products.all() {
			if p.Active && p.BelowMinStock() {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Stock-out[i].MinStock, out[j].Stock-out[j].MinStock
		if di != dj {
			return di < dj
		}
		return out[i].SKU < out[j].SKU
	})
	return out, err
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	a access
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.customers.get(c.ID); ok {
			return domain.ErrDuplicate
		}
		st.customers.insert(c.ID, *c)
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.a.read(func(st *state) error {
		if c, ok := st.customers.get(id); ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.a.write(func(st *state) error {
		if !st.customers.update(c.ID, *c) {
			return domain.NotFound("cliente", c.ID)
		}
		return nil
	})
}

// Delete falla con ErrConflict si el cliente tiene ventas o pedidos asociados.
func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		for _, s := range st.sales.rows {
			if s.CustomerID != nil && *s.CustomerID == id {
				return domain.Conflict("el cliente tiene ventas asociadas")
			}
		}
		for _, o := range st.orders.rows {
			if o.CustomerID == id {
				return domain.Conflict("el cliente tiene pedidos asociados")
			}
		}
		if !st.customers.remove(id) {
			return domain.NotFound("cliente", id)
		}
		return nil
	})
}

func (r *CustomerRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.a.read(func(st *state) error {
		q := strings.ToLower(strings.TrimSpace(search))
		var rows []entity.Customer
		for _, c := range st.customers.all() {
			if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.RUT), q) {
				continue
			}
			rows = append(rows, c)
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		for _, c := range page(rows, limit, offset) {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	a access
}

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.suppliers.get(s.ID); ok {
			return domain.ErrDuplicate
		}
		st.suppliers.insert(s.ID, *s)
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.a.read(func(st *state) error {
		if s, ok := st.suppliers.get(id); ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	return r.a.write(func(st *state) error {
		if !st.suppliers.update(s.ID, *s) {
			return domain.NotFound("proveedor", s.ID)
		}
		return nil
	})
}

// Delete falla con ErrConflict si el proveedor tiene compras.
func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	return r.a.write(func(st *state) error {
		for _, p := range st.purchases.rows {
			if p.SupplierID == id {
				return domain.Conflict("el proveedor tiene compras asociadas")
			}
		}
		if !st.suppliers.remove(id) {
			return domain.NotFound("proveedor", id)
		}
		return nil
	})
}

func (r *SupplierRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.a.read(func(st *state) error {
		q := strings.ToLower(strings.TrimSpace(search))
		var rows []entity.Supplier
		for _, s := range st.suppliers.all() {
			if q != "" && !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.RUT), q) {
				continue
			}
			rows = append(rows, s)
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		for _, s := range page(rows, limit, offset) {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	a access
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.write(func(st *state) error {
		for _, x := range st.users.rows {
			if x.ID == u.ID || strings.EqualFold(x.Email, u.Email) {
				return domain.ErrDuplicate
			}
		}
		st.users.insert(u.ID, *u)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(st *state) error {
		if u, ok := st.users.get(id); ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(st *state) error {
		for _, u := range st.users.rows {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
