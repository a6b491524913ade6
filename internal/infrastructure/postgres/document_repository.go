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
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
)

var (
	purchaseColumns = []string{
		"id", "supplier_id", "date", "notes", "status", "subtotal_net", "vat", "total",
		"created_by", "confirmed_at", "created_at", "updated_at",
	}
	purchaseItemColumns = []string{
		"id", "purchase_id", "product_id", "qty", "unit_cost_net", "vat_rate", "line_total", "created_at",
	}
	saleColumns = []string{
		"id", "customer_id", "user_id", "date", "status", "payment_method", "notes",
		"subtotal_net", "discount", "vat", "total", "confirmed_at", "created_at", "updated_at",
	}
	saleItemColumns = []string{
		"id", "sale_id", "product_id", "qty", "unit_price_net", "discount", "vat_rate", "line_total", "created_at",
	}
	orderColumns = []string{
		"id", "customer_id", "address", "time_window", "notes", "status", "sale_id", "created_at", "updated_at",
	}
)

// getRow ejecuta q y escanea una fila en dst. Devuelve (false, nil) si no hay filas.
func getRow(ctx context.Context, q Querier, dst any, b squirrel.SelectBuilder) (bool, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return false, err
	}
	if err := pgxscan.Get(ctx, q, dst, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// selectRows ejecuta q y escanea todas las filas en dst (puntero a slice).
func selectRows(ctx context.Context, q Querier, dst any, b squirrel.SelectBuilder) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return pgxscan.Select(ctx, q, dst, sql, args...)
}

// documentWhere aplica estado y rango [From, To) sobre la columna date. Más recientes primero.
func documentWhere(b squirrel.SelectBuilder, f repository.DocumentFilter) squirrel.SelectBuilder {
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"status": f.Status})
	}
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		b = b.Where(squirrel.Lt{"date": *f.To})
	}
	return paginate(b.OrderBy("date DESC", "created_at DESC"), f.Limit, f.Offset)
}

func exec(ctx context.Context, q Querier, b interface {
	ToSql() (string, []any, error)
}) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	cmd, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// PurchaseRepo compras y líneas de compra.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := exec(ctx, r.q, psql.Insert("purchases").Columns(purchaseColumns...).Values(
		p.ID, p.SupplierID, p.Date, p.Notes, p.Status, p.SubtotalNet, p.VAT, p.Total,
		p.CreatedBy, p.ConfirmedAt, p.CreatedAt, p.UpdatedAt,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("proveedor", p.SupplierID)
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate bloquea el encabezado (FOR UPDATE) hasta el fin de la transacción.
func (r *PurchaseRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, id, true)
}

func (r *PurchaseRepo) get(ctx context.Context, id string, lock bool) (*entity.Purchase, error) {
	if !isUUID(id) {
		return nil, nil
	}
	b := psql.Select(purchaseColumns...).From("purchases").Where(squirrel.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	var p entity.Purchase
	ok, err := getRow(ctx, r.q, &p, b)
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Update persiste estado, totales y fecha de confirmación.
func (r *PurchaseRepo) Update(ctx context.Context, p *entity.Purchase) error {
	n, err := exec(ctx, r.q, psql.Update("purchases").SetMap(map[string]any{
		"notes":        p.Notes,
		"status":       p.Status,
		"subtotal_net": p.SubtotalNet,
		"vat":          p.VAT,
		"total":        p.Total,
		"confirmed_at": p.ConfirmedAt,
		"updated_at":   p.UpdatedAt,
	}).Where(squirrel.Eq{"id": p.ID}))
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if n == 0 {
		return domain.NotFound("compra", p.ID)
	}
	return nil
}

func (r *PurchaseRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Purchase, error) {
	var list []*entity.Purchase
	if err := selectRows(ctx, r.q, &list, documentWhere(psql.Select(purchaseColumns...).From("purchases"), f)); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return list, nil
}

func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	_, err := exec(ctx, r.q, psql.Insert("purchase_items").Columns(purchaseItemColumns...).Values(
		it.ID, it.PurchaseID, it.ProductID, it.Quantity, it.UnitCostNet, it.VATRate, it.LineTotal, it.CreatedAt,
	))
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// ListItems líneas en orden de inserción.
func (r *PurchaseRepo) ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	var list []*entity.PurchaseItem
	b := psql.Select(purchaseItemColumns...).From("purchase_items").
		Where(squirrel.Eq{"purchase_id": purchaseID}).OrderBy("seq")
	if err := selectRows(ctx, r.q, &list, b); err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	return list, nil
}

// SaleRepo ventas y líneas de venta.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := exec(ctx, r.q, psql.Insert("sales").Columns(saleColumns...).Values(
		s.ID, s.CustomerID, s.UserID, s.Date, s.Status, s.PaymentMethod, s.Notes,
		s.SubtotalNet, s.Discount, s.VAT, s.Total, s.ConfirmedAt, s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, id, false)
}

func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, id, true)
}

func (r *SaleRepo) get(ctx context.Context, id string, lock bool) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	b := psql.Select(saleColumns...).From("sales").Where(squirrel.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	var s entity.Sale
	ok, err := getRow(ctx, r.q, &s, b)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	n, err := exec(ctx, r.q, psql.Update("sales").SetMap(map[string]any{
		"customer_id":    s.CustomerID,
		"status":         s.Status,
		"payment_method": s.PaymentMethod,
		"notes":          s.Notes,
		"subtotal_net":   s.SubtotalNet,
		"discount":       s.Discount,
		"vat":            s.VAT,
		"total":          s.Total,
		"confirmed_at":   s.ConfirmedAt,
		"updated_at":     s.UpdatedAt,
	}).Where(squirrel.Eq{"id": s.ID}))
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if n == 0 {
		return domain.NotFound("venta", s.ID)
	}
	return nil
}

func (r *SaleRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Sale, error) {
	var list []*entity.Sale
	if err := selectRows(ctx, r.q, &list, documentWhere(psql.Select(saleColumns...).From("sales"), f)); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	_, err := exec(ctx, r.q, psql.Insert("sale_items").Columns(saleItemColumns...).Values(
		it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitPriceNet, it.Discount, it.VATRate, it.LineTotal, it.CreatedAt,
	))
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	var list []*entity.SaleItem
	b := psql.Select(saleItemColumns...).From("sale_items").
		Where(squirrel.Eq{"sale_id": saleID}).OrderBy("seq")
	if err := selectRows(ctx, r.q, &list, b); err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	return list, nil
}

// OrderRepo pedidos de despacho.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := exec(ctx, r.q, psql.Insert("orders").Columns(orderColumns...).Values(
		o.ID, o.CustomerID, o.Address, o.TimeWindow, o.Notes, o.Status, o.SaleID, o.CreatedAt, o.UpdatedAt,
	))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, false)
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, true)
}

func (r *OrderRepo) get(ctx context.Context, id string, lock bool) (*entity.Order, error) {
	if !isUUID(id) {
		return nil, nil
	}
	b := psql.Select(orderColumns...).From("orders").Where(squirrel.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	var o entity.Order
	ok, err := getRow(ctx, r.q, &o, b)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	n, err := exec(ctx, r.q, psql.Update("orders").SetMap(map[string]any{
		"address":     o.Address,
		"time_window": o.TimeWindow,
		"notes":       o.Notes,
		"status":      o.Status,
		"sale_id":     o.SaleID,
		"updated_at":  o.UpdatedAt,
	}).Where(squirrel.Eq{"id": o.ID}))
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if n == 0 {
		return domain.NotFound("pedido", o.ID)
	}
	return nil
}

// List pedidos más recientes primero, opcionalmente filtrados por estado.
func (r *OrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	b := psql.Select(orderColumns...).From("orders").OrderBy("created_at DESC")
	if status != "" {
		b = b.Where(squirrel.Eq{"status": status})
	}
	var list []*entity.Order
	if err := selectRows(ctx, r.q, &list, paginate(b, limit, offset)); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return list, nil
}
