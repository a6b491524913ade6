// Package memory implementa los repositorios del dominio en memoria.
// Se usa en tests y en modo demo (DB_DRIVER=memory). Las transacciones trabajan sobre
// una copia del estado que se publica solo si el callback termina sin error.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/domain/repository"
)

// table filas indexadas por id conservando el orden de inserción.
type table[T any] struct {
	rows map[string]T
	ids  []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[string]T, len(t.rows)), ids: make([]string, len(t.ids))}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	copy(c.ids, t.ids)
	return c
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) insert(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = v
}

func (t *table[T]) update(id string, v T) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = v
	return true
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, x := range t.ids {
		if x == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return true
}

// all devuelve las filas en orden de inserción.
func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.rows[id])
	}
	return out
}

type state struct {
	products      *table[entity.Product]
	customers     *table[entity.Customer]
	suppliers     *table[entity.Supplier]
	users         *table[entity.User]
	purchases     *table[entity.Purchase]
	purchaseItems *table[entity.PurchaseItem]
	sales         *table[entity.Sale]
	saleItems     *table[entity.SaleItem]
	orders        *table[entity.Order]
	movements     *table[entity.StockMovement]
}

func newState() *state {
	return &state{
		products:      newTable[entity.Product](),
		customers:     newTable[entity.Customer](),
		suppliers:     newTable[entity.Supplier](),
		users:         newTable[entity.User](),
		purchases:     newTable[entity.Purchase](),
		purchaseItems: newTable[entity.PurchaseItem](),
		sales:         newTable[entity.Sale](),
		saleItems:     newTable[entity.SaleItem](),
		orders:        newTable[entity.Order](),
		movements:     newTable[entity.StockMovement](),
	}
}

func (s *state) clone() *state {
	return &state{
		products:      s.products.clone(),
		customers:     s.customers.clone(),
		suppliers:     s.suppliers.clone(),
		users:         s.users.clone(),
		purchases:     s.purchases.clone(),
		purchaseItems: s.purchaseItems.clone(),
		sales:         s.sales.clone(),
		saleItems:     s.saleItems.clone(),
		orders:        s.orders.clone(),
		movements:     s.movements.clone(),
	}
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu  sync.RWMutex
	st  *state
	loc *time.Location
}

// New crea un store vacío. loc define la zona horaria de los reportes por período (nil = time.Local).
func New(loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{st: newState(), loc: loc}
}

// access abstrae si la operación corre sobre el store (con lock) o dentro de una transacción.
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

type storeAccess struct{ s *Store }

func (a storeAccess) read(fn func(st *state) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.st)
}

func (a storeAccess) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.st)
}

// txAccess opera sobre la copia de la transacción; el lock ya lo tiene TxRunner.Run.
type txAccess struct{ st *state }

func (a txAccess) read(fn func(st *state) error) error  { return fn(a.st) }
func (a txAccess) write(fn func(st *state) error) error { return fn(a.st) }

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones serializadas sobre el Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run toma el lock exclusivo, ejecuta fn sobre una copia del estado y la publica si no hubo error.
// fn no debe usar repositorios fuera de uow (tomarían el mismo lock).
func (r *TxRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	work := r.s.st.clone()
	a := txAccess{st: work}
	uow := repository.UnitOfWork{
		Products:  &ProductRepo{a: a},
		Movements: &StockMovementRepo{a: a},
		Purchases: &PurchaseRepo{a: a},
		Sales:     &SaleRepo{a: a},
		Orders:    &OrderRepo{a: a},
	}
	if err := fn(uow); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.st = work
	return nil
}

// Repositorios fuera de transacción.

func (s *Store) Products() *ProductRepo { return &ProductRepo{a: storeAccess{s}} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{a: storeAccess{s}} }
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{a: storeAccess{s}} }
func (s *Store) Users() *UserRepo { return &UserRepo{a: storeAccess{s}} }
func (s *Store) Purchases() *PurchaseRepo { return &PurchaseRepo{a: storeAccess{s}} }
func (s *Store) Sales() *SaleRepo { return &SaleRepo{a: storeAccess{s}} }
func (s *Store) Orders() *OrderRepo { return &OrderRepo{a: storeAccess{s}} }
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{a: storeAccess{s}} }
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{a: storeAccess{s}, loc: s.loc} }

// page aplica limit/offset sobre un slice ya filtrado.
func page[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return rows[:0]
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// reverse invierte el orden (listados más recientes primero).
func reverse[T any](rows []T) []T {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}

// newestFirst ordena por fecha descendente; a igual fecha, el último insertado primero.
func newestFirst[T any](rows []T, date func(T) time.Time) []T {
	rows = reverse(rows)
	sort.SliceStable(rows, func(i, j int) bool { return date(rows[i]).After(date(rows[j])) })
	return rows
}
