// Package testutil contiene dobles de prueba compartidos: un almacén en memoria que implementa
// todos los repositorios con transacciones que sí hacen rollback, y helpers para Postgres.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

type state struct {
	users      map[string]entity.User
	categories map[string]entity.Category
	products   map[string]entity.Product
	inventory  map[string]entity.Inventory // por producto
	seq        map[string]int64
	carts      map[string]entity.Cart
	cartItems  map[string]entity.CartItem
	orders     map[string]entity.Order
	orderLines map[string]entity.OrderLine
	payments   map[string]entity.Payment // por orden
	shipments  map[string]entity.Shipment
	returns    map[string]entity.ReturnRequest
	favorites  map[string]entity.Favorite
	reviews    map[string]entity.Review
	posts      map[string]entity.Post
	comments   map[string]entity.Comment
	reactions  map[string]entity.Reaction
}

func newState() *state {
	return &state{
		users:      map[string]entity.User{},
		categories: map[string]entity.Category{},
		products:   map[string]entity.Product{},
		inventory:  map[string]entity.Inventory{},
		seq:        map[string]int64{},
		carts:      map[string]entity.Cart{},
		cartItems:  map[string]entity.CartItem{},
		orders:     map[string]entity.Order{},
		orderLines: map[string]entity.OrderLine{},
		payments:   map[string]entity.Payment{},
		shipments:  map[string]entity.Shipment{},
		returns:    map[string]entity.ReturnRequest{},
		favorites:  map[string]entity.Favorite{},
		reviews:    map[string]entity.Review{},
		posts:      map[string]entity.Post{},
		comments:   map[string]entity.Comment{},
		reactions:  map[string]entity.Reaction{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		users:      cloneMap(s.users),
		categories: cloneMap(s.categories),
		products:   cloneMap(s.products),
		inventory:  cloneMap(s.inventory),
		seq:        cloneMap(s.seq),
		carts:      cloneMap(s.carts),
		cartItems:  cloneMap(s.cartItems),
		orders:     cloneMap(s.orders),
		orderLines: cloneMap(s.orderLines),
		payments:   cloneMap(s.payments),
		shipments:  cloneMap(s.shipments),
		returns:    cloneMap(s.returns),
		favorites:  cloneMap(s.favorites),
		reviews:    cloneMap(s.reviews),
		posts:      cloneMap(s.posts),
		comments:   cloneMap(s.comments),
		reactions:  cloneMap(s.reactions),
	}
}

// MemStore almacén en memoria. Las transacciones se serializan y, si fn falla,
// se restaura la foto tomada al iniciar.
type MemStore struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	st    *state
	fails map[string]error
	Txs   int // transacciones iniciadas
}

// NewMemStore crea un almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{st: newState(), fails: map[string]error{}}
}

// FailOn hace que la operación op ("payments.create", "inventory.decrement", ...) devuelva err.
func (s *MemStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[op] = err
}

// check debe llamarse con mu tomado.
func (s *MemStore) check(op string) error {
	return s.fails[op]
}

// Repos devuelve los repositorios sobre el almacén.
func (s *MemStore) Repos() repository.Repos {
	return repository.Repos{
		Users:      memUsers{s},
		Categories: memCategories{s},
		Products:   memProducts{s},
		Inventory:  memInventory{s},
		Sequences:  memSequences{s},
		Carts:      memCarts{s},
		CartItems:  memCartItems{s},
		Orders:     memOrders{s},
		OrderLines: memOrderLines{s},
		Payments:   memPayments{s},
		Shipments:  memShipments{s},
		Returns:    memReturns{s},
		Favorites:  memFavorites{s},
		Reviews:    memReviews{s},
		Posts:      memPosts{s},
		Comments:   memComments{s},
		Reactions:  memReactions{s},
	}
}

// Run implementa repository.TxRunner.
func (s *MemStore) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	snapshot := s.st.clone()
	s.Txs++
	s.mu.Unlock()

	err := fn(s.Repos())
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Seed y consultas para aserciones ─────────────────────────────────────────

// SeedUser inserta un usuario activo.
func (s *MemStore) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = u
}

// SeedCategory inserta una categoría.
func (s *MemStore) SeedCategory(c entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.categories[c.ID] = c
}

// SeedProduct inserta un producto activo con su inventario (available = stock).
func (s *MemStore) SeedProduct(id string, price string, stock int) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := entity.Product{
		ID:        id,
		Title:     "Producto " + id,
		Price:     decimal.RequireFromString(price),
		Condition: entity.ConditionGood,
		Stock:     stock,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.st.products[id] = p
	s.st.inventory[id] = entity.Inventory{ID: "IN" + strings.TrimPrefix(id, "PR"), ProductID: id, Available: stock}
	return p
}

// SetProduct reemplaza un producto (p. ej. para cambiar precio o desactivarlo).
func (s *MemStore) SetProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ID] = p
}

// SetInventory reemplaza los contadores de un producto.
func (s *MemStore) SetInventory(inv entity.Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.inventory[inv.ProductID] = inv
}

// Product devuelve una copia del producto.
func (s *MemStore) Product(id string) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.products[id]
}

// InventoryOf devuelve una copia del inventario de un producto.
func (s *MemStore) InventoryOf(productID string) entity.Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.inventory[productID]
}

// CartByID devuelve una copia del carrito.
func (s *MemStore) CartByID(id string) entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.carts[id]
}

// CartItemCount número de líneas del carrito.
func (s *MemStore) CartItemCount(cartID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.st.cartItems {
		if it.CartID == cartID {
			n++
		}
	}
	return n
}

// OrderCount número de órdenes persistidas.
func (s *MemStore) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.orders)
}

// OrderLineCount número de líneas de orden persistidas.
func (s *MemStore) OrderLineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.orderLines)
}

// PaymentCount número de pagos persistidos.
func (s *MemStore) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.payments)
}

// OrderByID devuelve una copia de la orden.
func (s *MemStore) OrderByID(id string) entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.orders[id]
}

// PaymentOf devuelve el pago de una orden.
func (s *MemStore) PaymentOf(orderID string) entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.payments[orderID]
}

// ── Sequences ─────────────────────────────────────────────────────────────────

type memSequences struct{ s *MemStore }

func (r memSequences) Next(_ context.Context, kind domain.IDKind) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("sequences.next"); err != nil {
		return "", err
	}
	n, ok := r.s.st.seq[kind.Entity]
	if !ok {
		n = kind.Start
	} else {
		n++
	}
	r.s.st.seq[kind.Entity] = n
	return kind.Format(n), nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

type memUsers struct{ s *MemStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.users {
		if ex.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.st.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

type memCategories struct{ s *MemStore }

func (r memCategories) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.categories {
		if strings.EqualFold(ex.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.st.categories[c.ID] = *c
	return nil
}

func (r memCategories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCategories) List(_ context.Context, onlyActive bool) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.st.categories))
	for _, c := range r.s.st.categories {
		if onlyActive && !c.Active {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Products ──────────────────────────────────────────────────────────────────

type memProducts struct{ s *MemStore }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.st.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	upd := *p
	upd.Stock = cur.Stock
	r.s.st.products[p.ID] = upd
	return nil
}

func (r memProducts) Deactivate(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok || !p.Active {
		return false, nil
	}
	p.Active = false
	r.s.st.products[id] = p
	return true, nil
}

func (r memProducts) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Product
	for _, p := range r.s.st.products {
		if f.OnlyActive && !p.Active {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Condition != "" && p.Condition != f.Condition {
			continue
		}
		if f.Search != "" && !strings.Contains(p.SearchText, f.Search) {
			continue
		}
		p := p
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r memProducts) DecrementStock(_ context.Context, id string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("products.decrement"); err != nil {
		return false, err
	}
	p, ok := r.s.st.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	r.s.st.products[id] = p
	return true, nil
}

func (r memProducts) IncrementStock(_ context.Context, id string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	r.s.st.products[id] = p
	return nil
}

// ── Inventory ─────────────────────────────────────────────────────────────────

type memInventory struct{ s *MemStore }

func (r memInventory) Create(_ context.Context, inv *entity.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.inventory[inv.ProductID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.inventory[inv.ProductID] = *inv
	return nil
}

func (r memInventory) GetByProductID(_ context.Context, productID string) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.st.inventory[productID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r memInventory) Decrement(_ context.Context, productID string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("inventory.decrement"); err != nil {
		return false, err
	}
	inv, ok := r.s.st.inventory[productID]
	if !ok || inv.Available < qty {
		return false, nil
	}
	inv.Available -= qty
	r.s.st.inventory[productID] = inv
	return true, nil
}

func (r memInventory) Release(_ context.Context, productID string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("inventory.release"); err != nil {
		return false, err
	}
	inv, ok := r.s.st.inventory[productID]
	if !ok {
		return false, nil
	}
	inv.Available += qty
	r.s.st.inventory[productID] = inv
	return true, nil
}

func (r memInventory) Reserve(_ context.Context, productID string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.st.inventory[productID]
	if !ok || inv.Available < qty {
		return false, nil
	}
	inv.Available -= qty
	inv.Reserved += qty
	r.s.st.inventory[productID] = inv
	return true, nil
}

func (r memInventory) ReleaseReservation(_ context.Context, productID string, qty int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.st.inventory[productID]
	if !ok || inv.Reserved < qty {
		return false, nil
	}
	inv.Reserved -= qty
	inv.Available += qty
	r.s.st.inventory[productID] = inv
	return true, nil
}

// ── Carts ─────────────────────────────────────────────────────────────────────

type memCarts struct{ s *MemStore }

func (r memCarts) Create(_ context.Context, c *entity.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.Status == entity.CartActive {
		for _, ex := range r.s.st.carts {
			if ex.UserID == c.UserID && ex.Status == entity.CartActive {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.st.carts[c.ID] = *c
	return nil
}

func (r memCarts) GetByID(_ context.Context, id string) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.carts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCarts) GetActiveByUser(_ context.Context, userID string) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.carts {
		if c.UserID == userID && c.Status == entity.CartActive {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r memCarts) LockActiveByUser(ctx context.Context, userID string) (*entity.Cart, error) {
	return r.GetActiveByUser(ctx, userID)
}

func (r memCarts) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("carts.update_status"); err != nil {
		return err
	}
	c, ok := r.s.st.carts[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = at
	r.s.st.carts[id] = c
	return nil
}

// ── Cart items ────────────────────────────────────────────────────────────────

type memCartItems struct{ s *MemStore }

func (r memCartItems) Create(_ context.Context, it *entity.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.cartItems {
		if ex.CartID == it.CartID && ex.ProductID == it.ProductID {
			return domain.ErrDuplicate
		}
	}
	r.s.st.cartItems[it.ID] = *it
	return nil
}

func (r memCartItems) Update(_ context.Context, it *entity.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.cartItems[it.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.st.cartItems[it.ID] = *it
	return nil
}

func (r memCartItems) GetByID(_ context.Context, id string) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.st.cartItems[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r memCartItems) GetByCartAndProduct(_ context.Context, cartID, productID string) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.st.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			it := it
			return &it, nil
		}
	}
	return nil, nil
}

func (r memCartItems) ListByCart(_ context.Context, cartID string) ([]*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CartItem
	for _, it := range r.s.st.cartItems {
		if it.CartID == cartID {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCartItems) ListDetailsByCart(ctx context.Context, cartID string) ([]*entity.CartItemDetail, error) {
	items, _ := r.ListByCart(ctx, cartID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.CartItemDetail, 0, len(items))
	for _, it := range items {
		p := r.s.st.products[it.ProductID]
		out = append(out, &entity.CartItemDetail{
			CartItem:      *it,
			ProductTitle:  p.Title,
			ProductActive: p.Active,
			CurrentPrice:  p.Price,
			Condition:     p.Condition,
		})
	}
	return out, nil
}

func (r memCartItems) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.cartItems, id)
	return nil
}

func (r memCartItems) DeleteByCart(_ context.Context, cartID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("cart_items.delete_by_cart"); err != nil {
		return err
	}
	for id, it := range r.s.st.cartItems {
		if it.CartID == cartID {
			delete(r.s.st.cartItems, id)
		}
	}
	return nil
}

// ── Orders ────────────────────────────────────────────────────────────────────

type memOrders struct{ s *MemStore }

func (r memOrders) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("orders.create"); err != nil {
		return err
	}
	r.s.st.orders[o.ID] = *o
	return nil
}

func (r memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.st.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r memOrders) LockByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r memOrders) ListByUser(_ context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Order
	for _, o := range r.s.st.orders {
		if o.UserID != f.UserID || (f.Status != "" && o.Status != f.Status) {
			continue
		}
		o := o
		all = append(all, &o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r memOrders) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("orders.update_status"); err != nil {
		return err
	}
	o, ok := r.s.st.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	r.s.st.orders[id] = o
	return nil
}

// ── Order lines ───────────────────────────────────────────────────────────────

type memOrderLines struct{ s *MemStore }

func (r memOrderLines) Create(_ context.Context, l *entity.OrderLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.orderLines[l.ID] = *l
	return nil
}

func (r memOrderLines) ListByOrder(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OrderLine
	for _, l := range r.s.st.orderLines {
		if l.OrderID == orderID {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memOrderLines) ListDetailsByOrder(ctx context.Context, orderID string) ([]*entity.OrderLineDetail, error) {
	lines, _ := r.ListByOrder(ctx, orderID)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.OrderLineDetail, 0, len(lines))
	for _, l := range lines {
		p := r.s.st.products[l.ProductID]
		out = append(out, &entity.OrderLineDetail{OrderLine: *l, ProductTitle: p.Title, ProductBrand: p.Brand})
	}
	return out, nil
}

// ── Payments ──────────────────────────────────────────────────────────────────

type memPayments struct{ s *MemStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("payments.create"); err != nil {
		return err
	}
	if _, ok := r.s.st.payments[p.OrderID]; ok {
		return domain.ErrDuplicate
	}
	r.s.st.payments[p.OrderID] = *p
	return nil
}

func (r memPayments) GetByOrderID(_ context.Context, orderID string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.payments[orderID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memPayments) UpdateStatusByOrder(_ context.Context, orderID, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("payments.update_status"); err != nil {
		return err
	}
	p, ok := r.s.st.payments[orderID]
	if !ok {
		return nil
	}
	p.Status = status
	r.s.st.payments[orderID] = p
	return nil
}

// ── Shipments ─────────────────────────────────────────────────────────────────

type memShipments struct{ s *MemStore }

func (r memShipments) Create(_ context.Context, sh *entity.Shipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.shipments {
		if ex.OrderID == sh.OrderID || ex.TrackingNumber == sh.TrackingNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.st.shipments[sh.ID] = *sh
	return nil
}

func (r memShipments) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.st.shipments[id]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (r memShipments) find(match func(entity.Shipment) bool) *entity.Shipment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sh := range r.s.st.shipments {
		if match(sh) {
			sh := sh
			return &sh
		}
	}
	return nil
}

func (r memShipments) GetByOrderID(_ context.Context, orderID string) (*entity.Shipment, error) {
	return r.find(func(sh entity.Shipment) bool { return sh.OrderID == orderID }), nil
}

func (r memShipments) GetByTracking(_ context.Context, tracking string) (*entity.Shipment, error) {
	return r.find(func(sh entity.Shipment) bool { return sh.TrackingNumber == tracking }), nil
}

func (r memShipments) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Shipment, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Shipment
	for _, sh := range r.s.st.shipments {
		if o, ok := r.s.st.orders[sh.OrderID]; ok && o.UserID == userID {
			sh := sh
			all = append(all, &sh)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return page(all, limit, offset), len(all), nil
}

func (r memShipments) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.st.shipments[id]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	sh.Status = status
	r.s.st.shipments[id] = sh
	return nil
}

// ── Returns ───────────────────────────────────────────────────────────────────

type memReturns struct{ s *MemStore }

func (r memReturns) Create(_ context.Context, ret *entity.ReturnRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.returns {
		if ex.OrderID == ret.OrderID && ex.ProductID == ret.ProductID && ex.UserID == ret.UserID {
			return domain.ErrDuplicate
		}
	}
	r.s.st.returns[ret.ID] = *ret
	return nil
}

func (r memReturns) GetByID(_ context.Context, id string) (*entity.ReturnRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ret, ok := r.s.st.returns[id]
	if !ok {
		return nil, nil
	}
	return &ret, nil
}

func (r memReturns) ListByUser(_ context.Context, f repository.ReturnFilter) ([]*entity.ReturnRequest, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.ReturnRequest
	for _, ret := range r.s.st.returns {
		if ret.UserID != f.UserID || (f.Status != "" && ret.Status != f.Status) {
			continue
		}
		ret := ret
		all = append(all, &ret)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return page(all, f.Limit, f.Offset), len(all), nil
}

// ── Favorites ─────────────────────────────────────────────────────────────────

type memFavorites struct{ s *MemStore }

func (r memFavorites) Create(_ context.Context, f *entity.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.favorites {
		if ex.UserID == f.UserID && ex.ProductID == f.ProductID {
			return domain.ErrDuplicate
		}
	}
	r.s.st.favorites[f.ID] = *f
	return nil
}

func (r memFavorites) Delete(_ context.Context, userID, productID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, f := range r.s.st.favorites {
		if f.UserID == userID && f.ProductID == productID {
			delete(r.s.st.favorites, id)
			return true, nil
		}
	}
	return false, nil
}

func (r memFavorites) GetByUserAndProduct(_ context.Context, userID, productID string) (*entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.st.favorites {
		if f.UserID == userID && f.ProductID == productID {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (r memFavorites) ListByUser(_ context.Context, userID string) ([]*entity.FavoriteDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.FavoriteDetail
	for _, f := range r.s.st.favorites {
		if f.UserID == userID {
			out = append(out, &entity.FavoriteDetail{Favorite: f, Product: r.s.st.products[f.ProductID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ── Reviews ───────────────────────────────────────────────────────────────────

type memReviews struct{ s *MemStore }

func (r memReviews) Create(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.reviews {
		if ex.UserID == rv.UserID && ex.ProductID == rv.ProductID {
			return domain.ErrDuplicate
		}
	}
	r.s.st.reviews[rv.ID] = *rv
	return nil
}

func (r memReviews) Update(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.reviews[rv.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	r.s.st.reviews[rv.ID] = *rv
	return nil
}

func (r memReviews) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.st.reviews[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (r memReviews) GetByUserAndProduct(_ context.Context, userID, productID string) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.st.reviews {
		if rv.UserID == userID && rv.ProductID == productID {
			rv := rv
			return &rv, nil
		}
	}
	return nil, nil
}

func (r memReviews) Approve(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.st.reviews[id]
	if !ok {
		return false, nil
	}
	rv.Approved = true
	r.s.st.reviews[id] = rv
	return true, nil
}

func (r memReviews) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.reviews[id]; !ok {
		return false, nil
	}
	delete(r.s.st.reviews, id)
	return true, nil
}

func (r memReviews) ListApprovedByProduct(_ context.Context, productID string) ([]*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Review
	for _, rv := range r.s.st.reviews {
		if rv.ProductID == productID && rv.Approved {
			rv := rv
			if u, ok := r.s.st.users[rv.UserID]; ok {
				rv.UserName = u.FirstName + " " + u.LastName
			}
			out = append(out, &rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memReviews) StatsByProduct(ctx context.Context, productID string) (*entity.ReviewStats, error) {
	list, _ := r.ListApprovedByProduct(ctx, productID)
	stats := &entity.ReviewStats{Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	sum := 0
	for _, rv := range list {
		stats.Total++
		stats.Distribution[rv.Rating]++
		sum += rv.Rating
	}
	if stats.Total > 0 {
		stats.Average = float64(sum) / float64(stats.Total)
	}
	return stats, nil
}

// ── Comunidad ─────────────────────────────────────────────────────────────────

type memPosts struct{ s *MemStore }

// enrich debe llamarse con mu tomado.
func (r memPosts) enrich(p entity.Post) *entity.Post {
	if u, ok := r.s.st.users[p.UserID]; ok {
		p.AuthorName = u.FirstName + " " + u.LastName
	}
	if pr, ok := r.s.st.products[p.ProductID]; ok {
		p.ProductTitle = pr.Title
	}
	p.CommentCount = 0
	for _, c := range r.s.st.comments {
		if c.PostID == p.ID {
			p.CommentCount++
		}
	}
	p.Images = append([]string(nil), p.Images...)
	return &p
}

func (r memPosts) Create(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	cp.Images = append([]string(nil), p.Images...)
	r.s.st.posts[p.ID] = cp
	return nil
}

func (r memPosts) Update(_ context.Context, p *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	cp := *p
	cp.Images = append([]string(nil), p.Images...)
	r.s.st.posts[p.ID] = cp
	return nil
}

func (r memPosts) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.posts[id]
	if !ok {
		return nil, nil
	}
	return r.enrich(p), nil
}

func (r memPosts) List(_ context.Context, userID string) ([]*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Post
	for _, p := range r.s.st.posts {
		if userID == "" || p.UserID == userID {
			out = append(out, r.enrich(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r memPosts) AdjustLikes(_ context.Context, id string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Likes += delta
	if p.Likes < 0 {
		p.Likes = 0
	}
	r.s.st.posts[id] = p
	return nil
}

func (r memPosts) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.check("posts.delete"); err != nil {
		return false, err
	}
	if _, ok := r.s.st.posts[id]; !ok {
		return false, nil
	}
	delete(r.s.st.posts, id)
	return true, nil
}

type memComments struct{ s *MemStore }

func (r memComments) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.comments[c.ID] = *c
	return nil
}

func (r memComments) Update(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.comments[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	r.s.st.comments[c.ID] = *c
	return nil
}

func (r memComments) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.comments[id]
	if !ok {
		return nil, nil
	}
	if u, ok := r.s.st.users[c.UserID]; ok {
		c.AuthorName = u.FirstName + " " + u.LastName
	}
	return &c, nil
}

func (r memComments) ListByPost(_ context.Context, postID string) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Comment
	for _, c := range r.s.st.comments {
		if c.PostID == postID {
			c := c
			if u, ok := r.s.st.users[c.UserID]; ok {
				c.AuthorName = u.FirstName + " " + u.LastName
			}
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r memComments) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.comments[id]; !ok {
		return false, nil
	}
	delete(r.s.st.comments, id)
	return true, nil
}

func (r memComments) DeleteByPost(_ context.Context, postID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for id, c := range r.s.st.comments {
		if c.PostID == postID {
			ids = append(ids, id)
			delete(r.s.st.comments, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type memReactions struct{ s *MemStore }

func (r memReactions) Create(_ context.Context, rc *entity.Reaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.st.reactions {
		if ex.UserID == rc.UserID && ex.TargetKind == rc.TargetKind && ex.TargetID == rc.TargetID {
			return domain.ErrDuplicate
		}
	}
	r.s.st.reactions[rc.ID] = *rc
	return nil
}

func (r memReactions) UpdateType(_ context.Context, id, reactionType string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rc, ok := r.s.st.reactions[id]
	if !ok {
		return domain.ErrNotFound
	}
	rc.Type = reactionType
	r.s.st.reactions[id] = rc
	return nil
}

func (r memReactions) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.st.reactions, id)
	return nil
}

func (r memReactions) GetByUserAndTarget(_ context.Context, userID, kind, targetID string) (*entity.Reaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rc := range r.s.st.reactions {
		if rc.UserID == userID && rc.TargetKind == kind && rc.TargetID == targetID {
			rc := rc
			return &rc, nil
		}
	}
	return nil, nil
}

func (r memReactions) CountByTarget(_ context.Context, kind, targetID string) ([]entity.ReactionCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]int{}
	for _, rc := range r.s.st.reactions {
		if rc.TargetKind == kind && rc.TargetID == targetID {
			counts[rc.Type]++
		}
	}
	out := make([]entity.ReactionCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, entity.ReactionCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Type < out[j].Type
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}

func (r memReactions) DeleteByTargets(_ context.Context, kind string, targetIDs ...string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		set[id] = true
	}
	for id, rc := range r.s.st.reactions {
		if rc.TargetKind == kind && set[rc.TargetID] {
			delete(r.s.st.reactions, id)
		}
	}
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
