package settlement

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Naveen-512/StoreLoop/models"
)

// MemoryStore is an in-memory Store used by the settlement tests. A single
// mutex serializes transactions, and the pre-transaction state is restored
// when the callback fails, which gives the same all-or-nothing and
// conditional-update semantics as the SQL implementation.
type MemoryStore struct {
	mu    sync.Mutex
	state memState
}

type memState struct {
	products map[uint]models.Product
	carts    []models.Cart
	held     map[uint]models.UserActiveCode
	codes    map[uint]models.DiscountCode
	orders   []models.Order
	settings models.StoreSettings

	nextProductID uint
	nextCodeID    uint
	nextOrderID   uint
}

// NewMemoryStore returns an empty store with default settings (reward every
// 5th order at 10%).
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: memState{
			products:      make(map[uint]models.Product),
			held:          make(map[uint]models.UserActiveCode),
			codes:         make(map[uint]models.DiscountCode),
			settings:      models.StoreSettings{ID: 1, RewardInterval: 5, RewardPercent: 10},
			nextProductID: 1,
			nextCodeID:    1,
			nextOrderID:   1,
		},
	}
}

func (s *memState) clone() memState {
	cp := *s
	cp.products = make(map[uint]models.Product, len(s.products))
	for id, p := range s.products {
		cp.products[id] = p
	}
	cp.held = make(map[uint]models.UserActiveCode, len(s.held))
	for id, h := range s.held {
		cp.held[id] = h
	}
	cp.codes = make(map[uint]models.DiscountCode, len(s.codes))
	for id, c := range s.codes {
		cp.codes[id] = c
	}
	cp.carts = append([]models.Cart(nil), s.carts...)
	cp.orders = make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		cp.orders[i] = o
		cp.orders[i].OrderItems = append([]models.OrderItem(nil), o.OrderItems...)
	}
	return cp
}

// Transaction serializes callers and restores the previous state when fn
// fails. The Store methods below must only be called from inside fn.
func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := s.state.clone()
	if err := fn(s); err != nil {
		s.state = saved
		return err
	}
	return nil
}

func (s *MemoryStore) OrderByPaymentRef(ctx context.Context, ref string) (*models.Order, error) {
	for i := range s.state.orders {
		if s.state.orders[i].PaymentRef == ref {
			order := s.state.orders[i]
			return &order, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CartLines(ctx context.Context, userID uint) ([]Line, error) {
	var lines []Line
	for _, item := range s.state.carts {
		if item.UserID != userID {
			continue
		}
		product, ok := s.state.products[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Stock:     product.Stock,
			Active:    product.IsActive,
		})
	}
	return lines, nil
}

func (s *MemoryStore) HeldCode(ctx context.Context, userID uint) (*models.DiscountCode, error) {
	held, ok := s.state.held[userID]
	if !ok {
		return nil, nil
	}
	code, ok := s.state.codes[held.CodeID]
	if !ok {
		return nil, nil
	}
	return &code, nil
}

func (s *MemoryStore) Settings(ctx context.Context) (*models.StoreSettings, error) {
	settings := s.state.settings
	return &settings, nil
}

func (s *MemoryStore) NextOrderNumber(ctx context.Context) (int64, error) {
	s.state.settings.TotalOrders++
	return s.state.settings.TotalOrders, nil
}

func (s *MemoryStore) DecrementStock(ctx context.Context, productID uint, qty int) error {
	product, ok := s.state.products[productID]
	if !ok || product.Stock < qty {
		return ErrInsufficientStock
	}
	product.Stock -= qty
	s.state.products[productID] = product
	return nil
}

func (s *MemoryStore) RedeemCode(ctx context.Context, codeID, userID uint, orderNumber int64, at time.Time) error {
	code, ok := s.state.codes[codeID]
	if !ok || code.Used {
		return ErrCodeRedeemed
	}
	code.Used = true
	code.UsedByID = &userID
	code.UsedAt = &at
	code.UsedOrderNumber = orderNumber
	s.state.codes[codeID] = code
	return nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, order *models.Order) error {
	order.ID = s.state.nextOrderID
	s.state.nextOrderID++
	s.state.orders = append(s.state.orders, *order)
	return nil
}

func (s *MemoryStore) CreateCode(ctx context.Context, code *models.DiscountCode) error {
	code.ID = s.state.nextCodeID
	s.state.nextCodeID++
	s.state.codes[code.ID] = *code
	return nil
}

func (s *MemoryStore) ClearCart(ctx context.Context, userID uint) error {
	kept := s.state.carts[:0]
	for _, item := range s.state.carts {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	s.state.carts = kept
	delete(s.state.held, userID)
	return nil
}

// Seed and inspection helpers for tests. These take the lock themselves and
// must not be called from inside a Transaction callback.

func (s *MemoryStore) AddProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.state.nextProductID
	}
	if p.ID >= s.state.nextProductID {
		s.state.nextProductID = p.ID + 1
	}
	s.state.products[p.ID] = p
	return p
}

func (s *MemoryStore) AddCartLine(userID, productID uint, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.carts = append(s.state.carts, models.Cart{UserID: userID, ProductID: productID, Quantity: qty})
}

func (s *MemoryStore) AddCode(c models.DiscountCode) models.DiscountCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.state.nextCodeID
	}
	if c.ID >= s.state.nextCodeID {
		s.state.nextCodeID = c.ID + 1
	}
	s.state.codes[c.ID] = c
	return c
}

func (s *MemoryStore) HoldCode(userID, codeID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.state.codes[codeID]
	s.state.held[userID] = models.UserActiveCode{UserID: userID, CodeID: codeID, Code: code.Code, AppliedAt: time.Now()}
}

func (s *MemoryStore) SetSettings(settings models.StoreSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings.ID = 1
	s.state.settings = settings
}

func (s *MemoryStore) Product(id uint) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.products[id]
}

func (s *MemoryStore) Code(id uint) models.DiscountCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.codes[id]
}

func (s *MemoryStore) Codes() []models.DiscountCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	codes := make([]models.DiscountCode, 0, len(s.state.codes))
	for _, c := range s.state.codes {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].ID < codes[j].ID })
	return codes
}

func (s *MemoryStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.state.orders...)
}

func (s *MemoryStore) CartCount(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.state.carts {
		if item.UserID == userID {
			n++
		}
	}
	return n
}
