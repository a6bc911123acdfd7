package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/Naveen-512/StoreLoop/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on PostgreSQL. The conditional updates rely on
// guarded UPDATE statements so the guard and the write are one operation.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection (or transaction) as a Store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) OrderByPaymentRef(ctx context.Context, ref string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("OrderItems").Where("payment_ref = ?", ref).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *GormStore) CartLines(ctx context.Context, userID uint) ([]Line, error) {
	var cartItems []models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(cartItems))
	for _, item := range cartItems {
		// Lock the product row so a racing settlement serializes on it.
		var product models.Product
		if err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
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

func (s *GormStore) HeldCode(ctx context.Context, userID uint) (*models.DiscountCode, error) {
	var held models.UserActiveCode
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&held).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var code models.DiscountCode
	err = s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", held.CodeID).First(&code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (s *GormStore) Settings(ctx context.Context) (*models.StoreSettings, error) {
	var settings models.StoreSettings
	if err := s.db.WithContext(ctx).Order("id").First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *GormStore) NextOrderNumber(ctx context.Context) (int64, error) {
	var number int64
	err := s.db.WithContext(ctx).Raw(`
		UPDATE store_settings
		SET total_orders = total_orders + 1, updated_at = NOW()
		WHERE id = (SELECT id FROM store_settings ORDER BY id LIMIT 1)
		RETURNING total_orders
	`).Scan(&number).Error
	if err != nil {
		return 0, err
	}
	return number, nil
}

func (s *GormStore) DecrementStock(ctx context.Context, productID uint, qty int) error {
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (s *GormStore) RedeemCode(ctx context.Context, codeID, userID uint, orderNumber int64, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.DiscountCode{}).
		Where("id = ? AND used = ?", codeID, false).
		Updates(map[string]interface{}{
			"used":              true,
			"used_by_id":        userID,
			"used_at":           at,
			"used_order_number": orderNumber,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCodeRedeemed
	}
	return nil
}

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *GormStore) CreateCode(ctx context.Context, code *models.DiscountCode) error {
	return s.db.WithContext(ctx).Create(code).Error
}

func (s *GormStore) ClearCart(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Cart{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserActiveCode{}).Error
}
