package service

import (
	"context"

	"gorm.io/gorm"

	"catalog/internal/models"
	"catalog/internal/store"
)

// SaleService wraps the sale store with the sale-recording workflow.
type SaleService struct {
	db    *gorm.DB
	store *store.Store[models.Sale]
}

// NewSaleService builds a sale service over db.
func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{db: db, store: store.New[models.Sale](db, models.SaleColumns())}
}

// CreateSale records a sale of quantity units of the given product and
// recomputes the product's popularity score and inventory. The sale
// insert, the quantity sum and the product update run in one
// transaction, so a failure in any step leaves no stale derived state.
func (s *SaleService) CreateSale(ctx context.Context, productID uint, quantity int) (*models.Sale, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	var sale *models.Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := NewProductService(tx)
		p, err := products.Get(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}
		if quantity > p.InventoryCount {
			return ErrInsufficientInventory
		}
		sale, err = s.store.WithDB(tx).Create(ctx, &models.Sale{ProductID: productID, Quantity: quantity})
		if err != nil {
			return err
		}
		var total int64
		err = tx.Model(&models.Sale{}).
			Where(models.SaleColProductID+" = ?", productID).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&total).Error
		if err != nil {
			return err
		}
		return products.UpdatePopularityScore(ctx, productID, quantity, int(total))
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ListByProduct fetches the sales recorded against one product.
func (s *SaleService) ListByProduct(ctx context.Context, productID uint, skip, limit int) ([]models.Sale, error) {
	return s.store.GetAll(ctx, map[string]any{models.SaleColProductID: productID}, nil, skip, limit)
}
