package service

import (
	"context"

	"gorm.io/gorm"

	"catalog/internal/models"
	"catalog/internal/store"
)

// popularityWeight scales cumulative sold quantity into a score.
const popularityWeight = 1.5

// ProductService wraps the product store with catalog operations.
type ProductService struct {
	store *store.Store[models.Product]
}

// NewProductService builds a product service over db, which may be an
// open transaction.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{store: store.New[models.Product](db, models.ProductColumns())}
}

// Create inserts a new product and returns it with its assigned id and
// a zero popularity score.
func (s *ProductService) Create(ctx context.Context, in models.CreateProductInput) (*models.Product, error) {
	p := &models.Product{
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		Category:       in.Category,
		InventoryCount: in.InventoryCount,
	}
	return s.store.Create(ctx, p)
}

// Get fetches a product by id; absent products are (nil, nil).
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.store.GetByID(ctx, id)
}

// List fetches products. A non-empty keyword substring-matches name,
// description or category (any of them).
func (s *ProductService) List(ctx context.Context, keyword string, skip, limit int) ([]models.Product, error) {
	if keyword == "" {
		return s.store.GetAll(ctx, nil, nil, skip, limit)
	}
	terms := map[string]string{
		models.ProductColName:        keyword,
		models.ProductColDescription: keyword,
		models.ProductColCategory:    keyword,
	}
	return s.store.GetAll(ctx, nil, terms, skip, limit)
}

// Update applies a full update of the editable attributes. Absent
// products are (nil, nil).
func (s *ProductService) Update(ctx context.Context, id uint, in models.UpdateProductInput) (*models.Product, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return s.store.Update(ctx, p, map[string]any{
		models.ProductColName:        in.Name,
		models.ProductColDescription: in.Description,
		models.ProductColPrice:       in.Price,
		models.ProductColCategory:    in.Category,
	})
}

// AddInventory increments the product's stock by quantity.
func (s *ProductService) AddInventory(ctx context.Context, id uint, quantity int) (*models.Product, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return s.store.Update(ctx, p, map[string]any{
		models.ProductColInventoryCount: p.InventoryCount + quantity,
	})
}

// Delete removes a product and returns it; absent products are (nil, nil).
func (s *ProductService) Delete(ctx context.Context, id uint) (*models.Product, error) {
	return s.store.Delete(ctx, id)
}

// UpdatePopularityScore sets the derived fields after a sale: the score
// becomes totalSalesQuantity weighted, and stock drops by quantitySold.
// Both land in one partial update. A product that no longer exists is a
// silent no-op; this path is fire-and-forget.
func (s *ProductService) UpdatePopularityScore(ctx context.Context, productID uint, quantitySold, totalSalesQuantity int) error {
	p, err := s.store.GetByID(ctx, productID)
	if err != nil || p == nil {
		return err
	}
	_, err = s.store.Update(ctx, p, map[string]any{
		models.ProductColPopularityScore: float64(totalSalesQuantity) * popularityWeight,
		models.ProductColInventoryCount:  p.InventoryCount - quantitySold,
	})
	return err
}
