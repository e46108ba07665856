package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catalog/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// one pooled connection, or every conn sees its own :memory: database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.Sale{}))
	return conn
}

func createProduct(t *testing.T, products *ProductService, inventory int) *models.Product {
	t.Helper()
	p, err := products.Create(context.Background(), models.CreateProductInput{
		Name:           "Test Product",
		Description:    "for testing",
		Price:          10.99,
		Category:       "tools",
		InventoryCount: inventory,
	})
	require.NoError(t, err)
	return p
}

func TestCreateSaleUpdatesDerivedFields(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	sales := NewSaleService(conn)
	ctx := context.Background()

	p := createProduct(t, products, 100)

	sale, err := sales.CreateSale(ctx, p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, sale.Quantity)
	assert.Equal(t, p.ID, sale.ProductID)
	assert.NotZero(t, sale.ID)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.5, got.PopularityScore)
	assert.Equal(t, 95, got.InventoryCount)
}

func TestPopularityInvariantOverManySales(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	sales := NewSaleService(conn)
	ctx := context.Background()

	p := createProduct(t, products, 100)

	quantities := []int{5, 3, 2, 7}
	total := 0
	for _, q := range quantities {
		_, err := sales.CreateSale(ctx, p.ID, q)
		require.NoError(t, err)
		total += q
	}

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.5*float64(total), got.PopularityScore)
	assert.Equal(t, 100-total, got.InventoryCount)
}

func TestCreateSaleInsufficientInventory(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	sales := NewSaleService(conn)
	ctx := context.Background()

	p := createProduct(t, products, 100)

	_, err := sales.CreateSale(ctx, p.ID, 150)
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.InventoryCount)
	assert.Equal(t, 0.0, got.PopularityScore)

	rows, err := sales.ListByProduct(ctx, p.ID, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateSaleInvalidQuantity(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	sales := NewSaleService(conn)
	ctx := context.Background()

	p := createProduct(t, products, 100)

	for _, q := range []int{0, -3} {
		_, err := sales.CreateSale(ctx, p.ID, q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	rows, err := sales.ListByProduct(ctx, p.ID, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateSaleProductMissing(t *testing.T) {
	conn := testDB(t)
	sales := NewSaleService(conn)

	_, err := sales.CreateSale(context.Background(), 42, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdatePopularityScoreMissingProductIsNoop(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)

	err := products.UpdatePopularityScore(context.Background(), 42, 1, 10)
	assert.NoError(t, err)
}

func TestUpdateDoesNotTouchInventory(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	ctx := context.Background()

	p := createProduct(t, products, 100)

	updated, err := products.Update(ctx, p.ID, models.UpdateProductInput{
		Name:        "Renamed",
		Description: "new text",
		Price:       19.99,
		Category:    "hardware",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, 100, updated.InventoryCount)
}

func TestUpdateMissingProduct(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)

	updated, err := products.Update(context.Background(), 42, models.UpdateProductInput{Name: "x"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestAddInventory(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	ctx := context.Background()

	p := createProduct(t, products, 10)

	updated, err := products.AddInventory(ctx, p.ID, 15)
	require.NoError(t, err)
	assert.Equal(t, 25, updated.InventoryCount)
}

func TestListWithKeyword(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	ctx := context.Background()

	_, err := products.Create(ctx, models.CreateProductInput{Name: "Shovel", Description: "digging", Category: "garden"})
	require.NoError(t, err)
	_, err = products.Create(ctx, models.CreateProductInput{Name: "Apple", Description: "fruit", Category: "food"})
	require.NoError(t, err)

	// keyword matches category only
	items, err := products.List(ctx, "garden", 0, 100)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Shovel", items[0].Name)

	items, err = products.List(ctx, "", 0, 100)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = products.List(ctx, "nomatch", 0, 100)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteProduct(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	ctx := context.Background()

	p := createProduct(t, products, 1)

	deleted, err := products.Delete(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	again, err := products.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestSaleTimestampsNonDecreasing(t *testing.T) {
	conn := testDB(t)
	products := NewProductService(conn)
	sales := NewSaleService(conn)
	ctx := context.Background()

	p := createProduct(t, products, 100)
	for i := 0; i < 3; i++ {
		_, err := sales.CreateSale(ctx, p.ID, 1)
		require.NoError(t, err)
	}

	rows, err := sales.ListByProduct(ctx, p.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].Timestamp.Before(rows[i-1].Timestamp))
	}
}
