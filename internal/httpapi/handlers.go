// Package httpapi exposes the HTTP API layer of the service: thin gin
// handlers translating requests to service calls.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"catalog/internal/models"
	"catalog/internal/service"
)

// Handler bundles the services behind the HTTP routes.
type Handler struct {
	db       *gorm.DB
	products *service.ProductService
	sales    *service.SaleService
}

// NewHandler builds the handler set over one database connection.
func NewHandler(conn *gorm.DB) *Handler {
	return &Handler{
		db:       conn,
		products: service.NewProductService(conn),
		sales:    service.NewSaleService(conn),
	}
}

func detail(msg string) gin.H { return gin.H{"detail": msg} }

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, detail("Invalid product id"))
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, detail("Invalid "+key))
		return 0, false
	}
	return n, true
}

// Health pings the database.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(c *gin.Context) {
	var in models.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, detail(err.Error()))
		return
	}
	p, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProduct handles GET /products/:id.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, detail("Product not found"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProducts handles GET /products with an optional search_keyword
// matched against name, description and category.
func (h *Handler) ListProducts(c *gin.Context) {
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	items, err := h.products.List(c.Request.Context(), c.Query("search_keyword"), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, detail("Products not available"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateProduct handles PUT /products/:id.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.UpdateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, detail(err.Error()))
		return
	}
	p, err := h.products.Update(c.Request.Context(), id, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, detail("Products not available"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddInventory handles PATCH /products/:id/add-inventory?quantity=N.
func (h *Handler) AddInventory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, detail("Invalid quantity"))
		return
	}
	p, err := h.products.AddInventory(c.Request.Context(), id, quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, detail("Products not available"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /products/:id.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, detail("Products not available"))
		return
	}
	c.JSON(http.StatusOK, detail("Product deleted"))
}

// RecordSale handles POST /products/:id/sales?quantity=N.
func (h *Handler) RecordSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, detail("Invalid quantity"))
		return
	}
	sale, err := h.sales.CreateSale(c.Request.Context(), id, quantity)
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, detail("Product not available"))
	case errors.Is(err, service.ErrInsufficientInventory):
		c.JSON(http.StatusBadRequest, detail("Sufficient product is not available"))
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, detail("Quantity must be a positive integer"))
	case err != nil:
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
	default:
		c.JSON(http.StatusOK, sale)
	}
}

// ListSales handles GET /products/:id/sales.
func (h *Handler) ListSales(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, detail("Product not found"))
		return
	}
	sales, err := h.sales.ListByProduct(c.Request.Context(), id, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, detail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, sales)
}
