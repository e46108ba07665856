package httpapi

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter registers routes and middleware over the given connection.
func NewRouter(conn *gorm.DB) *gin.Engine {
	h := NewHandler(conn)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logging())

	r.GET("/health", h.Health)

	r.POST("/products", h.CreateProduct)
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.PUT("/products/:id", h.UpdateProduct)
	r.PATCH("/products/:id/add-inventory", h.AddInventory)
	r.DELETE("/products/:id", h.DeleteProduct)

	r.POST("/products/:id/sales", h.RecordSale)
	r.GET("/products/:id/sales", h.ListSales)

	return r
}
