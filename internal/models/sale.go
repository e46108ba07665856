package models

import "time"

// Sale is a row of the sales table. Every row references exactly one product;
// the FK is RESTRICT so a product with recorded sales cannot be removed
// out from under them.
type Sale struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// TableName returns the table name for Sale.
func (Sale) TableName() string { return "sales" }

// Column names of the sales table.
const (
	SaleColID        = "id"
	SaleColProductID = "product_id"
	SaleColQuantity  = "quantity"
	SaleColTimestamp = "timestamp"
)

// SaleColumns is the whitelist of columns the store may filter,
// search or update on for sales.
func SaleColumns() []string {
	return []string{SaleColID, SaleColProductID, SaleColQuantity, SaleColTimestamp}
}
