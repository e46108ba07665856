package models

// Product is a row of the products table.
type Product struct {
	Base
	Name            string  `gorm:"size:64;index;not null" json:"name"`
	Description     string  `gorm:"size:255;index" json:"description"`
	Price           float64 `gorm:"not null" json:"price"`
	Category        string  `gorm:"size:64;index" json:"category"`
	InventoryCount  int     `gorm:"not null;default:0" json:"inventory_count"`
	PopularityScore float64 `gorm:"not null;default:0" json:"popularity_score"`

	Sales []Sale `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
}

// TableName returns the table name for Product.
func (Product) TableName() string { return "products" }

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description"`
	Price          float64 `json:"price" binding:"gte=0"`
	Category       string  `json:"category"`
	InventoryCount int     `json:"inventory_count" binding:"gte=0"`
}

// UpdateProductInput carries the fields accepted on a full product
// update. Inventory is adjusted through its own endpoint, never here.
type UpdateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category"`
}

// Column names of the products table. Keeping them as constants gives
// filter and update maps type-safe field references.
const (
	ProductColID              = "id"
	ProductColName            = "name"
	ProductColDescription     = "description"
	ProductColPrice           = "price"
	ProductColCategory        = "category"
	ProductColInventoryCount  = "inventory_count"
	ProductColPopularityScore = "popularity_score"
)

// ProductColumns is the whitelist of columns the store may filter,
// search or update on for products.
func ProductColumns() []string {
	return []string{
		ProductColID,
		ProductColName,
		ProductColDescription,
		ProductColPrice,
		ProductColCategory,
		ProductColInventoryCount,
		ProductColPopularityScore,
	}
}
