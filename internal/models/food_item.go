package models

import "time"

// Categories form a closed set; anything else is rejected at the service boundary.
var Categories = []string{
	"veg", "non-veg", "fast-food", "appetizer", "main-course", "dessert",
	"beverage", "snacks", "soups", "salads", "breakfast", "lunch", "dinner",
}

// ValidCategory reports whether c is one of the allowed food categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FoodItem represents one item on the menu.
type FoodItem struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100)"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	Price       float64   `json:"price"`
	Category    string    `json:"category" gorm:"type:varchar(32)"`
	Image       string    `json:"image"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StockItem is the projection of a FoodItem returned by the stock listing.
type StockItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	Stock     int       `json:"stock"`
	UpdatedAt time.Time `json:"updatedAt"`
}
