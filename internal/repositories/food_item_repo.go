package repositories

import (
	"foodstall/internal/models"
)

// FoodItemRepository defines the interface for food item data access.
// Lookups for missing ids return errors wrapping apperrors.ErrNotFound;
// DecrementStock returns an error wrapping apperrors.ErrConflict when the
// conditional update matches no row.
type FoodItemRepository interface {
	GetAll() ([]models.FoodItem, error)
	GetByID(id string) (*models.FoodItem, error)
	GetByIDs(ids []string) ([]models.FoodItem, error)
	Create(item *models.FoodItem) error
	Update(item *models.FoodItem) error
	Delete(id string) error
	// DecrementStock subtracts quantity from the item's stock only if the
	// current stock covers it. This is the single concurrency-safety
	// mechanism of order placement: stock can never go negative.
	DecrementStock(id string, quantity int) error
	ListStock() ([]models.StockItem, error)
}
