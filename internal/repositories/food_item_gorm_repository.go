package repositories

import (
	"fmt"

	"foodstall/internal/apperrors"
	"foodstall/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMFoodItemRepository is a GORM implementation of FoodItemRepository.
type GORMFoodItemRepository struct {
	db *gorm.DB
}

// NewGORMFoodItemRepository creates a new instance of GORMFoodItemRepository.
func NewGORMFoodItemRepository(db *gorm.DB) *GORMFoodItemRepository {
	return &GORMFoodItemRepository{
		db: db,
	}
}

// GetAll retrieves all food items, newest first.
func (r *GORMFoodItemRepository) GetAll() ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := r.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all food items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single food item by its ID.
func (r *GORMFoodItemRepository) GetByID(id string) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: food item %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get food item by ID %s: %w", id, err)
	}
	return &item, nil
}

// GetByIDs retrieves the food items matching the given IDs in one query.
// Missing ids are simply absent from the result, not an error.
func (r *GORMFoodItemRepository) GetByIDs(ids []string) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get food items by IDs: %w", err)
	}
	return items, nil
}

// Create creates a new food item.
func (r *GORMFoodItemRepository) Create(item *models.FoodItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create food item: %w", err)
	}
	return nil
}

// Update updates an existing food item.
func (r *GORMFoodItemRepository) Update(item *models.FoodItem) error {
	res := r.db.Save(item) // Save updates all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update food item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: food item %s", apperrors.ErrNotFound, item.ID)
	}
	return nil
}

// Delete deletes a food item by its ID.
func (r *GORMFoodItemRepository) Delete(id string) error {
	res := r.db.Delete(&models.FoodItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete food item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: food item %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// DecrementStock performs a single conditional decrement: stock is reduced by
// quantity only when the current stock covers it. Zero rows affected means the
// stock changed under us (or the item vanished) and the caller must retry.
func (r *GORMFoodItemRepository) DecrementStock(id string, quantity int) error {
	res := r.db.Model(&models.FoodItem{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock for food item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: stock changed for food item %s", apperrors.ErrConflict, id)
	}
	return nil
}

// ListStock returns the stock projection of every food item, sorted by name.
func (r *GORMFoodItemRepository) ListStock() ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.Model(&models.FoodItem{}).
		Select("id", "name", "category", "image", "stock", "updated_at").
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return items, nil
}
