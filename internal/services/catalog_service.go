package services

import (
	"fmt"

	"foodstall/internal/apperrors"
	"foodstall/internal/models"
	"foodstall/internal/repositories"
)

// FoodItemUpdate carries a partial update; nil fields are left untouched.
type FoodItemUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

// CatalogService handles business logic for the food item catalog.
type CatalogService struct {
	repo repositories.FoodItemRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.FoodItemRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListItems retrieves all food items, newest first.
func (s *CatalogService) ListItems() ([]models.FoodItem, error) {
	return s.repo.GetAll()
}

// GetItem retrieves a single food item by its ID.
func (s *CatalogService) GetItem(id string) (*models.FoodItem, error) {
	return s.repo.GetByID(id)
}

// CreateItem creates a new food item. Stock defaults to the zero value when
// the client omits it.
func (s *CatalogService) CreateItem(item *models.FoodItem) error {
	if !models.ValidCategory(item.Category) {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, item.Category)
	}
	return s.repo.Create(item)
}

// UpdateItem applies a partial update to an existing food item and returns
// the updated record. The update timestamp is refreshed by the repository.
func (s *CatalogService) UpdateItem(id string, upd FoodItemUpdate) (*models.FoodItem, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Price != nil {
		item.Price = *upd.Price
	}
	if upd.Category != nil {
		if !models.ValidCategory(*upd.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, *upd.Category)
		}
		item.Category = *upd.Category
	}
	if upd.Image != nil {
		item.Image = *upd.Image
	}
	if upd.Stock != nil {
		item.Stock = *upd.Stock
	}
	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes a food item by its ID.
func (s *CatalogService) DeleteItem(id string) error {
	return s.repo.Delete(id)
}

// ListStock returns the stock projection of the whole catalog, sorted by name.
func (s *CatalogService) ListStock() ([]models.StockItem, error) {
	return s.repo.ListStock()
}

// SetStock overwrites the stock counter of one item and returns the updated
// record. Used by the admin stock panel; the order engine decrements stock
// through conditional updates instead.
func (s *CatalogService) SetStock(id string, stock int) (*models.FoodItem, error) {
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", apperrors.ErrValidation)
	}
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.Stock = stock
	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}
