package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"foodstall/internal/apperrors"
	"foodstall/internal/models"

	"github.com/google/uuid"
)

// MockFoodItemRepository is an in-memory implementation of FoodItemRepository.
type MockFoodItemRepository struct {
	items map[string]models.FoodItem
	mu    sync.RWMutex
}

// NewMockFoodItemRepository creates a new instance of MockFoodItemRepository.
func NewMockFoodItemRepository() *MockFoodItemRepository {
	return &MockFoodItemRepository{
		items: make(map[string]models.FoodItem),
	}
}

// GetAll returns all food items, newest first.
func (r *MockFoodItemRepository) GetAll() ([]models.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.FoodItem, 0, len(r.items))
	for _, item := range r.items {
		itemList = append(itemList, item)
	}
	sort.Slice(itemList, func(i, j int) bool {
		return itemList[i].CreatedAt.After(itemList[j].CreatedAt)
	})
	return itemList, nil
}

// GetByID returns a food item by its ID.
func (r *MockFoodItemRepository) GetByID(id string) (*models.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: food item %s", apperrors.ErrNotFound, id)
	}
	return &item, nil
}

// GetByIDs returns the food items matching the given IDs. Missing ids are
// absent from the result.
func (r *MockFoodItemRepository) GetByIDs(ids []string) ([]models.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.FoodItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			itemList = append(itemList, item)
		}
	}
	return itemList, nil
}

// Create adds a new food item.
func (r *MockFoodItemRepository) Create(item *models.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing food item.
func (r *MockFoodItemRepository) Update(item *models.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("%w: food item %s", apperrors.ErrNotFound, item.ID)
	}
	item.UpdatedAt = time.Now()
	r.items[item.ID] = *item
	return nil
}

// Delete removes a food item by its ID.
func (r *MockFoodItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: food item %s", apperrors.ErrNotFound, id)
	}
	delete(r.items, id)
	return nil
}

// DecrementStock subtracts quantity from the item's stock only if the current
// stock covers it. The check and the write happen under one lock, so stock
// never goes negative even under concurrent callers.
func (r *MockFoodItemRepository) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.Stock < quantity {
		return fmt.Errorf("%w: stock changed for food item %s", apperrors.ErrConflict, id)
	}
	item.Stock -= quantity
	item.UpdatedAt = time.Now()
	r.items[id] = item
	return nil
}

// ListStock returns the stock projection of every food item, sorted by name.
func (r *MockFoodItemRepository) ListStock() ([]models.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stockList := make([]models.StockItem, 0, len(r.items))
	for _, item := range r.items {
		stockList = append(stockList, models.StockItem{
			ID:        item.ID,
			Name:      item.Name,
			Category:  item.Category,
			Image:     item.Image,
			Stock:     item.Stock,
			UpdatedAt: item.UpdatedAt,
		})
	}
	sort.Slice(stockList, func(i, j int) bool {
		return stockList[i].Name < stockList[j].Name
	})
	return stockList, nil
}
