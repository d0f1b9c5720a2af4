package repositories

import (
	"foodstall/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// immutable once created; there is no update or delete.
type OrderRepository interface {
	// GetAll returns orders newest first, filtered by customer email when
	// customerEmail is non-empty.
	GetAll(customerEmail string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
}
