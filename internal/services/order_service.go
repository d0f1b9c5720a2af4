package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"foodstall/internal/apperrors"
	"foodstall/internal/models"
	"foodstall/internal/repositories"
)

// EventPublisher publishes order lifecycle events. Publication is best-effort:
// a failed publish is logged and never fails the request.
type EventPublisher interface {
	PublishOrderCreated(event map[string]interface{}) error
}

// OrderRequest is the checkout payload. Any client-submitted price in the
// lines is ignored; pricing always comes from the catalog.
type OrderRequest struct {
	Items         []OrderRequestItem `json:"items" validate:"required,min=1,dive"`
	Customer      models.Customer    `json:"customer" validate:"required"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=online card cod"`
}

// OrderRequestItem is one cart line as submitted by the client.
type OrderRequestItem struct {
	ItemID   string  `json:"itemId" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price"` // client-submitted, never trusted
}

// OrderService handles order placement and order queries.
type OrderService struct {
	orderRepo repositories.OrderRepository
	foodRepo  repositories.FoodItemRepository
	events    EventPublisher
}

// NewOrderService creates a new OrderService. events may be nil when no
// message broker is configured.
func NewOrderService(orderRepo repositories.OrderRepository, foodRepo repositories.FoodItemRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		foodRepo:  foodRepo,
		events:    events,
	}
}

// ListOrders retrieves orders newest first, filtered by customer email when
// customerEmail is non-empty.
func (s *OrderService) ListOrders(customerEmail string) ([]models.Order, error) {
	return s.orderRepo.GetAll(customerEmail)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder validates the cart against the live catalog, recomputes all
// prices server-side, decrements stock one line at a time with conditional
// updates, and persists the order with status "pending".
//
// The per-line decrement is the only enforcement point: the stock pre-check
// runs against a snapshot and is advisory. When a decrement loses a race the
// call aborts with a conflict and decrements already applied in this call
// stay committed; the caller is told to retry. There is no compensating
// transaction.
func (s *OrderService) PlaceOrder(req OrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items are required", apperrors.ErrValidation)
	}
	if req.Customer.Email == "" || req.Customer.Fname == "" {
		return nil, fmt.Errorf("%w: customer details are required", apperrors.ErrValidation)
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: payment method must be one of online, card, cod", apperrors.ErrValidation)
	}
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidation)
		}
	}

	// Bulk-fetch the referenced items in one query.
	ids := make([]string, 0, len(req.Items))
	for _, line := range req.Items {
		ids = append(ids, line.ItemID)
	}
	dbItems, err := s.foodRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	byID := make(map[string]models.FoodItem, len(dbItems))
	for _, item := range dbItems {
		byID[item.ID] = item
	}

	// Advisory pre-check on a possibly stale snapshot. The conditional
	// decrement below is the enforcement point.
	for _, line := range req.Items {
		dbItem, ok := byID[line.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item not found: %s", apperrors.ErrNotFound, line.ItemID)
		}
		if dbItem.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %s", apperrors.ErrValidation, dbItem.Name)
		}
	}

	// Snapshot the lines from server-side data; client prices are discarded.
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	var subtotal float64
	for _, line := range req.Items {
		dbItem := byID[line.ItemID]
		orderItems = append(orderItems, models.OrderItem{
			ItemID:   dbItem.ID,
			Name:     dbItem.Name,
			Price:    dbItem.Price,
			Quantity: line.Quantity,
		})
		subtotal += dbItem.Price * float64(line.Quantity)
	}

	tax := round2(subtotal * 0.05)
	total := round2(subtotal + tax)

	// Sequential conditional decrements, one line at a time. A lost race
	// aborts the order but does not roll back earlier decrements.
	for _, it := range orderItems {
		if err := s.foodRepo.DecrementStock(it.ItemID, it.Quantity); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return nil, fmt.Errorf("%w: stock changed for %s, try again", apperrors.ErrConflict, it.Name)
			}
			return nil, fmt.Errorf("failed to decrement stock for %s: %w", it.Name, err)
		}
	}

	order := &models.Order{
		Items:         orderItems,
		Customer:      req.Customer,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	if s.events != nil {
		event := map[string]interface{}{
			"orderID":  order.ID,
			"customer": order.Customer.Email,
			"status":   order.Status,
			"total":    order.Total,
		}
		if err := s.events.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// round2 rounds half-up to two decimal places. Tax and total are rounded
// independently: tax = round2(subtotal*0.05), total = round2(subtotal+tax).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
