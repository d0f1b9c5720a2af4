package services_test

import (
	"fmt"
	"sync"
	"testing"

	"foodstall/internal/apperrors"
	"foodstall/internal/models"
	"foodstall/internal/repositories"
	"foodstall/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetAll(customerEmail string) ([]models.Order, error) {
	args := m.Called(customerEmail)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderCreated(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func testCustomer() models.Customer {
	return models.Customer{
		Fname:        "Asha",
		Email:        "asha@example.com",
		Phone:        "9876543210",
		AddressLine1: "12 Market Road",
		City:         "Pune",
		State:        "MH",
		Pincode:      "411001",
	}
}

// newOrderServiceWithCatalog wires an order service over in-memory
// repositories seeded with the given items.
func newOrderServiceWithCatalog(t *testing.T, items ...*models.FoodItem) (*services.OrderService, *repositories.MockFoodItemRepository, *repositories.MockOrderRepository) {
	t.Helper()
	foodRepo := repositories.NewMockFoodItemRepository()
	for _, item := range items {
		assert.NoError(t, foodRepo.Create(item))
	}
	orderRepo := repositories.NewMockOrderRepository()
	return services.NewOrderService(orderRepo, foodRepo, nil), foodRepo, orderRepo
}

func TestOrderService_PlaceOrder_ExampleScenario(t *testing.T) {
	itemA := &models.FoodItem{ID: "item-a", Name: "Veg Thali", Description: "Full plate", Price: 10.00, Category: "veg", Stock: 5}
	service, foodRepo, orderRepo := newOrderServiceWithCatalog(t, itemA)

	order, err := service.PlaceOrder(services.OrderRequest{
		Items: []services.OrderRequestItem{
			// The forged client price must have no effect on the total.
			{ItemID: "item-a", Quantity: 2, Price: 0.01},
		},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentCOD,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 20.00, order.Subtotal)
	assert.Equal(t, 1.00, order.Tax)
	assert.Equal(t, 21.00, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentCOD, order.PaymentMethod)

	// Lines are snapshots of the catalog record, not of the client request
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Veg Thali", order.Items[0].Name)
	assert.Equal(t, 10.00, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Stock was decremented and the order persisted
	stored, err := foodRepo.GetByID("item-a")
	assert.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)

	persisted, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 21.00, persisted.Total)
}

func TestOrderService_PlaceOrder_TaxAndTotalRounding(t *testing.T) {
	item := &models.FoodItem{ID: "item-a", Name: "Cutting Chai", Price: 0.10, Category: "beverage", Stock: 10}
	service, _, _ := newOrderServiceWithCatalog(t, item)

	order, err := service.PlaceOrder(services.OrderRequest{
		Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 3}},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentOnline,
	})

	assert.NoError(t, err)
	// tax = round2(0.30 * 0.05) = round2(0.015) = 0.02 (half-up),
	// total = round2(0.30 + 0.02) = 0.32; tax and total round independently.
	assert.Equal(t, 0.02, order.Tax)
	assert.Equal(t, 0.32, order.Total)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	item := &models.FoodItem{ID: "item-a", Name: "Veg Thali", Price: 10.00, Category: "veg", Stock: 5}
	service, foodRepo, orderRepo := newOrderServiceWithCatalog(t, item)

	order, err := service.PlaceOrder(services.OrderRequest{
		Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 10}},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentCOD,
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "insufficient stock for Veg Thali")

	// Nothing was persisted and stock is untouched
	stored, _ := foodRepo.GetByID("item-a")
	assert.Equal(t, 5, stored.Stock)
	orders, _ := orderRepo.GetAll("")
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_UnknownItem(t *testing.T) {
	item := &models.FoodItem{ID: "item-a", Name: "Veg Thali", Price: 10.00, Category: "veg", Stock: 5}
	service, _, orderRepo := newOrderServiceWithCatalog(t, item)

	order, err := service.PlaceOrder(services.OrderRequest{
		Items: []services.OrderRequestItem{
			{ItemID: "item-a", Quantity: 1},
			{ItemID: "ghost", Quantity: 1},
		},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentCOD,
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "item not found: ghost")
	orders, _ := orderRepo.GetAll("")
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_Validation(t *testing.T) {
	item := &models.FoodItem{ID: "item-a", Name: "Veg Thali", Price: 10.00, Category: "veg", Stock: 5}
	service, _, _ := newOrderServiceWithCatalog(t, item)

	cases := []struct {
		name string
		req  services.OrderRequest
	}{
		{
			name: "empty items",
			req:  services.OrderRequest{Customer: testCustomer(), PaymentMethod: models.PaymentCOD},
		},
		{
			name: "missing customer",
			req: services.OrderRequest{
				Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 1}},
				PaymentMethod: models.PaymentCOD,
			},
		},
		{
			name: "unknown payment method",
			req: services.OrderRequest{
				Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 1}},
				Customer:      testCustomer(),
				PaymentMethod: "barter",
			},
		},
		{
			name: "zero quantity",
			req: services.OrderRequest{
				Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 0}},
				Customer:      testCustomer(),
				PaymentMethod: models.PaymentCOD,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := service.PlaceOrder(tc.req)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

// A decrement that loses the race aborts the order, but decrements already
// applied in the same call stay committed. The caller gets a conflict and is
// expected to retry.
func TestOrderService_PlaceOrder_StockConflictKeepsPriorDecrements(t *testing.T) {
	mockFoodRepo := new(MockFoodItemRepository)
	mockOrderRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockOrderRepo, mockFoodRepo, nil)

	catalog := []models.FoodItem{
		{ID: "item-a", Name: "Veg Thali", Price: 10.00, Stock: 5},
		{ID: "item-b", Name: "Gulab Jamun", Price: 4.00, Stock: 2},
	}
	mockFoodRepo.On("GetByIDs", []string{"item-a", "item-b"}).Return(catalog, nil).Once()
	mockFoodRepo.On("DecrementStock", "item-a", 2).Return(nil).Once()
	// The second line loses the race: stock moved between snapshot and write.
	mockFoodRepo.On("DecrementStock", "item-b", 1).
		Return(fmt.Errorf("%w: stock changed for food item item-b", apperrors.ErrConflict)).Once()

	order, err := service.PlaceOrder(services.OrderRequest{
		Items: []services.OrderRequestItem{
			{ItemID: "item-a", Quantity: 2},
			{ItemID: "item-b", Quantity: 1},
		},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentCard,
	})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "stock changed for Gulab Jamun")

	// No order was persisted, yet the first decrement went through and is
	// not rolled back.
	mockOrderRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockFoodRepo.AssertCalled(t, "DecrementStock", "item-a", 2)
	mockFoodRepo.AssertExpectations(t)
}

// Two orders racing for the last unit: exactly one wins, stock never goes
// negative.
func TestOrderService_PlaceOrder_ConcurrentLastUnit(t *testing.T) {
	item := &models.FoodItem{ID: "item-a", Name: "Veg Thali", Price: 10.00, Category: "veg", Stock: 1}
	service, foodRepo, orderRepo := newOrderServiceWithCatalog(t, item)

	req := services.OrderRequest{
		Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 1}},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentCOD,
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = service.PlaceOrder(req)
		}(i)
	}
	wg.Wait()

	var successes, failures int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			failures++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)

	stored, _ := foodRepo.GetByID("item-a")
	assert.Equal(t, 0, stored.Stock)
	orders, _ := orderRepo.GetAll("")
	assert.Len(t, orders, 1)
}

func TestOrderService_PlaceOrder_PublishesEvent(t *testing.T) {
	foodRepo := repositories.NewMockFoodItemRepository()
	assert.NoError(t, foodRepo.Create(&models.FoodItem{ID: "item-a", Name: "Veg Thali", Price: 10.00, Category: "veg", Stock: 5}))
	orderRepo := repositories.NewMockOrderRepository()

	events := new(MockEventPublisher)
	// A failing publish must not fail the order.
	events.On("PublishOrderCreated", mock.MatchedBy(func(event map[string]interface{}) bool {
		return event["customer"] == "asha@example.com" && event["status"] == models.StatusPending
	})).Return(fmt.Errorf("broker unavailable")).Once()

	service := services.NewOrderService(orderRepo, foodRepo, events)
	order, err := service.PlaceOrder(services.OrderRequest{
		Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 1}},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentOnline,
	})

	assert.NoError(t, err)
	assert.NotNil(t, order)
	events.AssertExpectations(t)
}

func TestOrderService_ListOrders_FilterByEmail(t *testing.T) {
	item := &models.FoodItem{ID: "item-a", Name: "Veg Thali", Price: 10.00, Category: "veg", Stock: 10}
	service, _, _ := newOrderServiceWithCatalog(t, item)

	first, err := service.PlaceOrder(services.OrderRequest{
		Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 1}},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentCOD,
	})
	assert.NoError(t, err)

	other := testCustomer()
	other.Email = "ravi@example.com"
	_, err = service.PlaceOrder(services.OrderRequest{
		Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 2}},
		Customer:      other,
		PaymentMethod: models.PaymentCard,
	})
	assert.NoError(t, err)

	all, err := service.ListOrders("")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := service.ListOrders("asha@example.com")
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	none, err := service.ListOrders("nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	item := &models.FoodItem{ID: "item-a", Name: "Veg Thali", Price: 10.00, Category: "veg", Stock: 5}
	service, _, _ := newOrderServiceWithCatalog(t, item)

	placed, err := service.PlaceOrder(services.OrderRequest{
		Items:         []services.OrderRequestItem{{ItemID: "item-a", Quantity: 1}},
		Customer:      testCustomer(),
		PaymentMethod: models.PaymentCOD,
	})
	assert.NoError(t, err)

	found, err := service.GetOrderByID(placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, placed.ID, found.ID)

	_, err = service.GetOrderByID("ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
