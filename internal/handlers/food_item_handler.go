package handlers

import (
	"log"

	"foodstall/internal/models"
	"foodstall/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FoodItemHandler handles HTTP requests for the catalog and the stock panel.
type FoodItemHandler struct {
	service  *services.CatalogService
	validate *validator.Validate
}

// NewFoodItemHandler creates a new FoodItemHandler.
func NewFoodItemHandler(service *services.CatalogService) *FoodItemHandler {
	return &FoodItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only catalog routes. These must be
// registered before the admin group so its middleware never shadows them.
func (h *FoodItemHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/food-items", h.HandleListFoodItems)
	router.Get("/food-items/:id", h.HandleGetFoodItemByID)
}

// RegisterAdminRoutes registers everything that mutates the menu or stock on
// the admin-gated router.
func (h *FoodItemHandler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/food-items", h.HandleCreateFoodItem)
	admin.Put("/food-items/:id", h.HandleUpdateFoodItem)
	admin.Delete("/food-items/:id", h.HandleDeleteFoodItem)
	admin.Get("/stock", h.HandleListStock)
	admin.Put("/stock/:id", h.HandleSetStock)
}

// HandleListFoodItems retrieves all food items, newest first.
func (h *FoodItemHandler) HandleListFoodItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(items)
}

// HandleGetFoodItemByID retrieves a single food item by its ID.
func (h *FoodItemHandler) HandleGetFoodItemByID(c *fiber.Ctx) error {
	item, err := h.service.GetItem(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(item)
}

// CreateFoodItemRequest represents the request body for creating a food item.
type CreateFoodItemRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"required,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// HandleCreateFoodItem creates a new food item. Stock defaults to 0 when the
// client omits it.
func (h *FoodItemHandler) HandleCreateFoodItem(c *fiber.Ctx) error {
	var req CreateFoodItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing food item request body: %v", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	item := models.FoodItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
	}
	if err := h.service.CreateItem(&item); err != nil {
		log.Printf("Error creating food item: %v", err)
		return domainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateFoodItem applies a partial update to an existing food item.
func (h *FoodItemHandler) HandleUpdateFoodItem(c *fiber.Ctx) error {
	var upd services.FoodItemUpdate
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("Error parsing food item update body: %v", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(upd); err != nil {
		return validationError(c, err)
	}

	item, err := h.service.UpdateItem(c.Params("id"), upd)
	if err != nil {
		log.Printf("Error updating food item %s: %v", c.Params("id"), err)
		return domainError(c, err)
	}
	return c.JSON(item)
}

// HandleDeleteFoodItem deletes a food item by its ID.
func (h *FoodItemHandler) HandleDeleteFoodItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.Params("id")); err != nil {
		log.Printf("Error deleting food item %s: %v", c.Params("id"), err)
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Food item deleted successfully",
	})
}

// HandleListStock returns the stock view of the catalog, sorted by name.
func (h *FoodItemHandler) HandleListStock(c *fiber.Ctx) error {
	items, err := h.service.ListStock()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(items)
}

// SetStockRequest represents the request body for a direct stock write.
type SetStockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

// HandleSetStock overwrites the stock counter of one item.
func (h *FoodItemHandler) HandleSetStock(c *fiber.Ctx) error {
	var req SetStockRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing stock update body: %v", err)
		return badRequest(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	item, err := h.service.SetStock(c.Params("id"), *req.Stock)
	if err != nil {
		log.Printf("Error updating stock for %s: %v", c.Params("id"), err)
		return domainError(c, err)
	}
	return c.JSON(item)
}
