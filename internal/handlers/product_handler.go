package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"productsvc/internal/models"
	"productsvc/internal/services"
	"productsvc/internal/validation"
)

const (
	defaultLimit = 100
	maxLimit     = 100
	maxSearchLen = 255
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validation
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validation.Validation) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts retrieves products with offset pagination and optional
// case-insensitive substring search over name and description.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", defaultLimit)
	search := c.Query("search")

	// Query parameters are range-checked before any query runs.
	var errs validation.FieldErrors
	if skip < 0 {
		errs = append(errs, validation.FieldError{Field: "skip", Message: "must be greater than or equal to 0"})
	}
	if limit < 1 || limit > maxLimit {
		errs = append(errs, validation.FieldError{Field: "limit", Message: "must be between 1 and 100"})
	}
	if len(search) > maxSearchLen {
		errs = append(errs, validation.FieldError{Field: "search", Message: "must be at most 255 characters long"})
	}
	if errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": errs})
	}

	products, err := h.service.ListProducts(c.UserContext(), skip, limit, search)
	if err != nil {
		log.Printf("Error listing products (skip=%d, limit=%d, search=%q): %v", skip, limit, search, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not retrieve products.",
		})
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, errs := parseProductID(c)
	if errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": errs})
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Product not found"})
		}
		log.Printf("Error getting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not retrieve product.",
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product from a validated payload.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var payload models.ProductCreate
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid request body"})
	}

	if errs := h.validate.Validate(&payload); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": errs})
	}

	product, err := h.service.CreateProduct(c.UserContext(), &payload)
	if err != nil {
		log.Printf("Error creating product %q: %v", payload.Name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not create product.",
		})
	}

	log.Printf("Product %q (ID: %d) created successfully.", product.Name, product.ProductID)
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to an existing product. Fields
// absent from the body keep their stored values.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, errs := parseProductID(c)
	if errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": errs})
	}

	var payload models.ProductUpdate
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid request body"})
	}

	if errs := h.validate.Validate(&payload); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": errs})
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, &payload)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Product not found"})
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Could not update product.",
		})
	}

	log.Printf("Product %q (ID: %d) updated successfully.", product.Name, product.ProductID)
	return c.JSON(product)
}

// HandleDeleteProduct removes a product permanently. A second delete of the
// same ID returns 404.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, errs := parseProductID(c)
	if errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": errs})
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Product not found"})
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "An error occurred while deleting the product.",
		})
	}

	log.Printf("Product (ID: %d) deleted successfully.", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// parseProductID reads the :id path parameter as a positive integer.
func parseProductID(c *fiber.Ctx) (uint, validation.FieldErrors) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, validation.FieldErrors{
			{Field: "product_id", Message: "must be a positive integer"},
		}
	}
	return uint(id), nil
}
