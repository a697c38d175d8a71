package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/services"
)

const (
	msgFetchProductsFailed = "Error fetching products"
	msgProductAdded        = "Product added successfully!"
	msgAddProductFailed    = "Error adding product"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, m *metrics.Metrics, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{
		service: service,
		metrics: m,
		log:     log,
	}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleGetProducts)
	router.Post("/add-product", h.HandleAddProduct)
}

// HandleGetProducts returns every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		h.log.WithError(err).WithField("request_id", middleware.RequestID(c)).Error("failed to get products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": msgFetchProductsFailed,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

// HandleAddProduct creates a product. Every failure, including a malformed
// body, is reported as the same generic 500; the cause only goes to the log.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	log := h.log.WithField("request_id", middleware.RequestID(c))

	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		log.WithError(err).Error("failed to parse product body")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgAddProductFailed})
	}

	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		log.WithError(err).Error("failed to add product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgAddProductFailed})
	}

	h.metrics.Products.Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": msgProductAdded,
		"product": product,
	})
}
