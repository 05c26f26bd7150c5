package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/service"
	"github.com/JeansCordoba/Fruteria/pkg/logger"
	"github.com/JeansCordoba/Fruteria/prometheus"
)

// ProductRequest defines the structure for product creation requests.
// Pointer fields distinguish "absent" from zero values.
type ProductRequest struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *uint            `json:"category_id"`
	Stock      *int             `json:"stock"`
	SupplierID *uint            `json:"supplier_id"`
}

// StockRequest defines the structure for stock replacement requests
type StockRequest struct {
	Stock *int `json:"stock"`
}

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List retrieves all products
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.svc.List()
	if err != nil {
		logger.FromContext(c).Error("Failed to retrieve products", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// ListByCategory retrieves the products belonging to one category
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	id, err := parseID(c, "Category ID")
	if err != nil {
		return errorJSON(c, err)
	}
	products, err := h.svc.ListByCategory(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Get retrieves a specific product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c, "Product ID")
	if err != nil {
		return errorJSON(c, err)
	}
	product, err := h.svc.Get(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == nil || req.Price == nil || req.CategoryID == nil || req.Stock == nil {
		return errorJSON(c, apperr.BadRequest("All fields are required"))
	}

	product, err := h.svc.Create(*req.Name, *req.Price, *req.CategoryID, *req.Stock, req.SupplierID)
	if err != nil {
		log.Warn("Failed to create product", zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("product", "create")
	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("stock", product.Stock))
	return c.JSON(http.StatusCreated, product)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Product ID")
	if err != nil {
		return errorJSON(c, err)
	}

	var patch service.ProductPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.svc.Update(id, patch)
	if err != nil {
		log.Warn("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("product", "update")
	return c.JSON(http.StatusOK, product)
}

// UpdateStock replaces the stock level of a product
func (h *ProductHandler) UpdateStock(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Product ID")
	if err != nil {
		return errorJSON(c, err)
	}

	var req StockRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Stock == nil {
		return errorJSON(c, apperr.BadRequest("Stock is required"))
	}

	product, err := h.svc.UpdateStock(id, *req.Stock)
	if err != nil {
		log.Warn("Failed to update stock", zap.Uint("product_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("product", "update_stock")
	log.Info("Product stock updated", zap.Uint("product_id", id), zap.Int("stock", product.Stock))
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product that no sale references
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Product ID")
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.svc.Delete(id); err != nil {
		log.Warn("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("product", "delete")
	log.Info("Product deleted", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted"})
}
