package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/JeansCordoba/Fruteria/internal/service"
	"github.com/JeansCordoba/Fruteria/pkg/logger"
	"github.com/JeansCordoba/Fruteria/prometheus"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name string `json:"name"`
}

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List retrieves all categories
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.svc.List()
	if err != nil {
		logger.FromContext(c).Error("Failed to retrieve categories", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Get retrieves a specific category by ID
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c, "Category ID")
	if err != nil {
		return errorJSON(c, err)
	}
	category, err := h.svc.Get(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Create adds a new category
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	category, err := h.svc.Create(req.Name)
	if err != nil {
		log.Warn("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("category", "create")
	log.Info("Category created", zap.Uint("category_id", category.ID), zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// Update renames an existing category
func (h *CategoryHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Category ID")
	if err != nil {
		return errorJSON(c, err)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	category, err := h.svc.Update(id, req.Name)
	if err != nil {
		log.Warn("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("category", "update")
	log.Info("Category updated", zap.Uint("category_id", category.ID), zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category that no product references
func (h *CategoryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Category ID")
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.svc.Delete(id); err != nil {
		log.Warn("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("category", "delete")
	log.Info("Category deleted", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted"})
}
