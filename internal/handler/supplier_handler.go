package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/service"
	"github.com/JeansCordoba/Fruteria/pkg/logger"
	"github.com/JeansCordoba/Fruteria/prometheus"
)

// SupplierRequest defines the structure for supplier creation requests
type SupplierRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	NIT     *string `json:"nit"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// List retrieves all suppliers
func (h *SupplierHandler) List(c echo.Context) error {
	suppliers, err := h.svc.List()
	if err != nil {
		logger.FromContext(c).Error("Failed to retrieve suppliers", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, suppliers)
}

// Get retrieves a specific supplier by ID
func (h *SupplierHandler) Get(c echo.Context) error {
	id, err := parseID(c, "Supplier ID")
	if err != nil {
		return errorJSON(c, err)
	}
	supplier, err := h.svc.Get(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// GetByNIT retrieves a supplier by its tax ID
func (h *SupplierHandler) GetByNIT(c echo.Context) error {
	supplier, err := h.svc.GetByNIT(c.Param("nit"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// Create adds a new supplier
func (h *SupplierHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == nil || req.Phone == nil || req.NIT == nil || req.Email == nil || req.Address == nil {
		return errorJSON(c, apperr.BadRequest("All fields are required"))
	}

	supplier, err := h.svc.Create(*req.Name, *req.Phone, *req.NIT, *req.Email, *req.Address)
	if err != nil {
		log.Warn("Failed to create supplier", zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("supplier", "create")
	log.Info("Supplier created", zap.Uint("supplier_id", supplier.ID), zap.String("name", supplier.Name))
	return c.JSON(http.StatusCreated, supplier)
}

// Update applies a partial update to a supplier
func (h *SupplierHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Supplier ID")
	if err != nil {
		return errorJSON(c, err)
	}

	var patch service.SupplierPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	supplier, err := h.svc.Update(id, patch)
	if err != nil {
		log.Warn("Failed to update supplier", zap.Uint("supplier_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("supplier", "update")
	return c.JSON(http.StatusOK, supplier)
}

// Delete removes a supplier that no product references
func (h *SupplierHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Supplier ID")
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.svc.Delete(id); err != nil {
		log.Warn("Failed to delete supplier", zap.Uint("supplier_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("supplier", "delete")
	log.Info("Supplier deleted", zap.Uint("supplier_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Supplier deleted"})
}
