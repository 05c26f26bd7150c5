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

// PaymentRequest defines the structure for payment method creation requests
type PaymentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// List retrieves all payment methods
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.svc.List()
	if err != nil {
		logger.FromContext(c).Error("Failed to retrieve payment methods", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// Get retrieves a specific payment method by ID
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := parseID(c, "Payment ID")
	if err != nil {
		return errorJSON(c, err)
	}
	payment, err := h.svc.Get(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

// Create adds a new payment method
func (h *PaymentHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == nil {
		return errorJSON(c, apperr.BadRequest("Name is required"))
	}

	payment, err := h.svc.Create(*req.Name, req.Description)
	if err != nil {
		log.Warn("Failed to create payment method", zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("payment", "create")
	log.Info("Payment method created", zap.Uint("payment_id", payment.ID), zap.String("name", payment.Name))
	return c.JSON(http.StatusCreated, payment)
}

// Update applies a partial update to a payment method
func (h *PaymentHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Payment ID")
	if err != nil {
		return errorJSON(c, err)
	}

	var patch service.PaymentPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	payment, err := h.svc.Update(id, patch)
	if err != nil {
		log.Warn("Failed to update payment method", zap.Uint("payment_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("payment", "update")
	return c.JSON(http.StatusOK, payment)
}

// Delete removes a payment method that no sale references
func (h *PaymentHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Payment ID")
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.svc.Delete(id); err != nil {
		log.Warn("Failed to delete payment method", zap.Uint("payment_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("payment", "delete")
	log.Info("Payment method deleted", zap.Uint("payment_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment method deleted"})
}
