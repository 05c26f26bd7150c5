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

// SaleRequest defines the structure for sale creation requests
type SaleRequest struct {
	ClientID  *uint                   `json:"client_id"`
	UserID    *uint                   `json:"user_id"`
	PaymentID *uint                   `json:"payment_id"`
	Items     []service.SaleItemInput `json:"items"`
}

type SaleHandler struct {
	svc *service.SaleService
}

func NewSaleHandler(svc *service.SaleService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// List retrieves all sales with their lines
func (h *SaleHandler) List(c echo.Context) error {
	sales, err := h.svc.List()
	if err != nil {
		logger.FromContext(c).Error("Failed to retrieve sales", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

// Get retrieves a specific sale by ID
func (h *SaleHandler) Get(c echo.Context) error {
	id, err := parseID(c, "Sale ID")
	if err != nil {
		return errorJSON(c, err)
	}
	sale, err := h.svc.Get(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, sale)
}

// ByClient retrieves all sales of one client
func (h *SaleHandler) ByClient(c echo.Context) error {
	id, err := parseID(c, "Client ID")
	if err != nil {
		return errorJSON(c, err)
	}
	sales, err := h.svc.ByClient(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

// Create registers a sale: header, lines and stock decrements as one unit
func (h *SaleHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ClientID == nil || req.UserID == nil || req.PaymentID == nil {
		return errorJSON(c, apperr.BadRequest("Client, user and payment method are required"))
	}

	sale, err := h.svc.Create(*req.ClientID, *req.UserID, *req.PaymentID, req.Items)
	if err != nil {
		log.Warn("Failed to create sale", zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.SalesCreatedCounter.Inc()
	log.Info("Sale created",
		zap.Uint("sale_id", sale.ID),
		zap.Int("items", len(sale.Details)),
		zap.String("total", sale.Total.String()))
	return c.JSON(http.StatusCreated, sale)
}

// Cancel flips a sale to cancelled and restores the sold stock
func (h *SaleHandler) Cancel(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Sale ID")
	if err != nil {
		return errorJSON(c, err)
	}

	sale, err := h.svc.Cancel(id)
	if err != nil {
		log.Warn("Failed to cancel sale", zap.Uint("sale_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.SalesCancelledCounter.Inc()
	log.Info("Sale cancelled", zap.Uint("sale_id", id))
	return c.JSON(http.StatusOK, sale)
}
