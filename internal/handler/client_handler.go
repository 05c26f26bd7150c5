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

// ClientRequest defines the structure for client creation requests
type ClientRequest struct {
	Name         *string `json:"name"`
	LastName     *string `json:"last_name"`
	IdentityCard *string `json:"identity_card"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
}

type ClientHandler struct {
	svc *service.ClientService
}

func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// List retrieves all clients
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.svc.List()
	if err != nil {
		logger.FromContext(c).Error("Failed to retrieve clients", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, clients)
}

// Get retrieves a specific client by ID
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseID(c, "Client ID")
	if err != nil {
		return errorJSON(c, err)
	}
	client, err := h.svc.Get(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Search looks a client up by identity card number
func (h *ClientHandler) Search(c echo.Context) error {
	identityCard := c.QueryParam("identity_card")
	if identityCard == "" {
		return errorJSON(c, apperr.BadRequest("Identity card is required"))
	}
	client, err := h.svc.SearchByIdentityCard(identityCard)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Create adds a new client
func (h *ClientHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == nil || req.LastName == nil || req.IdentityCard == nil || req.Phone == nil {
		return errorJSON(c, apperr.BadRequest("Name, last name, identity card and phone are required"))
	}

	client, err := h.svc.Create(*req.Name, *req.LastName, *req.IdentityCard, *req.Phone, req.Email, req.Address)
	if err != nil {
		log.Warn("Failed to create client", zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("client", "create")
	log.Info("Client created", zap.Uint("client_id", client.ID))
	return c.JSON(http.StatusCreated, client)
}

// Update applies a partial update to a client
func (h *ClientHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Client ID")
	if err != nil {
		return errorJSON(c, err)
	}

	var patch service.ClientPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	client, err := h.svc.Update(id, patch)
	if err != nil {
		log.Warn("Failed to update client", zap.Uint("client_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("client", "update")
	return c.JSON(http.StatusOK, client)
}

// Delete removes a client that no sale references
func (h *ClientHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Client ID")
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.svc.Delete(id); err != nil {
		log.Warn("Failed to delete client", zap.Uint("client_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("client", "delete")
	log.Info("Client deleted", zap.Uint("client_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Client deleted"})
}
