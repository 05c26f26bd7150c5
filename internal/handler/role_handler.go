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

// RoleRequest defines the structure for role creation requests
type RoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type RoleHandler struct {
	svc *service.RoleService
}

func NewRoleHandler(svc *service.RoleService) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// List retrieves all roles
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.svc.List()
	if err != nil {
		logger.FromContext(c).Error("Failed to retrieve roles", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, roles)
}

// Get retrieves a specific role by ID
func (h *RoleHandler) Get(c echo.Context) error {
	id, err := parseID(c, "Role ID")
	if err != nil {
		return errorJSON(c, err)
	}
	role, err := h.svc.Get(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, role)
}

// Create adds a new role
func (h *RoleHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == nil {
		return errorJSON(c, apperr.BadRequest("Name is required"))
	}

	role, err := h.svc.Create(*req.Name, req.Description)
	if err != nil {
		log.Warn("Failed to create role", zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("role", "create")
	log.Info("Role created", zap.Uint("role_id", role.ID), zap.String("name", role.Name))
	return c.JSON(http.StatusCreated, role)
}

// Update applies a partial update to a role
func (h *RoleHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Role ID")
	if err != nil {
		return errorJSON(c, err)
	}

	var patch service.RolePatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	role, err := h.svc.Update(id, patch)
	if err != nil {
		log.Warn("Failed to update role", zap.Uint("role_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("role", "update")
	return c.JSON(http.StatusOK, role)
}

// Delete removes a role that no user holds
func (h *RoleHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "Role ID")
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.svc.Delete(id); err != nil {
		log.Warn("Failed to delete role", zap.Uint("role_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("role", "delete")
	log.Info("Role deleted", zap.Uint("role_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Role deleted"})
}
