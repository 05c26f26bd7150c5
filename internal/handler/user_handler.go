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

// UserRequest defines the structure for user creation requests. Username is
// not accepted: it is derived server-side from name and last name.
type UserRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	RoleID   *uint   `json:"role_id"`
}

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List retrieves all users
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List()
	if err != nil {
		logger.FromContext(c).Error("Failed to retrieve users", zap.Error(err))
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get retrieves a specific user by ID
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "User ID")
	if err != nil {
		return errorJSON(c, err)
	}
	user, err := h.svc.Get(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ByRole retrieves all users holding one role
func (h *UserHandler) ByRole(c echo.Context) error {
	id, err := parseID(c, "Role ID")
	if err != nil {
		return errorJSON(c, err)
	}
	users, err := h.svc.ByRole(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Create adds a new user
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Name == nil || req.LastName == nil || req.Email == nil || req.Password == nil || req.RoleID == nil {
		return errorJSON(c, apperr.BadRequest("Name, last name, email, password and role are required"))
	}

	user, err := h.svc.Create(*req.Name, *req.LastName, *req.Email, *req.Password, *req.RoleID)
	if err != nil {
		log.Warn("Failed to create user", zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("user", "create")
	log.Info("User created",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username))
	return c.JSON(http.StatusCreated, user)
}

// Update applies a partial update to a user
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "User ID")
	if err != nil {
		return errorJSON(c, err)
	}

	var patch service.UserPatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	user, err := h.svc.Update(id, patch)
	if err != nil {
		log.Warn("Failed to update user", zap.Uint("user_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("user", "update")
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user that no sale references
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "User ID")
	if err != nil {
		return errorJSON(c, err)
	}

	if err := h.svc.Delete(id); err != nil {
		log.Warn("Failed to delete user", zap.Uint("user_id", id), zap.Error(err))
		return errorJSON(c, err)
	}

	prometheus.RecordEntityOperation("user", "delete")
	log.Info("User deleted", zap.Uint("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}
