package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/JeansCordoba/Fruteria/internal/service"
	"github.com/JeansCordoba/Fruteria/pkg/jwtutil"
	"github.com/JeansCordoba/Fruteria/pkg/logger"
	"github.com/JeansCordoba/Fruteria/prometheus"
)

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthHandler struct {
	users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Login verifies credentials and issues a JWT for the admin surface
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		log.Warn("Authentication failed", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_credentials")
		return errorJSON(c, err)
	}

	token, err := jwtutil.GenerateToken(user.Username, user.ID, user.RoleID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in", zap.String("username", user.Username), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  user,
	})
}
