package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
)

// parseID parses the :id path parameter. A non-integer value is the
// caller's fault, not a missing row.
func parseID(c echo.Context, fieldName string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest("%s must be an integer", fieldName)
	}
	return uint(id), nil
}

// errorJSON is the single point where service errors become HTTP responses:
// apperr values keep their status, everything else is a 500.
func errorJSON(c echo.Context, err error) error {
	return c.JSON(apperr.StatusOf(err), echo.Map{"error": err.Error()})
}
