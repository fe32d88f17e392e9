package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atelier-community/atelier/internal/shared/errors"
)

// ParseIntParam parses an integer URL path parameter.
// entityName is used in error messages (e.g., "rank").
func ParseIntParam(c *gin.Context, paramName, entityName string) (int, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " is required")
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError("invalid "+entityName+", expected an integer", raw)
	}
	return v, nil
}
