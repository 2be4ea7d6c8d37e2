package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
)

// handleError writes the status for err. Internal details stay in c.Errors
// for the request logger.
func handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	case customErrors.IsConflict(err):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "already exists"})
	case customErrors.IsInvalidCredentials(err):
		c.Status(http.StatusUnauthorized)
	case customErrors.IsInvalidToken(err):
		c.String(http.StatusUnauthorized, "Unauthorized: Invalid Token")
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
