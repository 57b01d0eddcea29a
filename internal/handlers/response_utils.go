package handlers

import (
	"github.com/gin-gonic/gin"

	"dealertrack/internal/models"
)

// RespondWithError sends a standardized JSON error response.
func RespondWithError(c *gin.Context, httpStatus int, appErrorCode string, message string, details interface{}) {
	errResp := models.APIError{
		Code:    appErrorCode,
		Message: message,
		Details: details,
	}
	c.JSON(httpStatus, errResp)
}

// RespondWithSuccess sends a standardized JSON success response. A nil
// data value produces an empty body (204-style responses).
func RespondWithSuccess(c *gin.Context, httpStatus int, data interface{}) {
	if data != nil {
		c.JSON(httpStatus, data)
	} else {
		c.Status(httpStatus)
	}
}
