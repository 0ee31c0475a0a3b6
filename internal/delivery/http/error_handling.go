package http

import (
	"errors"
	"net/http"

	"steam-analysis/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp domain.ErrorResponse

	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		statusCode = http.StatusBadRequest
		errResp = domain.ErrorResponse{Code: domain.ErrCodeEmptyInput, Message: "Description must not be empty"}
	case errors.Is(err, domain.ErrRequestInFlight):
		statusCode = http.StatusConflict
		errResp = domain.ErrorResponse{Code: domain.ErrCodeRequestInFlight, Message: "An analysis request is already in progress"}
	case errors.Is(err, domain.ErrNoResult):
		statusCode = http.StatusConflict
		errResp = domain.ErrorResponse{Code: domain.ErrCodeNoResult, Message: "No analysis result to select from"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = domain.ErrorResponse{Code: domain.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}

func handleBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, domain.ErrorResponse{
		Code:    domain.ErrCodeBadRequest,
		Message: "Invalid request body: " + err.Error(),
	})
}
