package server

import (
	"errors"
	"net/http"

	"github.com/agenthands/codecleaner/internal/model"
	"github.com/gin-gonic/gin"
)

// APIError is the JSON error body of the /api routes.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// toAPIError maps a typed failure to its HTTP status and code.
func toAPIError(err error) *APIError {
	var me *model.Error
	if !errors.As(err, &me) {
		return &APIError{Status: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: err.Error()}
	}

	apiErr := &APIError{Code: me.Kind.String(), Message: me.Message}
	if me.Err != nil {
		apiErr.Details = me.Err.Error()
	}

	switch me.Kind {
	case model.KindDecode, model.KindRead, model.KindUnsupportedFile:
		apiErr.Status = http.StatusBadRequest
	case model.KindMissingCredential:
		apiErr.Status = http.StatusServiceUnavailable
	case model.KindEmptyModelResponse, model.KindServiceCallFailed:
		apiErr.Status = http.StatusBadGateway
	default:
		apiErr.Status = http.StatusInternalServerError
	}
	return apiErr
}

func abortWithError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
