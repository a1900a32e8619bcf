package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"skorpik-value/catalog"
	"skorpik-value/ledger"
	"skorpik-value/session"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrUnknownSide),
		errors.Is(err, session.ErrUnknownFilter),
		errors.Is(err, session.ErrUnknownSortKey),
		errors.Is(err, session.ErrUnknownSortOrder),
		errors.Is(err, session.ErrUnknownTab):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrInvalidCatalog):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	Error(c, statusFor(err), err.Error(), nil)
}
