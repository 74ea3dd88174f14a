package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/apperror"
)

// Envelope is the JSON wrapper shared by every endpoint.
// Dados is omitted only when nil; an empty slice is still written as [].
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Dados   any    `json:"dados,omitempty"`
	Total   *int   `json:"total,omitempty"`

	// Set by Page only.
	Page       *int `json:"pagina,omitempty"`
	PageSize   *int `json:"tamanhoPagina,omitempty"`
	TotalPages *int `json:"totalPaginas,omitempty"`
}

// OK writes a successful envelope.
func OK(c *gin.Context, status int, dados any, message string) {
	c.JSON(status, Envelope{Success: true, Message: message, Dados: dados})
}

// List writes a successful envelope carrying a slice and its length.
func List[T any](c *gin.Context, items []T, message string) {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}
	total := len(items)
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Dados: items, Total: &total})
}

// Fail sends a JSON error envelope.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it defaults to 500 Internal Server Error and logs the cause.
func Fail(c *gin.Context, err error) {
	if ctxErr := apperror.FromContext(err); ctxErr != nil {
		c.JSON(ctxErr.Code, Envelope{Success: false, Message: ctxErr.Message})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= http.StatusInternalServerError {
			zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.JSON(appErr.Code, Envelope{Success: false, Message: appErr.Message})
		return
	}

	zap.L().Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: "internal server error"})
}

// BadRequest writes a 400 envelope with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}
