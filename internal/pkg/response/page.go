package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page writes one page of a list. total counts every matching record,
// not only the ones on this page.
func Page[T any](c *gin.Context, items []T, page, pageSize, total int, message string) {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Message:    message,
		Dados:      items,
		Total:      &total,
		Page:       &page,
		PageSize:   &pageSize,
		TotalPages: &totalPages,
	})
}
