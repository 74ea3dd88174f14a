package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, http.StatusInternalServerError, "internal server error")

	assert.Equal(t, "internal server error", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestAppErrorIsMatchesSentinelCopies(t *testing.T) {
	sentinel := New(http.StatusNotFound, "venue not found")
	wrapped := fmt.Errorf("lookup: %w", New(http.StatusNotFound, "venue not found"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, New(http.StatusNotFound, "hearing not found"))
}

func TestValidation(t *testing.T) {
	err := Validation("range exceeds %d days", 92)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "range exceeds 92 days", err.Message)
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "cancelled", err: fmt.Errorf("query: %w", context.Canceled), want: StatusClientClosedRequest},
		{name: "deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromContext(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Code)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, FromContext(errors.New("boom")))
}

func TestStatusCodeDefaultsTo500(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
}
