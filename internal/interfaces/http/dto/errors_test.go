package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"EMPTY_CART", http.StatusUnprocessableEntity},
		{"CANNOT_DELETE_DEFAULT", http.StatusUnprocessableEntity},
		{"CATEGORY_HAS_CHILDREN", http.StatusUnprocessableEntity},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"RATE_LIMITED", http.StatusTooManyRequests},
		// Unmapped INVALID_* codes read as validation failures
		{"INVALID_SKU", http.StatusBadRequest},
		{"INVALID_PLATFORM", http.StatusBadRequest},
		// Anything else is an internal error
		{"SOMETHING_ODD", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
