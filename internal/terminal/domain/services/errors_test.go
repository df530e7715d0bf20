package services_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"posterminal/internal/terminal/domain/services"
)

func TestAPIError_Classification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, target: services.ErrUnauthenticated},
		{name: "server failure", status: http.StatusBadGateway, target: services.ErrServer},
		{name: "domain conflict", status: http.StatusConflict, target: services.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &services.APIError{Status: tt.status, Method: http.MethodGet, Path: "/products"})
			assert.ErrorIs(t, err, tt.target)

			status, ok := services.StatusOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &services.APIError{Status: http.StatusConflict, Method: http.MethodPost, Path: "/products", Message: "sku already exists"}

	assert.Equal(t, "sku already exists", services.MessageOf(err))
	assert.Contains(t, err.Error(), "409")
	assert.True(t, services.IsClientError(err))
	assert.False(t, services.IsClientError(errors.New("dial tcp: refused")))
	assert.Equal(t, "dial tcp: refused", services.MessageOf(errors.New("dial tcp: refused")))
}

func TestValidationError(t *testing.T) {
	err := &services.ValidationError{Field: "password", Reason: "must be at least 8 characters"}

	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, "password: must be at least 8 characters", err.Error())
}
