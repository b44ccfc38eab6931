package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"publicator/app/services"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"bad request", services.ErrBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
		{"wrapped not found", fmt.Errorf("get media: %w", &services.Error{Kind: services.KindNotFound, Message: services.MsgMediaNotFound}), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", services.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
