package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"konnect/internal/services"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestRespondErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		want int
	}{
		{&services.ValidationError{Field: "title", Message: "required"}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", &services.ValidationError{Message: "bad"}), http.StatusBadRequest},
		{services.ErrUnauthenticated, http.StatusUnauthorized},
		{services.ErrBadCredential, http.StatusUnauthorized},
		{services.ErrBanned, http.StatusForbidden},
		{services.ErrSelfBan, http.StatusForbidden},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrNotOwner, http.StatusForbidden},
		{fmt.Errorf("campaign %w", services.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("already applied: %w", services.ErrConflict), http.StatusConflict},
		{services.ErrStorage, http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("pq: password authentication failed for user konnect"))
	assert.NotContains(t, w.Body.String(), "pq:")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, fmt.Errorf("you already applied to this campaign: %w", services.ErrConflict))
	assert.JSONEq(t, `{"error":"you already applied to this campaign"}`, w.Body.String())
}
