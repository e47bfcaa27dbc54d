package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"versepin/internal/middleware"
	"versepin/internal/service"
	"versepin/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performAuthRequest(authSvc service.AuthService, authHeader string) (*httptest.ResponseRecorder, bool) {
	reached := false
	r := gin.New()
	r.Use(middleware.AuthMiddleware(authSvc))
	r.GET("/protected", func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"user": middleware.GetUsername(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, reached
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("ValidateToken", "good-token").
		Return(&service.Claims{Username: "operator"}, nil)

	w, reached := performAuthRequest(authSvc, "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.Contains(t, w.Body.String(), "operator")
	authSvc.AssertExpectations(t)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	authSvc := new(mocks.MockAuthService)

	w, reached := performAuthRequest(authSvc, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
	authSvc.AssertNotCalled(t, "ValidateToken")
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	authSvc := new(mocks.MockAuthService)

	w, reached := performAuthRequest(authSvc, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
	authSvc.AssertNotCalled(t, "ValidateToken")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("ValidateToken", "bad-token").
		Return(nil, errors.New("token is expired"))

	w, reached := performAuthRequest(authSvc, "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
	authSvc.AssertExpectations(t)
}
