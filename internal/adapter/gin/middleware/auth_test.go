package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "carpool-service/internal/domain/user"
	pkgerrors "carpool-service/pkg/errors"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupAuthMiddleware(t *testing.T) (*gin.Engine, *mockVerifier) {
	gin.SetMode(gin.TestMode)
	verifier := new(mockVerifier)
	logger := zaptest.NewLogger(t)

	r := gin.New()
	r.GET("/protected", Auth(verifier, logger), func(c *gin.Context) {
		v, ok := c.Get(UserKey)
		require.True(t, ok)
		u := v.(*domain.User)
		c.JSON(http.StatusOK, gin.H{"uid": u.UID})
	})
	return r, verifier
}

func TestAuth_ValidToken(t *testing.T) {
	r, verifier := setupAuthMiddleware(t)

	verifier.On("Verify", mock.Anything, "good-token").
		Return(&domain.User{UID: "alice01"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice01")

	verifier.AssertExpectations(t)
}

func TestAuth_MissingHeader(t *testing.T) {
	r, _ := setupAuthMiddleware(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	r, _ := setupAuthMiddleware(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RejectedToken(t *testing.T) {
	r, verifier := setupAuthMiddleware(t)

	verifier.On("Verify", mock.Anything, "bad-token").
		Return(nil, pkgerrors.NewUnauthorizedError("invalid or expired token"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	verifier.AssertExpectations(t)
}
