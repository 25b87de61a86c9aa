package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "carpool-service/internal/domain/user"
	pkgerrors "carpool-service/pkg/errors"
	"carpool-service/pkg/security"
)

func setupTestVerifier(t *testing.T) (*Verifier, *MockRepository, *security.TokenManager) {
	mockRepo := new(MockRepository)
	logger := zaptest.NewLogger(t)
	tokens, err := security.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewVerifier(mockRepo, tokens, logger), mockRepo, tokens
}

func TestVerify_Success(t *testing.T) {
	v, mockRepo, tokens := setupTestVerifier(t)
	ctx := context.Background()

	token, err := tokens.Issue("alice01")
	require.NoError(t, err)

	stored := &domain.User{UID: "alice01", FirstName: "Alice"}
	mockRepo.On("GetByUID", ctx, "alice01").Return(stored, nil)

	u, err := v.Verify(ctx, token)

	assert.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice01", u.UID)

	mockRepo.AssertExpectations(t)
}

func TestVerify_MalformedToken(t *testing.T) {
	v, _, _ := setupTestVerifier(t)
	ctx := context.Background()

	u, err := v.Verify(ctx, "not.a.token")

	assert.Error(t, err)
	assert.Nil(t, u)

	var unauthorized *pkgerrors.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestVerify_WrongSecret(t *testing.T) {
	v, _, _ := setupTestVerifier(t)
	ctx := context.Background()

	other, err := security.NewTokenManager("other-secret", time.Hour)
	require.NoError(t, err)
	token, err := other.Issue("alice01")
	require.NoError(t, err)

	u, err := v.Verify(ctx, token)

	assert.Error(t, err)
	assert.Nil(t, u)
}

func TestVerify_UserDeletedAfterIssuance(t *testing.T) {
	v, mockRepo, tokens := setupTestVerifier(t)
	ctx := context.Background()

	token, err := tokens.Issue("alice01")
	require.NoError(t, err)

	mockRepo.On("GetByUID", ctx, "alice01").Return(nil, nil)

	u, err := v.Verify(ctx, token)

	assert.Error(t, err)
	assert.Nil(t, u)
	assert.Equal(t, "invalid or expired token", err.Error())

	mockRepo.AssertExpectations(t)
}

func TestVerify_ExpiredToken(t *testing.T) {
	v, _, _ := setupTestVerifier(t)

	claims := security.Claims{UID: "alice01"}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	u, err := v.Verify(context.Background(), token)

	assert.Error(t, err)
	assert.Nil(t, u)
}
