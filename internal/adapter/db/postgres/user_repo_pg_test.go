package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"carpool-service/internal/domain/user"
	pkgerrors "carpool-service/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	// Migrate the schema
	err = db.AutoMigrate(&UserSchema{}, &RideSchema{}, &RideRequestSchema{})
	require.NoError(t, err)

	return db
}

func testUser(uid, email string) *user.User {
	return &user.User{
		UID:          uid,
		UserType:     "passenger",
		FirstName:    "Alice",
		LastName:     "Smith",
		Email:        email,
		Designation:  "engineer",
		Phone:        "9876543210",
		PasswordHash: "$2a$10$hash",
	}
}

func TestUserRepoPG_CreateAndGetByUID(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewUserRepoPG(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("alice01", "alice@example.com")))

	got, err := repo.GetByUID(ctx, "alice01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice01", got.UID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.Nil(t, got.Rating)
}

func TestUserRepoPG_GetByUID_Miss(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewUserRepoPG(db, logger)

	got, err := repo.GetByUID(context.Background(), "ghost")

	// A miss is (nil, nil), not an error.
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepoPG_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewUserRepoPG(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("alice01", "alice@example.com")))

	got, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice01", got.UID)

	miss, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, miss)
}

func TestUserRepoPG_Create_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewUserRepoPG(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("alice01", "alice@example.com")))

	err := repo.Create(ctx, testUser("bob02", "alice@example.com"))
	require.Error(t, err)

	var conflict *pkgerrors.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserRepoPG_Create_DuplicateUID(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewUserRepoPG(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("alice01", "alice@example.com")))

	err := repo.Create(ctx, testUser("alice01", "other@example.com"))
	require.Error(t, err)

	var conflict *pkgerrors.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUserRepoPG_Create_Nil(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewUserRepoPG(db, logger)

	err := repo.Create(context.Background(), nil)
	assert.Error(t, err)
}
