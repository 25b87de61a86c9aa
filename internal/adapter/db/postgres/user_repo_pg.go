package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"carpool-service/internal/domain/user"
	pkgerrors "carpool-service/pkg/errors"
)

// UserRepoPG implements the auth repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
// UID and email carry unique indexes so the registration check-then-act
// sequence is backed by a storage-level constraint, not only the pre-check.
type UserSchema struct {
	ID           int64    `gorm:"primaryKey;autoIncrement"`
	UID          string   `gorm:"not null;uniqueIndex"` // External identifier, authentication key
	UserType     string   `gorm:"not null"`
	FirstName    string   `gorm:"not null"`
	LastName     string   `gorm:"not null"`
	Email        string   `gorm:"not null;uniqueIndex"`
	Designation  string   `gorm:"not null"`
	Phone        string   `gorm:"not null"`
	PasswordHash string   `gorm:"not null"`
	Rating       *float64 // Optional
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (s *UserSchema) toDomain() *user.User {
	return &user.User{
		UID:          s.UID,
		UserType:     s.UserType,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Email:        s.Email,
		Designation:  s.Designation,
		Phone:        s.Phone,
		PasswordHash: s.PasswordHash,
		Rating:       s.Rating,
	}
}

// Create inserts a new user into the database. A unique-index violation on
// uid or email surfaces as a ConflictError.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := UserSchema{
		UID:          u.UID,
		UserType:     u.UserType,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Designation:  u.Designation,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Rating:       u.Rating,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("user uniqueness violation", zap.String("uid", u.UID))
			return pkgerrors.NewConflictError("user", "user already exists with this email")
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("uid", u.UID))
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("uid", u.UID))
	return nil
}

// GetByUID retrieves a user by their external identifier.
// Returns (nil, nil) when no user matches.
func (r *UserRepoPG) GetByUID(ctx context.Context, uid string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by uid", zap.String("uid", uid))
			return nil, nil
		}
		r.log.Error("failed to get user by uid from db", zap.Error(err), zap.String("uid", uid))
		return nil, fmt.Errorf("failed to get user by uid: %w", err)
	}

	return model.toDomain(), nil
}

// GetByEmail retrieves a user by their email address (case-sensitive exact
// match). Returns (nil, nil) when no user matches.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toDomain(), nil
}
