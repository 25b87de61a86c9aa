package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"carpool-service/internal/domain/request"
	pkgerrors "carpool-service/pkg/errors"
)

// RequestRepoPG implements the request ledger repository using PostgreSQL
// and GORM.
type RequestRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewRequestRepoPG creates a new instance of RequestRepoPG.
func NewRequestRepoPG(db *gorm.DB, log *zap.Logger) *RequestRepoPG {
	return &RequestRepoPG{db: db, log: log}
}

// RideRequestSchema represents the database schema for the ride_requests
// table. The composite unique index on (ride_id, requester_id) closes the
// race window left by the duplicate pre-check.
type RideRequestSchema struct {
	ID            string `gorm:"primaryKey"` // UUID assigned by the usecase
	RideID        string `gorm:"not null;uniqueIndex:idx_ride_requester"`
	RequesterID   string `gorm:"not null;uniqueIndex:idx_ride_requester"`
	RequesterName string `gorm:"not null"`
}

// TableName specifies the table name for the RideRequestSchema model.
func (RideRequestSchema) TableName() string {
	return "ride_requests"
}

func (s *RideRequestSchema) toDomain() request.RideRequest {
	return request.RideRequest{
		ID:            s.ID,
		RideID:        s.RideID,
		RequesterID:   s.RequesterID,
		RequesterName: s.RequesterName,
	}
}

// Create inserts a new ride request. A unique-index violation on the
// (ride_id, requester_id) pair surfaces as a DuplicateError.
func (r *RequestRepoPG) Create(ctx context.Context, rq *request.RideRequest) error {
	if rq == nil {
		return errors.New("ride request cannot be nil")
	}

	model := RideRequestSchema{
		ID:            rq.ID,
		RideID:        rq.RideID,
		RequesterID:   rq.RequesterID,
		RequesterName: rq.RequesterName,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate ride request",
				zap.String("ride_id", rq.RideID), zap.String("requester_id", rq.RequesterID))
			return pkgerrors.NewDuplicateError("already requested")
		}
		r.log.Error("failed to create ride request in db", zap.Error(err),
			zap.String("ride_id", rq.RideID), zap.String("requester_id", rq.RequesterID))
		return fmt.Errorf("failed to create ride request: %w", err)
	}

	r.log.Info("ride request created in db",
		zap.String("ride_id", rq.RideID), zap.String("requester_id", rq.RequesterID))
	return nil
}

// GetByPair retrieves the unique request for a (ride, requester) pair.
// Returns (nil, nil) when no request matches.
func (r *RequestRepoPG) GetByPair(ctx context.Context, rideID, requesterID string) (*request.RideRequest, error) {
	var model RideRequestSchema
	if err := r.db.WithContext(ctx).
		Where("ride_id = ? AND requester_id = ?", rideID, requesterID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("ride request not found",
				zap.String("ride_id", rideID), zap.String("requester_id", requesterID))
			return nil, nil
		}
		r.log.Error("failed to get ride request from db", zap.Error(err),
			zap.String("ride_id", rideID), zap.String("requester_id", requesterID))
		return nil, fmt.Errorf("failed to get ride request: %w", err)
	}

	rq := model.toDomain()
	return &rq, nil
}

// ListByRide retrieves every request against a ride. An empty slice is a
// valid result, distinct from a lookup error.
func (r *RequestRepoPG) ListByRide(ctx context.Context, rideID string) ([]request.RideRequest, error) {
	var models []RideRequestSchema
	if err := r.db.WithContext(ctx).Where("ride_id = ?", rideID).Find(&models).Error; err != nil {
		r.log.Error("failed to list ride requests from db", zap.Error(err), zap.String("ride_id", rideID))
		return nil, fmt.Errorf("failed to list ride requests: %w", err)
	}

	requests := make([]request.RideRequest, len(models))
	for i, m := range models {
		requests[i] = m.toDomain()
	}
	return requests, nil
}

// DeleteByPair removes the unique request for a (ride, requester) pair.
// Returns the number of rows removed so callers can distinguish a miss.
func (r *RequestRepoPG) DeleteByPair(ctx context.Context, rideID, requesterID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("ride_id = ? AND requester_id = ?", rideID, requesterID).
		Delete(&RideRequestSchema{})
	if res.Error != nil {
		r.log.Error("failed to delete ride request in db", zap.Error(res.Error),
			zap.String("ride_id", rideID), zap.String("requester_id", requesterID))
		return 0, fmt.Errorf("failed to delete ride request: %w", res.Error)
	}

	r.log.Info("ride request deleted in db",
		zap.String("ride_id", rideID), zap.String("requester_id", requesterID), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}
