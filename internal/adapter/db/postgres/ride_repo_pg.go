package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"carpool-service/internal/domain/ride"
)

// RideRepoPG implements the ride catalog repository using PostgreSQL and GORM.
type RideRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewRideRepoPG creates a new instance of RideRepoPG.
func NewRideRepoPG(db *gorm.DB, log *zap.Logger) *RideRepoPG {
	return &RideRepoPG{db: db, log: log}
}

// RideSchema represents the database schema for the rides table.
// Origin and destination are stored upper-cased by the usecase, so equality
// matches are case-insensitive without per-query normalization.
type RideSchema struct {
	ID          string  `gorm:"primaryKey"` // UUID assigned by the usecase
	PublisherID string  `gorm:"not null;index"`
	Origin      string  `gorm:"not null;index"`
	Destination string  `gorm:"not null;index"`
	Seats       int     `gorm:"not null"`
	Date        string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
}

// TableName specifies the table name for the RideSchema model.
func (RideSchema) TableName() string {
	return "rides"
}

func (s *RideSchema) toDomain() ride.Ride {
	return ride.Ride{
		ID:          s.ID,
		PublisherID: s.PublisherID,
		Origin:      s.Origin,
		Destination: s.Destination,
		Seats:       s.Seats,
		Date:        s.Date,
		Price:       s.Price,
	}
}

func toRides(models []RideSchema) []ride.Ride {
	rides := make([]ride.Ride, len(models))
	for i, m := range models {
		rides[i] = m.toDomain()
	}
	return rides
}

// Create inserts a new ride into the database.
func (r *RideRepoPG) Create(ctx context.Context, rd *ride.Ride) error {
	if rd == nil {
		return errors.New("ride cannot be nil")
	}

	model := RideSchema{
		ID:          rd.ID,
		PublisherID: rd.PublisherID,
		Origin:      rd.Origin,
		Destination: rd.Destination,
		Seats:       rd.Seats,
		Date:        rd.Date,
		Price:       rd.Price,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create ride in db", zap.Error(err), zap.String("publisher", rd.PublisherID))
		return fmt.Errorf("failed to create ride: %w", err)
	}

	r.log.Info("ride created in db", zap.String("id", rd.ID), zap.String("publisher", rd.PublisherID))
	return nil
}

// GetByID retrieves a ride by its identifier.
// Returns (nil, nil) when no ride matches.
func (r *RideRepoPG) GetByID(ctx context.Context, id string) (*ride.Ride, error) {
	var model RideSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("ride not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get ride from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	rd := model.toDomain()
	return &rd, nil
}

// ListAll retrieves every stored ride. An empty slice is a valid result.
func (r *RideRepoPG) ListAll(ctx context.Context) ([]ride.Ride, error) {
	var models []RideSchema
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		r.log.Error("failed to list rides from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}
	return toRides(models), nil
}

// FindByDestination retrieves rides with an exact destination match.
// Callers pass the destination already upper-cased.
func (r *RideRepoPG) FindByDestination(ctx context.Context, destination string) ([]ride.Ride, error) {
	var models []RideSchema
	if err := r.db.WithContext(ctx).Where("destination = ?", destination).Find(&models).Error; err != nil {
		r.log.Error("failed to find rides by destination", zap.Error(err), zap.String("destination", destination))
		return nil, fmt.Errorf("failed to find rides by destination: %w", err)
	}
	return toRides(models), nil
}

// FindByRoute retrieves rides matching origin and destination. The two
// fields are compared independently against their respective columns, so an
// origin value can never cross-match a destination.
func (r *RideRepoPG) FindByRoute(ctx context.Context, origin, destination string) ([]ride.Ride, error) {
	var models []RideSchema
	if err := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ?", origin, destination).
		Find(&models).Error; err != nil {
		r.log.Error("failed to find rides by route", zap.Error(err),
			zap.String("origin", origin), zap.String("destination", destination))
		return nil, fmt.Errorf("failed to find rides by route: %w", err)
	}
	return toRides(models), nil
}

// FindByRouteMaxPrice retrieves rides matching the route with price in the
// closed interval [0, maxPrice].
func (r *RideRepoPG) FindByRouteMaxPrice(ctx context.Context, origin, destination string, maxPrice float64) ([]ride.Ride, error) {
	var models []RideSchema
	if err := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ? AND price >= 0 AND price <= ?", origin, destination, maxPrice).
		Find(&models).Error; err != nil {
		r.log.Error("failed to find rides by route and price", zap.Error(err),
			zap.String("origin", origin), zap.String("destination", destination), zap.Float64("max_price", maxPrice))
		return nil, fmt.Errorf("failed to find rides by route and price: %w", err)
	}
	return toRides(models), nil
}

// FindByPublisher retrieves rides published by the given UID.
func (r *RideRepoPG) FindByPublisher(ctx context.Context, publisherID string) ([]ride.Ride, error) {
	var models []RideSchema
	if err := r.db.WithContext(ctx).Where("publisher_id = ?", publisherID).Find(&models).Error; err != nil {
		r.log.Error("failed to find rides by publisher", zap.Error(err), zap.String("publisher", publisherID))
		return nil, fmt.Errorf("failed to find rides by publisher: %w", err)
	}
	return toRides(models), nil
}
