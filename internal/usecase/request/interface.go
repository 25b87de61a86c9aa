package request

import (
	"context"

	domain "carpool-service/internal/domain/request"
	ridedomain "carpool-service/internal/domain/ride"
)

// Repository defines the data access operations for the request ledger.
type Repository interface {
	Create(ctx context.Context, r *domain.RideRequest) error
	GetByPair(ctx context.Context, rideID, requesterID string) (*domain.RideRequest, error) // (nil, nil) on miss
	ListByRide(ctx context.Context, rideID string) ([]domain.RideRequest, error)
	DeleteByPair(ctx context.Context, rideID, requesterID string) (int64, error)
}

// RideReader is the slice of the ride catalog the ledger needs for removal
// authorization. The ledger never verifies ride existence on submission.
type RideReader interface {
	GetByID(ctx context.Context, id string) (*ridedomain.Ride, error)
}

// Usecase defines the interface for request ledger operations.
type Usecase interface {
	Submit(ctx context.Context, in SubmitRequest) (*RideRequest, error)
	ListByRide(ctx context.Context, rideID string) ([]RideRequest, error)
	Remove(ctx context.Context, in RemoveRequest) error
}
