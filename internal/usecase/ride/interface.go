package ride

import (
	"context"

	domain "carpool-service/internal/domain/ride"
)

// Repository defines the data access operations for the ride catalog.
// Search inputs arrive already upper-cased; equality matching in the store
// stays case-insensitive without per-query normalization.
type Repository interface {
	Create(ctx context.Context, r *domain.Ride) error
	GetByID(ctx context.Context, id string) (*domain.Ride, error) // (nil, nil) on miss
	ListAll(ctx context.Context) ([]domain.Ride, error)
	FindByDestination(ctx context.Context, destination string) ([]domain.Ride, error)
	FindByRoute(ctx context.Context, origin, destination string) ([]domain.Ride, error)
	FindByRouteMaxPrice(ctx context.Context, origin, destination string, maxPrice float64) ([]domain.Ride, error)
	FindByPublisher(ctx context.Context, publisherID string) ([]domain.Ride, error)
}

// Usecase defines the interface for ride catalog operations.
type Usecase interface {
	Publish(ctx context.Context, in PublishRequest) (*Ride, error)
	ListAll(ctx context.Context) ([]Ride, error)
	SearchByDestination(ctx context.Context, destination string) ([]Ride, error)
	SearchByRoute(ctx context.Context, origin, destination string) ([]Ride, error)
	SearchByRouteAndMaxPrice(ctx context.Context, origin, destination, maxPrice string) ([]Ride, error)
	FindByPublisher(ctx context.Context, publisherID string) ([]Ride, error)
}
