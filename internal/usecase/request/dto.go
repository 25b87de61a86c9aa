package request

// SubmitRequest represents the payload for requesting to join a ride.
type SubmitRequest struct {
	RideID        string `validate:"required"`
	RequesterID   string `validate:"required"`
	RequesterName string `validate:"required"`
}

// RemoveRequest represents the payload for withdrawing a ride request.
// CallerUID identifies the authenticated caller; removal is restricted to
// the original requester or the ride's publisher.
type RemoveRequest struct {
	RideID      string `validate:"required"`
	RequesterID string `validate:"required"`
	CallerUID   string `validate:"required"`
}

// RideRequest represents a ride request DTO for API responses.
type RideRequest struct {
	ID            string
	RideID        string
	RequesterID   string
	RequesterName string
}
