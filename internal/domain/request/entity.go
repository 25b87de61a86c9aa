package request

// RideRequest represents a passenger's request to join a specific ride.
// The (RideID, RequesterID) pair is unique: a requester holds at most one
// outstanding request per ride. RequesterName is a denormalized display copy,
// not a live join against the user record.
type RideRequest struct {
	ID            string // Generated UUID
	RideID        string // Ride being requested, soft reference
	RequesterID   string // UID of the requesting user, soft reference
	RequesterName string // Display name captured at request time
}
