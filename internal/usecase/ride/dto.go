package ride

// PublishRequest represents the payload for publishing a ride offer.
// All six fields are required. Publisher existence is deliberately not
// checked: the reference is soft and the catalog tolerates orphans.
type PublishRequest struct {
	PublisherID string  `validate:"required"`
	Origin      string  `validate:"required"`
	Destination string  `validate:"required"`
	Seats       int     `validate:"required"`
	Date        string  `validate:"required"`
	Price       float64 `validate:"required"`
}

// Ride represents a ride DTO for API responses.
type Ride struct {
	ID          string
	PublisherID string
	Origin      string
	Destination string
	Seats       int
	Date        string
	Price       float64
}
