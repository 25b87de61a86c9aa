package ride

// Ride represents a published trip offer.
// PublisherID references a user by UID. It is a soft reference: the catalog
// tolerates dangling publishers and never cascades deletes.
type Ride struct {
	ID          string  // Generated UUID
	PublisherID string  // UID of the publishing user
	Origin      string  // Stored upper-cased so searches are case-insensitive
	Destination string  // Stored upper-cased so searches are case-insensitive
	Seats       int     // Seats offered
	Date        string  // Date of journey
	Price       float64 // Asking price per seat
}
