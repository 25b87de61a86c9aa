package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carpool-service/internal/usecase/ride"
	pkgerrors "carpool-service/pkg/errors"
)

// RideHandler handles HTTP requests for ride publication and search
type RideHandler struct {
	uc  ride.Usecase
	log *zap.Logger
}

// NewRideHandler creates a new RideHandler instance
func NewRideHandler(uc ride.Usecase, log *zap.Logger) *RideHandler {
	return &RideHandler{uc: uc, log: log}
}

// PublishRequest represents the HTTP request body for publishing a ride.
// Field names follow the reference client contract.
type PublishRequest struct {
	PublisherID string  `json:"publisher_id"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Seats       int     `json:"no_of_pass"`
	Date        string  `json:"doj"`
	Price       float64 `json:"price"`
}

// RideResponse represents the HTTP response for a ride
type RideResponse struct {
	ID          string  `json:"id"`
	PublisherID string  `json:"publisher_id"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Seats       int     `json:"no_of_pass"`
	Date        string  `json:"doj"`
	Price       float64 `json:"price"`
}

func toRideResponse(r ride.Ride) RideResponse {
	return RideResponse{
		ID:          r.ID,
		PublisherID: r.PublisherID,
		From:        r.Origin,
		To:          r.Destination,
		Seats:       r.Seats,
		Date:        r.Date,
		Price:       r.Price,
	}
}

func toRideResponses(rides []ride.Ride) []RideResponse {
	out := make([]RideResponse, len(rides))
	for i, r := range rides {
		out[i] = toRideResponse(r)
	}
	return out
}

// respondRides wraps a (possibly empty) collection in the success
// envelope. An empty match set is 200 with an empty list, never 404; 404
// is reserved for addressing a specific resource that does not exist.
func respondRides(c *gin.Context, rides []ride.Ride) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toRideResponses(rides),
	})
}

// Publish handles POST /v1/rides
func (h *RideHandler) Publish(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid publish request body", zap.Error(err))
		handleError(c, h.log, pkgerrors.NewValidationError("", "request body is not valid JSON"))
		return
	}

	created, err := h.uc.Publish(c.Request.Context(), ride.PublishRequest{
		PublisherID: req.PublisherID,
		Origin:      req.From,
		Destination: req.To,
		Seats:       req.Seats,
		Date:        req.Date,
		Price:       req.Price,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Ride added successfully",
		"data":    toRideResponse(*created),
	})
}

// ListAll handles GET /v1/rides
func (h *RideHandler) ListAll(c *gin.Context) {
	rides, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	respondRides(c, rides)
}

// Search handles GET /v1/rides/search. The query parameters select the
// search variant: to= alone matches by destination, from=&to= by route,
// and from=&to=&max_price= adds the inclusive price ceiling.
func (h *RideHandler) Search(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	maxPrice := c.Query("max_price")

	var (
		rides []ride.Ride
		err   error
	)
	switch {
	case maxPrice != "":
		rides, err = h.uc.SearchByRouteAndMaxPrice(c.Request.Context(), from, to, maxPrice)
	case from != "":
		rides, err = h.uc.SearchByRoute(c.Request.Context(), from, to)
	case to != "":
		rides, err = h.uc.SearchByDestination(c.Request.Context(), to)
	default:
		err = pkgerrors.NewValidationError("", "at least a destination is required")
	}
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	respondRides(c, rides)
}

// ByPublisher handles GET /v1/rides/publisher/:uid
func (h *RideHandler) ByPublisher(c *gin.Context) {
	rides, err := h.uc.FindByPublisher(c.Request.Context(), c.Param("uid"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	respondRides(c, rides)
}
