package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carpool-service/internal/adapter/gin/middleware"
	domain "carpool-service/internal/domain/user"
	"carpool-service/internal/usecase/request"
	pkgerrors "carpool-service/pkg/errors"
)

// RequestHandler handles HTTP requests for the ride-request ledger
type RequestHandler struct {
	uc  request.Usecase
	log *zap.Logger
}

// NewRequestHandler creates a new RequestHandler instance
func NewRequestHandler(uc request.Usecase, log *zap.Logger) *RequestHandler {
	return &RequestHandler{uc: uc, log: log}
}

// SubmitRequest represents the HTTP request body for joining a ride.
// The requester defaults to the authenticated caller.
type SubmitRequest struct {
	RequesterName string `json:"requester_name"`
}

// RideRequestResponse represents the HTTP response for a ride request
type RideRequestResponse struct {
	ID            string `json:"id"`
	RideID        string `json:"ride_id"`
	RequesterID   string `json:"requester_id"`
	RequesterName string `json:"requester_name"`
}

func toRequestResponse(r request.RideRequest) RideRequestResponse {
	return RideRequestResponse{
		ID:            r.ID,
		RideID:        r.RideID,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
	}
}

// caller extracts the authenticated user placed by the auth middleware.
func caller(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(middleware.UserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

// Submit handles POST /v1/rides/:id/requests. Bearer-gated: the requester
// identity comes from the verified token, not the body.
func (h *RequestHandler) Submit(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		handleError(c, h.log, pkgerrors.NewUnauthorizedError("missing authenticated user"))
		return
	}

	var req SubmitRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Warn("invalid submit request body", zap.Error(err))
			handleError(c, h.log, pkgerrors.NewValidationError("", "request body is not valid JSON"))
			return
		}
	}

	name := req.RequesterName
	if name == "" {
		name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}

	created, err := h.uc.Submit(c.Request.Context(), request.SubmitRequest{
		RideID:        c.Param("id"),
		RequesterID:   u.UID,
		RequesterName: name,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Ride requested",
		"data":    toRequestResponse(*created),
	})
}

// ListByRide handles GET /v1/rides/:id/requests
func (h *RequestHandler) ListByRide(c *gin.Context) {
	requests, err := h.uc.ListByRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	out := make([]RideRequestResponse, len(requests))
	for i, r := range requests {
		out[i] = toRequestResponse(r)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    out,
	})
}

// Remove handles DELETE /v1/rides/:id/requests/:uid. Bearer-gated: the
// ledger allows removal only by the requester or the ride's publisher.
func (h *RequestHandler) Remove(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		handleError(c, h.log, pkgerrors.NewUnauthorizedError("missing authenticated user"))
		return
	}

	err := h.uc.Remove(c.Request.Context(), request.RemoveRequest{
		RideID:      c.Param("id"),
		RequesterID: c.Param("uid"),
		CallerUID:   u.UID,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ride request removed",
	})
}
