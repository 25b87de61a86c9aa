package request

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "carpool-service/internal/domain/request"
	pkgerrors "carpool-service/pkg/errors"
)

// Ledger implements the ride-request lifecycle: submission with duplicate
// prevention, listing, and authorized withdrawal. The (ride, requester)
// pair is checked first for a friendly duplicate error; the composite
// unique index in storage closes the remaining race window.
type Ledger struct {
	repo     Repository
	rides    RideReader
	log      *zap.Logger
	validate *validator.Validate
}

// NewLedger creates a new request Ledger.
func NewLedger(r Repository, rides RideReader, log *zap.Logger) *Ledger {
	return &Ledger{repo: r, rides: rides, log: log, validate: validator.New()}
}

func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

func toDTO(r domain.RideRequest) RideRequest {
	return RideRequest{
		ID:            r.ID,
		RideID:        r.RideID,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
	}
}

// Submit records a passenger's request to join a ride. The ledger does not
// verify the ride exists; the reference is soft and orphans are tolerated.
func (l *Ledger) Submit(ctx context.Context, in SubmitRequest) (*RideRequest, error) {
	l.log.Info("submitting ride request",
		zap.String("ride_id", in.RideID), zap.String("requester_id", in.RequesterID))

	if err := l.validate.Struct(in); err != nil {
		l.log.Warn("submit validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := l.repo.GetByPair(ctx, in.RideID, in.RequesterID)
	if err != nil {
		l.log.Error("failed to check existing ride request", zap.Error(err),
			zap.String("ride_id", in.RideID), zap.String("requester_id", in.RequesterID))
		return nil, pkgerrors.NewInternalError("unable to submit ride request", err)
	}
	if existing != nil {
		l.log.Warn("ride already requested",
			zap.String("ride_id", in.RideID), zap.String("requester_id", in.RequesterID))
		return nil, pkgerrors.NewDuplicateError("already requested")
	}

	rq := &domain.RideRequest{
		ID:            uuid.New().String(),
		RideID:        in.RideID,
		RequesterID:   in.RequesterID,
		RequesterName: in.RequesterName,
	}

	if err := l.repo.Create(ctx, rq); err != nil {
		if _, ok := err.(*pkgerrors.DuplicateError); ok {
			// Lost the race to a concurrent submit; the constraint caught it
			return nil, err
		}
		l.log.Error("failed to create ride request", zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to submit ride request", err)
	}

	dto := toDTO(*rq)
	return &dto, nil
}

// ListByRide returns every request against a ride. An empty slice is a
// valid outcome.
func (l *Ledger) ListByRide(ctx context.Context, rideID string) ([]RideRequest, error) {
	if rideID == "" {
		return nil, pkgerrors.NewValidationError("ride_id", "ride id is required")
	}

	requests, err := l.repo.ListByRide(ctx, rideID)
	if err != nil {
		l.log.Error("failed to list ride requests", zap.String("ride_id", rideID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to list ride requests", err)
	}

	out := make([]RideRequest, len(requests))
	for i, r := range requests {
		out[i] = toDTO(r)
	}
	return out, nil
}

// Remove withdraws a ride request. Only the original requester or the
// ride's publisher may remove it; when the ride record is gone the
// publisher cannot be resolved, so only the requester may remove.
func (l *Ledger) Remove(ctx context.Context, in RemoveRequest) error {
	l.log.Info("removing ride request",
		zap.String("ride_id", in.RideID), zap.String("requester_id", in.RequesterID),
		zap.String("caller", in.CallerUID))

	if err := l.validate.Struct(in); err != nil {
		l.log.Warn("remove validation failed", zap.Error(err))
		return formatValidationError(err)
	}

	existing, err := l.repo.GetByPair(ctx, in.RideID, in.RequesterID)
	if err != nil {
		l.log.Error("failed to look up ride request for removal", zap.Error(err),
			zap.String("ride_id", in.RideID), zap.String("requester_id", in.RequesterID))
		return pkgerrors.NewInternalError("unable to remove ride request", err)
	}
	if existing == nil {
		return pkgerrors.NewNotFoundError("ride request", "ride request not found")
	}

	if in.CallerUID != in.RequesterID {
		allowed := false
		rd, err := l.rides.GetByID(ctx, in.RideID)
		if err != nil {
			l.log.Error("failed to resolve ride for removal authorization",
				zap.String("ride_id", in.RideID), zap.Error(err))
			return pkgerrors.NewInternalError("unable to remove ride request", err)
		}
		if rd != nil && rd.PublisherID == in.CallerUID {
			allowed = true
		}
		if !allowed {
			l.log.Warn("unauthorized ride request removal",
				zap.String("ride_id", in.RideID), zap.String("caller", in.CallerUID))
			return pkgerrors.NewForbiddenError("only the requester or the ride publisher may remove a request")
		}
	}

	rows, err := l.repo.DeleteByPair(ctx, in.RideID, in.RequesterID)
	if err != nil {
		l.log.Error("failed to delete ride request", zap.Error(err),
			zap.String("ride_id", in.RideID), zap.String("requester_id", in.RequesterID))
		return pkgerrors.NewInternalError("unable to remove ride request", err)
	}
	if rows == 0 {
		// Removed concurrently between the check and the delete
		return pkgerrors.NewNotFoundError("ride request", "ride request not found")
	}

	return nil
}
