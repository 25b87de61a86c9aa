package ride

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "carpool-service/internal/domain/ride"
	pkgerrors "carpool-service/pkg/errors"
	"carpool-service/pkg/security"
)

// Catalog implements ride publication and multi-criterion search.
// Searches are the load-bearing logic: exact per-field matching, stored
// uppercase for case-insensitivity, and an inclusive price ceiling. An
// empty result set is always a valid outcome, never an error.
type Catalog struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// NewCatalog creates a new ride Catalog.
func NewCatalog(r Repository, log *zap.Logger) *Catalog {
	return &Catalog{repo: r, log: log, validate: validator.New()}
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

func toDTO(r domain.Ride) Ride {
	return Ride{
		ID:          r.ID,
		PublisherID: r.PublisherID,
		Origin:      r.Origin,
		Destination: r.Destination,
		Seats:       r.Seats,
		Date:        r.Date,
		Price:       r.Price,
	}
}

func toDTOs(rides []domain.Ride) []Ride {
	out := make([]Ride, len(rides))
	for i, r := range rides {
		out[i] = toDTO(r)
	}
	return out
}

// sanitizeTerm screens a search input and upper-cases it for matching
// against the stored labels.
func sanitizeTerm(term string) (string, error) {
	cleaned, err := security.ValidateSearchTerm(term)
	if err != nil {
		return "", pkgerrors.NewValidationError("", err.Error())
	}
	return strings.ToUpper(cleaned), nil
}

// Publish validates and stores a new ride offer. Origin and destination
// are upper-cased before storage.
func (c *Catalog) Publish(ctx context.Context, in PublishRequest) (*Ride, error) {
	c.log.Info("publishing ride",
		zap.String("publisher", in.PublisherID),
		zap.String("origin", in.Origin),
		zap.String("destination", in.Destination),
	)

	if err := c.validate.Struct(in); err != nil {
		c.log.Warn("publish validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	rd := &domain.Ride{
		ID:          uuid.New().String(),
		PublisherID: in.PublisherID,
		Origin:      strings.ToUpper(in.Origin),
		Destination: strings.ToUpper(in.Destination),
		Seats:       in.Seats,
		Date:        in.Date,
		Price:       in.Price,
	}

	if err := c.repo.Create(ctx, rd); err != nil {
		c.log.Error("failed to create ride", zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to publish ride", err)
	}

	dto := toDTO(*rd)
	return &dto, nil
}

// ListAll returns every stored ride.
func (c *Catalog) ListAll(ctx context.Context) ([]Ride, error) {
	rides, err := c.repo.ListAll(ctx)
	if err != nil {
		c.log.Error("failed to list rides", zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to list rides", err)
	}
	return toDTOs(rides), nil
}

// SearchByDestination returns rides whose destination matches the input,
// case-insensitively.
func (c *Catalog) SearchByDestination(ctx context.Context, destination string) ([]Ride, error) {
	dest, err := sanitizeTerm(destination)
	if err != nil {
		return nil, err
	}
	if dest == "" {
		return nil, pkgerrors.NewValidationError("destination", "destination is required")
	}

	rides, err := c.repo.FindByDestination(ctx, dest)
	if err != nil {
		c.log.Error("failed to search rides by destination", zap.String("destination", dest), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to search rides", err)
	}
	return toDTOs(rides), nil
}

// SearchByRoute returns rides matching both origin and destination. The
// two fields are compared independently against their respective inputs.
func (c *Catalog) SearchByRoute(ctx context.Context, origin, destination string) ([]Ride, error) {
	from, err := sanitizeTerm(origin)
	if err != nil {
		return nil, err
	}
	to, err := sanitizeTerm(destination)
	if err != nil {
		return nil, err
	}
	if from == "" || to == "" {
		return nil, pkgerrors.NewValidationError("", "origin and destination are required")
	}

	rides, err := c.repo.FindByRoute(ctx, from, to)
	if err != nil {
		c.log.Error("failed to search rides by route",
			zap.String("origin", from), zap.String("destination", to), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to search rides", err)
	}
	return toDTOs(rides), nil
}

// SearchByRouteAndMaxPrice returns rides matching the route with price in
// the closed interval [0, maxPrice]. maxPrice must parse as a non-negative
// number.
func (c *Catalog) SearchByRouteAndMaxPrice(ctx context.Context, origin, destination, maxPrice string) ([]Ride, error) {
	from, err := sanitizeTerm(origin)
	if err != nil {
		return nil, err
	}
	to, err := sanitizeTerm(destination)
	if err != nil {
		return nil, err
	}
	if from == "" || to == "" {
		return nil, pkgerrors.NewValidationError("", "origin and destination are required")
	}

	max, err := strconv.ParseFloat(maxPrice, 64)
	if err != nil || max < 0 {
		c.log.Warn("invalid max price", zap.String("max_price", maxPrice))
		return nil, pkgerrors.NewValidationError("max_price", "max price must be a non-negative number")
	}

	rides, err := c.repo.FindByRouteMaxPrice(ctx, from, to, max)
	if err != nil {
		c.log.Error("failed to search rides by route and price",
			zap.String("origin", from), zap.String("destination", to), zap.Float64("max_price", max), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to search rides", err)
	}
	return toDTOs(rides), nil
}

// FindByPublisher returns rides published by the given UID.
func (c *Catalog) FindByPublisher(ctx context.Context, publisherID string) ([]Ride, error) {
	if publisherID == "" {
		return nil, pkgerrors.NewValidationError("publisher_id", "publisher id is required")
	}

	rides, err := c.repo.FindByPublisher(ctx, publisherID)
	if err != nil {
		c.log.Error("failed to find rides by publisher", zap.String("publisher", publisherID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("unable to list publisher rides", err)
	}
	return toDTOs(rides), nil
}
