package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"carpool-service/internal/domain/request"
	pkgerrors "carpool-service/pkg/errors"
)

func testRequest(id, rideID, requesterID string) *request.RideRequest {
	return &request.RideRequest{
		ID:            id,
		RideID:        rideID,
		RequesterID:   requesterID,
		RequesterName: "Alice Smith",
	}
}

func TestRequestRepoPG_CreateAndGetByPair(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewRequestRepoPG(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRequest("rq-1", "ride-1", "alice01")))

	got, err := repo.GetByPair(ctx, "ride-1", "alice01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rq-1", got.ID)
	assert.Equal(t, "Alice Smith", got.RequesterName)

	miss, err := repo.GetByPair(ctx, "ride-1", "bob02")
	assert.NoError(t, err)
	assert.Nil(t, miss)
}

func TestRequestRepoPG_Create_DuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewRequestRepoPG(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRequest("rq-1", "ride-1", "alice01")))

	// Same pair with a fresh ID still violates the composite index.
	err := repo.Create(ctx, testRequest("rq-2", "ride-1", "alice01"))
	require.Error(t, err)

	var duplicate *pkgerrors.DuplicateError
	assert.ErrorAs(t, err, &duplicate)
}

func TestRequestRepoPG_SamePairAcrossRides(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewRequestRepoPG(db, logger)
	ctx := context.Background()

	// The same requester may request different rides.
	require.NoError(t, repo.Create(ctx, testRequest("rq-1", "ride-1", "alice01")))
	require.NoError(t, repo.Create(ctx, testRequest("rq-2", "ride-2", "alice01")))

	// And the same ride may carry requests from different passengers.
	require.NoError(t, repo.Create(ctx, testRequest("rq-3", "ride-1", "bob02")))
}

func TestRequestRepoPG_ListByRide(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewRequestRepoPG(db, logger)
	ctx := context.Background()

	requests, err := repo.ListByRide(ctx, "ride-1")
	require.NoError(t, err)
	assert.Empty(t, requests)

	require.NoError(t, repo.Create(ctx, testRequest("rq-1", "ride-1", "alice01")))
	require.NoError(t, repo.Create(ctx, testRequest("rq-2", "ride-1", "bob02")))
	require.NoError(t, repo.Create(ctx, testRequest("rq-3", "ride-2", "carol03")))

	requests, err = repo.ListByRide(ctx, "ride-1")
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}

func TestRequestRepoPG_DeleteByPair(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	repo := NewRequestRepoPG(db, logger)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRequest("rq-1", "ride-1", "alice01")))

	rows, err := repo.DeleteByPair(ctx, "ride-1", "alice01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// A second delete reports zero rows, not an error.
	rows, err = repo.DeleteByPair(ctx, "ride-1", "alice01")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	got, err := repo.GetByPair(ctx, "ride-1", "alice01")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
