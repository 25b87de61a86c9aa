package request

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "carpool-service/internal/domain/request"
	ridedomain "carpool-service/internal/domain/ride"
	pkgerrors "carpool-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, r *domain.RideRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRepository) GetByPair(ctx context.Context, rideID, requesterID string) (*domain.RideRequest, error) {
	args := m.Called(ctx, rideID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RideRequest), args.Error(1)
}

func (m *MockRepository) ListByRide(ctx context.Context, rideID string) ([]domain.RideRequest, error) {
	args := m.Called(ctx, rideID)
	return args.Get(0).([]domain.RideRequest), args.Error(1)
}

func (m *MockRepository) DeleteByPair(ctx context.Context, rideID, requesterID string) (int64, error) {
	args := m.Called(ctx, rideID, requesterID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRideReader is a mock implementation of the RideReader interface
type MockRideReader struct {
	mock.Mock
}

func (m *MockRideReader) GetByID(ctx context.Context, id string) (*ridedomain.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ridedomain.Ride), args.Error(1)
}

func setupTestLedger(t *testing.T) (*Ledger, *MockRepository, *MockRideReader) {
	mockRepo := new(MockRepository)
	mockRides := new(MockRideReader)
	logger := zaptest.NewLogger(t)
	return NewLedger(mockRepo, mockRides, logger), mockRepo, mockRides
}

// ==================== SUBMIT TESTS ====================

func TestSubmit_Success(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	req := SubmitRequest{
		RideID:        "ride-1",
		RequesterID:   "alice01",
		RequesterName: "Alice Smith",
	}

	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.RideRequest) bool {
		return r.ID != "" &&
			r.RideID == "ride-1" &&
			r.RequesterID == "alice01" &&
			r.RequesterName == "Alice Smith"
	})).Return(nil)

	resp, err := l.Submit(ctx, req)

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "ride-1", resp.RideID)

	mockRepo.AssertExpectations(t)
}

func TestSubmit_Duplicate(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	req := SubmitRequest{
		RideID:        "ride-1",
		RequesterID:   "alice01",
		RequesterName: "Alice Smith",
	}

	existing := &domain.RideRequest{ID: "rq-1", RideID: "ride-1", RequesterID: "alice01"}
	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(existing, nil)

	resp, err := l.Submit(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "already requested", err.Error())

	var duplicate *pkgerrors.DuplicateError
	assert.ErrorAs(t, err, &duplicate)

	mockRepo.AssertExpectations(t)
}

func TestSubmit_DuplicateFromStorage(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	req := SubmitRequest{
		RideID:        "ride-1",
		RequesterID:   "alice01",
		RequesterName: "Alice Smith",
	}

	// The pre-check misses but a concurrent submit wins the unique index.
	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.Anything).
		Return(pkgerrors.NewDuplicateError("already requested"))

	resp, err := l.Submit(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)

	var duplicate *pkgerrors.DuplicateError
	assert.ErrorAs(t, err, &duplicate)

	mockRepo.AssertExpectations(t)
}

func TestSubmit_ValidationError(t *testing.T) {
	l, _, _ := setupTestLedger(t)
	ctx := context.Background()

	resp, err := l.Submit(ctx, SubmitRequest{RideID: "ride-1"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "RequesterID is required")
	assert.Contains(t, err.Error(), "RequesterName is required")
}

// ==================== LIST TESTS ====================

func TestListByRide_Success(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	stored := []domain.RideRequest{
		{ID: "rq-1", RideID: "ride-1", RequesterID: "alice01", RequesterName: "Alice Smith"},
		{ID: "rq-2", RideID: "ride-1", RequesterID: "bob02", RequesterName: "Bob Jones"},
	}

	mockRepo.On("ListByRide", ctx, "ride-1").Return(stored, nil)

	requests, err := l.ListByRide(ctx, "ride-1")

	assert.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "alice01", requests[0].RequesterID)
	assert.Equal(t, "bob02", requests[1].RequesterID)

	mockRepo.AssertExpectations(t)
}

func TestListByRide_Empty(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	mockRepo.On("ListByRide", ctx, "ride-1").Return([]domain.RideRequest{}, nil)

	requests, err := l.ListByRide(ctx, "ride-1")

	assert.NoError(t, err)
	assert.Empty(t, requests)

	mockRepo.AssertExpectations(t)
}

func TestListByRide_MissingID(t *testing.T) {
	l, _, _ := setupTestLedger(t)
	ctx := context.Background()

	requests, err := l.ListByRide(ctx, "")

	assert.Error(t, err)
	assert.Nil(t, requests)
}

// ==================== REMOVE TESTS ====================

func TestRemove_ByRequester(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	existing := &domain.RideRequest{ID: "rq-1", RideID: "ride-1", RequesterID: "alice01"}
	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(existing, nil)
	mockRepo.On("DeleteByPair", ctx, "ride-1", "alice01").Return(int64(1), nil)

	err := l.Remove(ctx, RemoveRequest{
		RideID:      "ride-1",
		RequesterID: "alice01",
		CallerUID:   "alice01",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestRemove_ByPublisher(t *testing.T) {
	l, mockRepo, mockRides := setupTestLedger(t)
	ctx := context.Background()

	existing := &domain.RideRequest{ID: "rq-1", RideID: "ride-1", RequesterID: "alice01"}
	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(existing, nil)
	mockRides.On("GetByID", ctx, "ride-1").
		Return(&ridedomain.Ride{ID: "ride-1", PublisherID: "driver01"}, nil)
	mockRepo.On("DeleteByPair", ctx, "ride-1", "alice01").Return(int64(1), nil)

	err := l.Remove(ctx, RemoveRequest{
		RideID:      "ride-1",
		RequesterID: "alice01",
		CallerUID:   "driver01",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockRides.AssertExpectations(t)
}

func TestRemove_ForbiddenForStranger(t *testing.T) {
	l, mockRepo, mockRides := setupTestLedger(t)
	ctx := context.Background()

	existing := &domain.RideRequest{ID: "rq-1", RideID: "ride-1", RequesterID: "alice01"}
	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(existing, nil)
	mockRides.On("GetByID", ctx, "ride-1").
		Return(&ridedomain.Ride{ID: "ride-1", PublisherID: "driver01"}, nil)

	err := l.Remove(ctx, RemoveRequest{
		RideID:      "ride-1",
		RequesterID: "alice01",
		CallerUID:   "mallory",
	})

	assert.Error(t, err)

	var forbidden *pkgerrors.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)

	mockRepo.AssertExpectations(t)
	mockRides.AssertExpectations(t)
}

func TestRemove_OrphanedRideOnlyRequesterMayRemove(t *testing.T) {
	l, mockRepo, mockRides := setupTestLedger(t)
	ctx := context.Background()

	existing := &domain.RideRequest{ID: "rq-1", RideID: "ride-1", RequesterID: "alice01"}
	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(existing, nil)
	// The ride record is gone, so the publisher cannot be resolved.
	mockRides.On("GetByID", ctx, "ride-1").Return(nil, nil)

	err := l.Remove(ctx, RemoveRequest{
		RideID:      "ride-1",
		RequesterID: "alice01",
		CallerUID:   "driver01",
	})

	assert.Error(t, err)

	var forbidden *pkgerrors.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)

	mockRepo.AssertExpectations(t)
	mockRides.AssertExpectations(t)
}

func TestRemove_NotFound(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(nil, nil)

	err := l.Remove(ctx, RemoveRequest{
		RideID:      "ride-1",
		RequesterID: "alice01",
		CallerUID:   "alice01",
	})

	assert.Error(t, err)

	var notFound *pkgerrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	mockRepo.AssertExpectations(t)
}

func TestRemove_ConcurrentRemoval(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	existing := &domain.RideRequest{ID: "rq-1", RideID: "ride-1", RequesterID: "alice01"}
	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").Return(existing, nil)
	// Deleted between the lookup and the delete.
	mockRepo.On("DeleteByPair", ctx, "ride-1", "alice01").Return(int64(0), nil)

	err := l.Remove(ctx, RemoveRequest{
		RideID:      "ride-1",
		RequesterID: "alice01",
		CallerUID:   "alice01",
	})

	assert.Error(t, err)

	var notFound *pkgerrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	mockRepo.AssertExpectations(t)
}

func TestRemove_RepositoryError(t *testing.T) {
	l, mockRepo, _ := setupTestLedger(t)
	ctx := context.Background()

	mockRepo.On("GetByPair", ctx, "ride-1", "alice01").
		Return(nil, errors.New("connection refused"))

	err := l.Remove(ctx, RemoveRequest{
		RideID:      "ride-1",
		RequesterID: "alice01",
		CallerUID:   "alice01",
	})

	assert.Error(t, err)

	var internal *pkgerrors.InternalError
	assert.ErrorAs(t, err, &internal)

	mockRepo.AssertExpectations(t)
}
