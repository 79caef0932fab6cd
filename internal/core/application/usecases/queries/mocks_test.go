package queries_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/catalog"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/domain/model/specialist"
	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
)

// mockAggregateTracker satisfies the repository tracker without recording.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(kernel.UUID, any) {}

// MockOrderRepository is a mock implementation of ports.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithStatusGuard(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetEvents(ctx context.Context, orderID kernel.UUID) ([]order.Event, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Event), args.Error(1)
}

func (m *MockOrderRepository) GetExpiredPending(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByParticipant(ctx context.Context, participantID kernel.UUID, closed bool, limit, offset int) ([]*order.Order, error) {
	args := m.Called(ctx, participantID, closed, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AddRating(ctx context.Context, rating *order.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

// MockSpecialistRepository is a mock implementation of ports.SpecialistRepository.
type MockSpecialistRepository struct {
	mock.Mock
}

func (m *MockSpecialistRepository) Add(ctx context.Context, aggregate *specialist.Specialist) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockSpecialistRepository) Update(ctx context.Context, aggregate *specialist.Specialist) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockSpecialistRepository) Get(ctx context.Context, id kernel.UUID) (*specialist.Specialist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*specialist.Specialist), args.Error(1)
}

func (m *MockSpecialistRepository) GetPage(ctx context.Context, limit, offset int) ([]*specialist.Specialist, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*specialist.Specialist), args.Error(1)
}

func (m *MockSpecialistRepository) FindCandidatesWithin(ctx context.Context, box kernel.BoundingBox, categoryID int64) ([]services.Candidate, error) {
	args := m.Called(ctx, box, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.Candidate), args.Error(1)
}

func (m *MockSpecialistRepository) UpsertSearchIndex(ctx context.Context, entry ports.SearchIndexEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSpecialistRepository) ApplyRating(ctx context.Context, specialistID kernel.UUID, score int) error {
	args := m.Called(ctx, specialistID, score)
	return args.Error(0)
}

// MockCatalogRepository is a mock implementation of ports.CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetCategory(ctx context.Context, id int64) (catalog.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Category), args.Error(1)
}

func (m *MockCatalogRepository) GetServiceEntry(ctx context.Context, id kernel.UUID) (catalog.ServiceEntry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.ServiceEntry), args.Error(1)
}

func (m *MockCatalogRepository) FindDefaultServiceEntry(ctx context.Context, categoryID int64) (catalog.ServiceEntry, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(catalog.ServiceEntry), args.Error(1)
}

func (m *MockCatalogRepository) AddServiceEntry(ctx context.Context, entry catalog.ServiceEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockDeadlineSweeper is a mock implementation of queries.DeadlineSweeper.
type MockDeadlineSweeper struct {
	mock.Mock
}

func (m *MockDeadlineSweeper) Handle(ctx context.Context, cmd commands.SweepExpiredCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
