package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/catalog"
	"engage/internal/core/domain/model/chat"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/domain/model/specialist"
	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

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

type MockSpecialistRepository struct{ mock.Mock }

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

type MockCatalogRepository struct{ mock.Mock }

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

type MockChannelRepository struct{ mock.Mock }

func (m *MockChannelRepository) FindOrCreate(ctx context.Context, candidate *chat.Channel) (*chat.Channel, error) {
	args := m.Called(ctx, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Channel), args.Error(1)
}

func (m *MockChannelRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*chat.Channel, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Channel), args.Error(1)
}

func (m *MockChannelRepository) Update(ctx context.Context, channel *chat.Channel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Record(ctx context.Context, n *notification.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SpecialistRepository() ports.SpecialistRepository {
	args := m.Called()
	return args.Get(0).(ports.SpecialistRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

func (m *MockUoW) ChannelRepository() ports.ChannelRepository {
	args := m.Called()
	return args.Get(0).(ports.ChannelRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSpecialistUoWFactory struct{ mock.Mock }

func (m *MockSpecialistUoWFactory) Create() commands.SpecialistUoW {
	args := m.Called()
	return args.Get(0).(commands.SpecialistUoW)
}

type MockSubscriptionProvider struct{ mock.Mock }

func (m *MockSubscriptionProvider) GetSubscription(ctx context.Context, specialistID kernel.UUID) (services.Subscription, error) {
	args := m.Called(ctx, specialistID)
	return args.Get(0).(services.Subscription), args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (kernel.Address, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(kernel.Address), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
