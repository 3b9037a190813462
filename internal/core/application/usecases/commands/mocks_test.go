package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AssignPartner(
	ctx context.Context,
	orderID, partnerID kernel.UUID,
	at time.Time,
) (*kernel.UUID, error) {
	args := m.Called(ctx, orderID, partnerID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.UUID), args.Error(1)
}

func (m *MockOrderRepository) MarkPendingAssignment(ctx context.Context, orderID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, orderID, at)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllAwaitingAssignment(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveDeliveries(
	ctx context.Context,
	partnerIDs []kernel.UUID,
) (map[kernel.UUID]int, error) {
	args := m.Called(ctx, partnerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) GetAllAvailable(ctx context.Context) ([]partner.AvailablePartner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.AvailablePartner), args.Error(1)
}

func (m *MockPartnerRepository) TouchLastAssigned(ctx context.Context, partnerID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, partnerID, at)
	return args.Error(0)
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

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
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

type MockAssigner struct{ mock.Mock }

func (m *MockAssigner) Handle(ctx context.Context, cmd commands.AssignPartnerCommand) (commands.AssignmentResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AssignmentResult), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishPartnerAssigned(ctx context.Context, event ports.PartnerAssigned) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObserveAssignment(status string) {
	m.Called(status)
}

func (m *MockObserver) ObserveSweep(processed int) {
	m.Called(processed)
}

func errs404(id kernel.UUID) error {
	return errs.NewObjectNotFoundError("order", id.String())
}
