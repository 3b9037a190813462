package http

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
)

type MockAssignHandler struct {
	mock.Mock
}

func (m *MockAssignHandler) Handle(
	ctx context.Context,
	command commands.AssignPartnerCommand,
) (commands.AssignmentResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.AssignmentResult), args.Error(1)
}

type MockReassignHandler struct {
	mock.Mock
}

func (m *MockReassignHandler) Handle(
	ctx context.Context,
	command commands.ReassignPartnerCommand,
) (commands.AssignmentResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.AssignmentResult), args.Error(1)
}

type MockSweepHandler struct {
	mock.Mock
}

func (m *MockSweepHandler) Handle(
	ctx context.Context,
	command commands.SweepPendingOrdersCommand,
) (commands.SweepResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.SweepResult), args.Error(1)
}

type MockAvailablePartnersHandler struct {
	mock.Mock
}

func (m *MockAvailablePartnersHandler) Handle(
	ctx context.Context,
	query queries.GetAvailablePartnersQuery,
) ([]queries.GetAvailablePartnersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetAvailablePartnersQueryResponse), args.Error(1)
}

type MockOrderCandidatesHandler struct {
	mock.Mock
}

func (m *MockOrderCandidatesHandler) Handle(
	ctx context.Context,
	query queries.GetOrderCandidatesQuery,
) ([]services.Candidate, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.Candidate), args.Error(1)
}

type recordedRequest struct {
	method string
	path   string
	status int
}

type fakeObserver struct {
	requests []recordedRequest
}

func (f *fakeObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method: method, path: path, status: status})
}
