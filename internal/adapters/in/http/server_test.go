package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite

	assign     *MockAssignHandler
	reassign   *MockReassignHandler
	sweep      *MockSweepHandler
	partners   *MockAvailablePartnersHandler
	candidates *MockOrderCandidatesHandler
	observer   *fakeObserver

	echo *echo.Echo
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.assign = new(MockAssignHandler)
	s.reassign = new(MockReassignHandler)
	s.sweep = new(MockSweepHandler)
	s.partners = new(MockAvailablePartnersHandler)
	s.candidates = new(MockOrderCandidatesHandler)
	s.observer = &fakeObserver{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewServer(s.assign, s.reassign, s.sweep, s.partners, s.candidates, logger)

	doc, err := servers.GetSwagger()
	s.Require().NoError(err)

	s.echo, err = NewRouter(server, doc, RouterOptions{
		Logger:   logger,
		Observer: s.observer,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "# metrics\n")
		}),
	})
	s.Require().NoError(err)
}

func (s *ServerTestSuite) TearDownTest() {
	s.assign.AssertExpectations(s.T())
	s.reassign.AssertExpectations(s.T())
	s.sweep.AssertExpectations(s.T())
	s.partners.AssertExpectations(s.T())
	s.candidates.AssertExpectations(s.T())
}

func (s *ServerTestSuite) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func forOrder[T interface{ OrderID() kernel.UUID }](id kernel.UUID) any {
	return mock.MatchedBy(func(c T) bool { return c.OrderID().IsEqual(id) })
}

func (s *ServerTestSuite) TestDispatch_AssignReturnsPartner() {
	orderID := kernel.NewUUID()
	partnerID := kernel.NewUUID()
	s.assign.On("Handle", mock.Anything, forOrder[commands.AssignPartnerCommand](orderID)).
		Return(commands.AssignmentResult{PartnerID: &partnerID, Status: commands.StatusAssigned}, nil).Once()

	rec := s.do(http.MethodPost, dispatchPath, `{"action":"assign","order_id":"`+orderID.String()+`"}`, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := decode[map[string]any](s.T(), rec)
	s.Equal(partnerID.String(), body["assignedPartnerId"])
	s.Equal("assigned", body["status"])
}

func (s *ServerTestSuite) TestDispatch_ActionDefaultsToAssign() {
	orderID := kernel.NewUUID()
	s.assign.On("Handle", mock.Anything, forOrder[commands.AssignPartnerCommand](orderID)).
		Return(commands.AssignmentResult{Status: commands.StatusNoAvailablePartners}, nil).Once()

	rec := s.do(http.MethodPost, dispatchPath, `{"order_id":"`+orderID.String()+`"}`, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := decode[map[string]any](s.T(), rec)
	s.Contains(body, "assignedPartnerId")
	s.Nil(body["assignedPartnerId"])
	s.Equal("no_available_partners", body["status"])
}

func (s *ServerTestSuite) TestDispatch_Reassign() {
	orderID := kernel.NewUUID()
	partnerID := kernel.NewUUID()
	s.reassign.On("Handle", mock.Anything, forOrder[commands.ReassignPartnerCommand](orderID)).
		Return(commands.AssignmentResult{PartnerID: &partnerID, Status: commands.StatusStillAssigned}, nil).Once()

	rec := s.do(http.MethodPost, dispatchPath, `{"action":"reassign","order_id":"`+orderID.String()+`"}`, nil)

	s.Equal(http.StatusOK, rec.Code)
	body := decode[servers.AssignmentResponse](s.T(), rec)
	s.Require().NotNil(body.AssignedPartnerId)
	s.Equal(partnerID.String(), body.AssignedPartnerId.String())
	s.Equal("still_assigned", body.Status)
}

func (s *ServerTestSuite) TestDispatch_AssignPendingIgnoresOrderID() {
	s.sweep.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepResult{Processed: 3}, nil).Once()

	rec := s.do(http.MethodPost, dispatchPath, `{"action":"assignPending"}`, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"processed":3}`, rec.Body.String())
}

func (s *ServerTestSuite) TestDispatch_OrderIDIsRequired() {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing", body: `{"action":"assign"}`},
		{name: "empty", body: `{"action":"assign","order_id":""}`},
		{name: "blank reassign", body: `{"action":"reassign","order_id":"   "}`},
		{name: "no body", body: ""},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, dispatchPath, tt.body, nil)

			s.Equal(http.StatusBadRequest, rec.Code)
			body := decode[servers.Error](s.T(), rec)
			s.Equal(http.StatusBadRequest, body.Code)
			s.Equal("order_id is required", body.Message)
		})
	}
}

func (s *ServerTestSuite) TestDispatch_RejectsMalformedOrderID() {
	rec := s.do(http.MethodPost, dispatchPath, `{"action":"assign","order_id":"not-a-uuid"}`, nil)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("order_id must be a valid UUID", decode[servers.Error](s.T(), rec).Message)
}

func (s *ServerTestSuite) TestDispatch_RejectsUnknownAction() {
	rec := s.do(http.MethodPost, dispatchPath, `{"action":"teleport","order_id":"`+kernel.NewUUID().String()+`"}`, nil)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(http.StatusBadRequest, decode[servers.Error](s.T(), rec).Code)
}

func (s *ServerTestSuite) TestDispatch_RejectsMalformedJSON() {
	rec := s.do(http.MethodPost, dispatchPath, `{"action":`, nil)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestDispatch_InfrastructureFailureIsGeneric() {
	orderID := kernel.NewUUID()
	s.assign.On("Handle", mock.Anything, mock.Anything).
		Return(commands.AssignmentResult{}, errors.New("pq: connection refused")).Once()

	rec := s.do(http.MethodPost, dispatchPath, `{"order_id":"`+orderID.String()+`"}`, nil)

	s.Equal(http.StatusInternalServerError, rec.Code)
	body := decode[servers.Error](s.T(), rec)
	s.Equal(http.StatusInternalServerError, body.Code)
	s.Equal(internalErrorMessage, body.Message)
	s.NotContains(rec.Body.String(), "pq:")
}

func (s *ServerTestSuite) TestDispatch_PreflightHasNoBody() {
	rec := s.do(http.MethodOptions, dispatchPath, "", nil)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Empty(rec.Body.String())
}

func (s *ServerTestSuite) TestDispatch_CORSPreflight() {
	rec := s.do(http.MethodOptions, dispatchPath, "", map[string]string{
		echo.HeaderOrigin:                     "https://ops.example.com",
		echo.HeaderAccessControlRequestMethod: http.MethodPost,
	})

	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	s.Empty(rec.Body.String())
}

func (s *ServerTestSuite) TestDispatch_OtherMethodsNotAllowed() {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		s.Run(method, func() {
			rec := s.do(method, dispatchPath, "", nil)

			s.Equal(http.StatusMethodNotAllowed, rec.Code)
			s.Equal(http.StatusMethodNotAllowed, decode[servers.Error](s.T(), rec).Code)
		})
	}
}

func (s *ServerTestSuite) TestDispatch_AllowsAnyOrigin() {
	s.sweep.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepResult{}, nil).Once()

	rec := s.do(http.MethodPost, dispatchPath, `{"action":"assignPending"}`, map[string]string{
		echo.HeaderOrigin: "https://anywhere.example.org",
	})

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func (s *ServerTestSuite) TestGetAvailablePartners() {
	lastAssigned := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	known, err := kernel.NewCoordinates(40.7128, -74.0060)
	s.Require().NoError(err)

	partnerA := kernel.NewUUID()
	partnerB := kernel.NewUUID()
	s.partners.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetAvailablePartnersQueryResponse{
		{ID: partnerA, City: "New York", State: "NY", Coordinates: known, LastAssignedAt: &lastAssigned, ActiveDeliveries: 0},
		{ID: partnerB, City: "Albany", State: "NY", Coordinates: kernel.RestoreCoordinates(nil, nil), ActiveDeliveries: 2},
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/partners/available", "", nil)

	s.Equal(http.StatusOK, rec.Code)
	body := decode[[]servers.Partner](s.T(), rec)
	s.Require().Len(body, 2)

	s.Equal(partnerA.String(), body[0].Id.String())
	s.Require().NotNil(body[0].Latitude)
	s.InDelta(40.7128, *body[0].Latitude, 1e-9)
	s.Require().NotNil(body[0].LastAssignedAt)
	s.True(lastAssigned.Equal(*body[0].LastAssignedAt))

	s.Equal(partnerB.String(), body[1].Id.String())
	s.Nil(body[1].Latitude)
	s.Nil(body[1].Longitude)
	s.Nil(body[1].LastAssignedAt)
	s.Equal(2, body[1].ActiveDeliveries)
}

func (s *ServerTestSuite) TestGetAvailablePartners_Failure() {
	s.partners.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	rec := s.do(http.MethodGet, "/api/v1/partners/available", "", nil)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(internalErrorMessage, decode[servers.Error](s.T(), rec).Message)
}

func (s *ServerTestSuite) TestGetOrderCandidates() {
	orderID := kernel.NewUUID()
	near := kernel.NewUUID()
	unknown := kernel.NewUUID()
	s.candidates.On("Handle", mock.Anything, forOrder[queries.GetOrderCandidatesQuery](orderID)).
		Return([]services.Candidate{
			{PartnerID: near, RankGroup: services.RankSameCity, DistanceKm: 1.5},
			{PartnerID: unknown, RankGroup: services.RankSameCity, ActiveDeliveries: 1, DistanceKm: math.Inf(1)},
		}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/candidates", "", nil)

	s.Equal(http.StatusOK, rec.Code)
	body := decode[[]servers.Candidate](s.T(), rec)
	s.Require().Len(body, 2)
	s.Equal(near.String(), body[0].PartnerId.String())
	s.Require().NotNil(body[0].DistanceKm)
	s.InDelta(1.5, *body[0].DistanceKm, 1e-9)
	s.Equal(unknown.String(), body[1].PartnerId.String())
	s.Nil(body[1].DistanceKm)
}

func (s *ServerTestSuite) TestGetOrderCandidates_UnknownOrder() {
	orderID := kernel.NewUUID()
	s.candidates.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/candidates", "", nil)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(http.StatusNotFound, decode[servers.Error](s.T(), rec).Code)
}

func (s *ServerTestSuite) TestGetOrderCandidates_MalformedID() {
	rec := s.do(http.MethodGet, "/api/v1/orders/nope/candidates", "", nil)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(http.StatusBadRequest, decode[servers.Error](s.T(), rec).Code)
}

func (s *ServerTestSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())

	rec = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "# metrics")
}

func (s *ServerTestSuite) TestObservability_UsesRoutePattern() {
	orderID := kernel.NewUUID()
	s.candidates.On("Handle", mock.Anything, mock.Anything).Return([]services.Candidate{}, nil).Once()

	s.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/candidates", "", nil)
	s.do(http.MethodGet, dispatchPath, "", nil)

	s.Require().Len(s.observer.requests, 2)
	s.Equal(recordedRequest{
		method: http.MethodGet,
		path:   "/api/v1/orders/:orderId/candidates",
		status: http.StatusOK,
	}, s.observer.requests[0])
	s.Equal(recordedRequest{
		method: http.MethodGet,
		path:   dispatchPath,
		status: http.StatusMethodNotAllowed,
	}, s.observer.requests[1])
}

func TestParseOrderID(t *testing.T) {
	id := kernel.NewUUID()
	raw := "  " + id.String() + " "

	got, message := parseOrderID(&raw)
	assert.Empty(t, message)
	assert.True(t, got.IsEqual(id))

	_, message = parseOrderID(nil)
	assert.Equal(t, "order_id is required", message)

	nilUUID := "00000000-0000-0000-0000-000000000000"
	_, message = parseOrderID(&nilUUID)
	assert.Equal(t, "order_id must be a valid UUID", message)
}

func TestErrorHandler_RendersAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "http error", err: echo.NewHTTPError(http.StatusNotFound, "Not Found"), code: http.StatusNotFound, message: "Not Found"},
		{name: "http error without text", err: echo.NewHTTPError(http.StatusBadRequest, 42), code: http.StatusBadRequest, message: "Bad Request"},
		{name: "plain error", err: errors.New("pq: connection refused"), code: http.StatusInternalServerError, message: internalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			var handler echo.HTTPErrorHandler = ErrorHandler
			handler(tt.err, c)

			assert.Equal(t, tt.code, rec.Code)
			body := decode[servers.Error](t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	ErrorHandler(echo.NewHTTPError(http.StatusTeapot, "late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
