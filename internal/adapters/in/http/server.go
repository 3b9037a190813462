package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const internalErrorMessage = "Internal server error"

type (
	AssignHandler interface {
		Handle(ctx context.Context, command commands.AssignPartnerCommand) (commands.AssignmentResult, error)
	}
	ReassignHandler interface {
		Handle(ctx context.Context, command commands.ReassignPartnerCommand) (commands.AssignmentResult, error)
	}
	SweepHandler interface {
		Handle(ctx context.Context, command commands.SweepPendingOrdersCommand) (commands.SweepResult, error)
	}
	AvailablePartnersHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetAvailablePartnersQuery,
		) ([]queries.GetAvailablePartnersQueryResponse, error)
	}
	OrderCandidatesHandler interface {
		Handle(ctx context.Context, query queries.GetOrderCandidatesQuery) ([]services.Candidate, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignHandler   AssignHandler
	reassignHandler ReassignHandler
	sweepHandler    SweepHandler

	// Query handlers
	availablePartnersHandler AvailablePartnersHandler
	orderCandidatesHandler   OrderCandidatesHandler

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignHandler AssignHandler,
	reassignHandler ReassignHandler,
	sweepHandler SweepHandler,
	availablePartnersHandler AvailablePartnersHandler,
	orderCandidatesHandler OrderCandidatesHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		assignHandler:            assignHandler,
		reassignHandler:          reassignHandler,
		sweepHandler:             sweepHandler,
		availablePartnersHandler: availablePartnersHandler,
		orderCandidatesHandler:   orderCandidatesHandler,
		logger:                   logger.With("component", "http-server"),
	}
}

// Dispatch handles POST /api/v1/dispatch.
//
//	@Summary	Run an assignment action
//	@Tags		dispatch
//	@Accept		json
//	@Produce	json
//	@Param		request	body		servers.DispatchRequest	false	"action defaults to assign"
//	@Success	200		{object}	servers.AssignmentResponse
//	@Success	200		{object}	servers.SweepResponse
//	@Failure	400		{object}	servers.Error
//	@Failure	405		{object}	servers.Error
//	@Failure	500		{object}	servers.Error
//	@Router		/api/v1/dispatch [post]
func (s *Server) Dispatch(ctx echo.Context) error {
	var request servers.DispatchRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	action := servers.Assign
	if request.Action != nil && *request.Action != "" {
		action = *request.Action
	}

	switch action {
	case servers.AssignPending:
		return s.sweep(ctx)
	case servers.Assign, servers.Reassign:
		orderID, message := parseOrderID(request.OrderId)
		if message != "" {
			return writeError(ctx, http.StatusBadRequest, message)
		}
		if action == servers.Reassign {
			return s.reassign(ctx, orderID)
		}
		return s.assign(ctx, orderID)
	default:
		return writeError(ctx, http.StatusBadRequest, "Unknown action: "+string(action))
	}
}

func (s *Server) assign(ctx echo.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewAssignPartnerCommand(orderID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order_id: "+err.Error())
	}

	result, err := s.assignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.internalError(ctx, "assign failed", err, "order_id", orderID.String())
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(result))
}

func (s *Server) reassign(ctx echo.Context, orderID kernel.UUID) error {
	cmd, err := commands.NewReassignPartnerCommand(orderID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order_id: "+err.Error())
	}

	result, err := s.reassignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.internalError(ctx, "reassign failed", err, "order_id", orderID.String())
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(result))
}

func (s *Server) sweep(ctx echo.Context) error {
	result, err := s.sweepHandler.Handle(ctx.Request().Context(), commands.NewSweepPendingOrdersCommand())
	if err != nil {
		return s.internalError(ctx, "sweep failed", err)
	}

	return ctx.JSON(http.StatusOK, servers.SweepResponse{Processed: result.Processed})
}

// GetAvailablePartners handles GET /api/v1/partners/available.
//
//	@Summary	List partners that can take an order
//	@Tags		partners
//	@Produce	json
//	@Success	200	{array}		servers.Partner
//	@Failure	500	{object}	servers.Error
//	@Router		/api/v1/partners/available [get]
func (s *Server) GetAvailablePartners(ctx echo.Context) error {
	partners, err := s.availablePartnersHandler.Handle(ctx.Request().Context(), queries.NewGetAvailablePartnersQuery())
	if err != nil {
		return s.internalError(ctx, "listing available partners failed", err)
	}

	response := make([]servers.Partner, len(partners))
	for i, p := range partners {
		response[i] = servers.Partner{
			Id:               p.ID.Bytes(),
			City:             p.City,
			State:            p.State,
			LastAssignedAt:   p.LastAssignedAt,
			ActiveDeliveries: p.ActiveDeliveries,
		}
		if lat, ok := p.Coordinates.Latitude(); ok {
			response[i].Latitude = &lat
		}
		if lon, ok := p.Coordinates.Longitude(); ok {
			response[i].Longitude = &lon
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderCandidates handles GET /api/v1/orders/{orderId}/candidates.
//
//	@Summary	Rank available partners for an order without assigning
//	@Tags		orders
//	@Produce	json
//	@Param		orderId	path		string	true	"Order ID"	format(uuid)
//	@Success	200		{array}		servers.Candidate
//	@Failure	400		{object}	servers.Error
//	@Failure	404		{object}	servers.Error
//	@Failure	500		{object}	servers.Error
//	@Router		/api/v1/orders/{orderId}/candidates [get]
func (s *Server) GetOrderCandidates(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderCandidatesQuery(id)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid order id: "+err.Error())
	}

	candidates, err := s.orderCandidatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return writeError(ctx, http.StatusNotFound, "Order not found")
		}
		return s.internalError(ctx, "ranking candidates failed", err, "order_id", id.String())
	}

	response := make([]servers.Candidate, len(candidates))
	for i, c := range candidates {
		response[i] = servers.Candidate{
			PartnerId:            c.PartnerID.Bytes(),
			RankGroup:            c.RankGroup,
			ActiveDeliveries:     c.ActiveDeliveries,
			LastAssignedAtMillis: c.LastAssignedAtMillis,
		}
		// JSON has no infinity; unknown distance is null.
		if !math.IsInf(c.DistanceKm, 0) && !math.IsNaN(c.DistanceKm) {
			distance := c.DistanceKm
			response[i].DistanceKm = &distance
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) internalError(ctx echo.Context, msg string, err error, args ...any) error {
	s.logger.ErrorContext(ctx.Request().Context(), msg, append(args, "error", err)...)
	return writeError(ctx, http.StatusInternalServerError, internalErrorMessage)
}

func parseOrderID(raw *string) (kernel.UUID, string) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return kernel.UUID{}, "order_id is required"
	}

	id, err := kernel.UUIDFromString(strings.TrimSpace(*raw))
	if err != nil {
		return kernel.UUID{}, "order_id must be a valid UUID"
	}

	return id, ""
}

func toAssignmentResponse(result commands.AssignmentResult) servers.AssignmentResponse {
	response := servers.AssignmentResponse{Status: result.Status.String()}
	if result.PartnerID != nil {
		id := result.PartnerID.Bytes()
		response.AssignedPartnerId = &id
	}
	return response
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}
