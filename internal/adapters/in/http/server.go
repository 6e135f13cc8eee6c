// Package http exposes the tracking core over REST. Restaurants and drivers
// submit transitions, customers read the live order view.
package http

import (
	"errors"
	"net/http"
	"time"

	"fooddelivery/internal/core/application/session"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error envelope every failing endpoint returns.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransitionRequest is the body of POST /orders/:id/transition.
type TransitionRequest struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

// PositionView is the last admitted driver position inside an order view.
type PositionView struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RouteView is the current route inside an order view.
type RouteView struct {
	Polyline   string    `json:"polyline"`
	EtaMinutes int       `json:"eta_minutes"`
	ComputedAt time.Time `json:"computed_at"`
}

// OrderView is the customer-facing tracking snapshot of one order.
type OrderView struct {
	OrderID  string        `json:"order_id"`
	Status   string        `json:"status"`
	DriverID *string       `json:"driver_id,omitempty"`
	Position *PositionView `json:"position,omitempty"`
	Route    *RouteView    `json:"route,omitempty"`
}

// DriverOrder is one row of the driver's active order list.
type DriverOrder struct {
	OrderID   string  `json:"order_id"`
	Status    string  `json:"status"`
	Street    string  `json:"street"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StatusChangeView is one row of an order's status history.
type StatusChangeView struct {
	Status     string    `json:"status"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Server coordinates between HTTP handlers, the session manager, and the
// read-side query handlers.
type Server struct {
	sessions            *session.Manager
	driverOrdersHandler queries.GetDriverOrdersQueryHandler
	historyHandler      queries.GetOrderHistoryQueryHandler
}

// NewServer creates the HTTP server over the session manager and query
// handlers.
func NewServer(
	sessions *session.Manager,
	driverOrdersHandler queries.GetDriverOrdersQueryHandler,
	historyHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		sessions:            sessions,
		driverOrdersHandler: driverOrdersHandler,
		historyHandler:      historyHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders/:id/session", s.OpenSession)
	api.DELETE("/orders/:id/session", s.CloseSession)
	api.POST("/orders/:id/transition", s.SubmitTransition)
	api.GET("/orders/:id/view", s.GetOrderView)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/drivers/:id/orders", s.GetDriverOrders)
}

// OpenSession handles POST /api/v1/orders/:id/session - starts tracking an
// order. Opening an already-tracked order returns its current view.
func (s *Server) OpenSession(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	sess, err := s.sessions.Open(ctx.Request().Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return notFound(ctx, "Order not found")
		case errors.Is(err, session.ErrOrderFinished):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order already finished",
			})
		case errors.Is(err, ports.ErrBackendUnavailable):
			return badGateway(ctx, "Order store unavailable")
		default:
			return internalError(ctx, "Failed to open tracking session")
		}
	}

	return ctx.JSON(http.StatusCreated, toOrderView(sess.Snapshot()))
}

// CloseSession handles DELETE /api/v1/orders/:id/session. Idempotent.
func (s *Server) CloseSession(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	s.sessions.Close(orderID)
	return ctx.NoContent(http.StatusNoContent)
}

// SubmitTransition handles POST /api/v1/orders/:id/transition - advances the
// order's status on behalf of an actor role.
func (s *Server) SubmitTransition(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.Status)
	}

	role, err := order.RoleFromString(req.Role)
	if err != nil {
		return badRequest(ctx, "Unknown role: "+req.Role)
	}

	sess, ok := s.sessions.Get(orderID)
	if !ok {
		return notFound(ctx, "No open tracking session for order")
	}

	cmd, err := commands.NewSubmitTransitionCommand(orderID, target, role)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	snapshot, err := sess.SubmitTransition(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrIllegalTransition):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: err.Error(),
			})
		case errors.Is(err, ports.ErrBackendUnavailable):
			return badGateway(ctx, "Order store unavailable")
		case errors.Is(err, session.ErrSessionClosed):
			return notFound(ctx, "No open tracking session for order")
		default:
			return internalError(ctx, "Failed to apply transition")
		}
	}

	return ctx.JSON(http.StatusOK, toOrderView(snapshot))
}

// GetOrderView handles GET /api/v1/orders/:id/view - the live tracking
// snapshot.
func (s *Server) GetOrderView(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	sess, ok := s.sessions.Get(orderID)
	if !ok {
		return notFound(ctx, "No open tracking session for order")
	}

	return ctx.JSON(http.StatusOK, toOrderView(sess.Snapshot()))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - the recorded
// status changes, oldest first.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := parseID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	changes, err := s.historyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve order history")
	}

	response := make([]StatusChangeView, len(changes))
	for i, change := range changes {
		response[i] = StatusChangeView{
			Status:     change.Status,
			Actor:      change.Actor,
			OccurredAt: change.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDriverOrders handles GET /api/v1/drivers/:id/orders - the driver's
// active orders.
func (s *Server) GetDriverOrders(ctx echo.Context) error {
	driverID, err := parseID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	query, err := queries.NewGetDriverOrdersQuery(driverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	orders, err := s.driverOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve driver orders")
	}

	response := make([]DriverOrder, len(orders))
	for i, o := range orders {
		response[i] = DriverOrder{
			OrderID:   o.ID.String(),
			Status:    o.Status,
			Street:    o.Street,
			Latitude:  o.Destination.Latitude(),
			Longitude: o.Destination.Longitude(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toOrderView(snapshot session.Snapshot) OrderView {
	view := OrderView{
		OrderID: snapshot.OrderID.String(),
		Status:  snapshot.Status.String(),
	}

	if snapshot.DriverID != nil {
		id := snapshot.DriverID.String()
		view.DriverID = &id
	}

	if snapshot.HasLocation {
		view.Position = &PositionView{
			Latitude:   snapshot.Location.Point().Latitude(),
			Longitude:  snapshot.Location.Point().Longitude(),
			RecordedAt: snapshot.Location.RecordedAt(),
		}
	}

	if snapshot.HasRoute {
		view.Route = &RouteView{
			Polyline:   snapshot.Route.Polyline(),
			EtaMinutes: snapshot.Route.EtaMinutes(),
			ComputedAt: snapshot.Route.ComputedAt(),
		}
	}

	return view
}

func parseID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func badGateway(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadGateway, Error{Code: http.StatusBadGateway, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
