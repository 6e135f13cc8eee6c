package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapterhttp "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/core/application/feed"
	"fooddelivery/internal/core/application/routing"
	"fooddelivery/internal/core/application/session"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend keeps orders in memory and applies transitions through the
// aggregate, mirroring what the real backend does transactionally.
type stubBackend struct {
	orders map[kernel.UUID]*order.Order
}

func (b *stubBackend) GetOrder(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if ord, ok := b.orders[id]; ok {
		return ord, nil
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

func (b *stubBackend) SetOrderStatus(
	_ context.Context,
	id kernel.UUID,
	status order.Status,
	actor order.ActorRole,
) (*order.Order, error) {
	ord, ok := b.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	if _, err := ord.AttemptTransition(status, actor); err != nil {
		return nil, err
	}
	return ord, nil
}

func (b *stubBackend) ListOrdersByDriver(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, nil
}

type stubNotifier struct{}

func (stubNotifier) Notify(_ context.Context, _ order.NotificationIntent) error { return nil }

type stubRouteClient struct{}

func (stubRouteClient) ComputeRoute(_ context.Context, _ tracking.RouteWaypoints) (tracking.Route, error) {
	return tracking.NewRoute("gfo}EtohhU", 12, time.Now())
}

type stubRestaurants struct{}

func (stubRestaurants) GetLocation(_ context.Context, _ kernel.UUID) (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(40.7411, -73.9897)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	item, err := order.NewItem("Margherita", 1, 1250)
	require.NoError(t, err)
	location, err := kernel.NewGeoPoint(40.7128, -74.0060)
	require.NoError(t, err)
	address, err := order.NewAddress("350 5th Ave", location)
	require.NoError(t, err)

	ord, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "+15550100",
		[]order.Item{item}, address, "CARD", 299, "", time.Now(),
	)
	require.NoError(t, err)
	return ord
}

type serverFixture struct {
	echo    *echo.Echo
	backend *stubBackend
	manager *session.Manager
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	backend := &stubBackend{orders: make(map[kernel.UUID]*order.Order)}
	manager, err := session.NewManager(
		backend, stubNotifier{}, stubRouteClient{}, stubRestaurants{},
		feed.New(testLogger()), routing.DefaultToleranceMeters, testLogger(),
	)
	require.NoError(t, err)
	t.Cleanup(manager.CloseAll)

	server := adapterhttp.NewServer(manager,
		queries.GetDriverOrdersQueryHandler{}, queries.GetOrderHistoryQueryHandler{})

	e := echo.New()
	server.RegisterRoutes(e)

	return &serverFixture{echo: e, backend: backend, manager: manager}
}

func (f *serverFixture) request(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestOpenSession_ReturnsView(t *testing.T) {
	f := newServerFixture(t)
	ord := newTestOrder(t)
	f.backend.orders[ord.ID()] = ord

	rec := f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/session", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var view adapterhttp.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, ord.ID().String(), view.OrderID)
	assert.Equal(t, "PLACED", view.Status)
	assert.Nil(t, view.Position)
	assert.Nil(t, view.Route)
}

func TestOpenSession_UnknownOrder(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/session", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var errBody adapterhttp.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, http.StatusNotFound, errBody.Code)
}

func TestOpenSession_InvalidID(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(http.MethodPost, "/api/v1/orders/not-a-uuid/session", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitTransition_LegalAndIllegal(t *testing.T) {
	f := newServerFixture(t)
	ord := newTestOrder(t)
	f.backend.orders[ord.ID()] = ord

	rec := f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/session", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/transition",
		`{"status":"ACCEPTED","role":"Restaurant"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view adapterhttp.OrderView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "ACCEPTED", view.Status)

	// A driver cannot pick up an order the kitchen has not released.
	rec = f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/transition",
		`{"status":"PICKED_UP","role":"Driver"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitTransition_UnknownStatusOrRole(t *testing.T) {
	f := newServerFixture(t)
	ord := newTestOrder(t)
	f.backend.orders[ord.ID()] = ord

	f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/session", "")

	rec := f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/transition",
		`{"status":"SHIPPED","role":"Restaurant"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/transition",
		`{"status":"ACCEPTED","role":"Customer"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitTransition_NoOpenSession(t *testing.T) {
	f := newServerFixture(t)
	ord := newTestOrder(t)
	f.backend.orders[ord.ID()] = ord

	rec := f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/transition",
		`{"status":"ACCEPTED","role":"Restaurant"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderView_NoSession(t *testing.T) {
	f := newServerFixture(t)

	rec := f.request(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String()+"/view", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCloseSession_Idempotent(t *testing.T) {
	f := newServerFixture(t)
	ord := newTestOrder(t)
	f.backend.orders[ord.ID()] = ord

	f.request(http.MethodPost, "/api/v1/orders/"+ord.ID().String()+"/session", "")

	rec := f.request(http.MethodDelete, "/api/v1/orders/"+ord.ID().String()+"/session", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.request(http.MethodDelete, "/api/v1/orders/"+ord.ID().String()+"/session", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.request(http.MethodGet, "/api/v1/orders/"+ord.ID().String()+"/view", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
