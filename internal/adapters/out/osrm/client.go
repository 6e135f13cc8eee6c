// Package osrm implements the road-routing client against an OSRM-style
// HTTP API.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

const defaultRequestTimeout = 10 * time.Second

// Client calls an OSRM-compatible routing server. Implements
// ports.RouteClient; every failure wraps ports.ErrRouteUnavailable so the
// route composer can keep serving the last good route.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a routing client for the given base URL, e.g.
// "http://router.project-osrm.org".
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("base url")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// osrmResponse is the subset of the OSRM route response the client reads.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// ComputeRoute requests a driving route through the waypoints and returns
// the encoded polyline plus the ETA rounded up to whole minutes.
func (c *Client) ComputeRoute(ctx context.Context, waypoints tracking.RouteWaypoints) (tracking.Route, error) {
	if err := waypoints.Validate(); err != nil {
		return tracking.Route{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.routeURL(waypoints), nil)
	if err != nil {
		return tracking.Route{}, fmt.Errorf("%w: build request: %w", ports.ErrRouteUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return tracking.Route{}, fmt.Errorf("%w: %w", ports.ErrRouteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tracking.Route{}, fmt.Errorf("%w: unexpected status %d", ports.ErrRouteUnavailable, resp.StatusCode)
	}

	var parsed osrmResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return tracking.Route{}, fmt.Errorf("%w: decode response: %w", ports.ErrRouteUnavailable, err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return tracking.Route{}, fmt.Errorf("%w: no route found (code %q)", ports.ErrRouteUnavailable, parsed.Code)
	}

	best := parsed.Routes[0]
	etaMinutes := int(math.Ceil(best.Duration / 60))

	route, err := tracking.NewRoute(best.Geometry, etaMinutes, time.Now().UTC())
	if err != nil {
		return tracking.Route{}, fmt.Errorf("%w: %w", ports.ErrRouteUnavailable, err)
	}

	return route, nil
}

// routeURL builds the OSRM route request: coordinates are
// longitude,latitude pairs separated by semicolons.
func (c *Client) routeURL(waypoints tracking.RouteWaypoints) string {
	coords := make([]string, 0, 3)
	for _, point := range waypoints.Points() {
		coords = append(coords, formatPoint(point))
	}

	query := url.Values{}
	query.Set("overview", "full")

	return fmt.Sprintf("%s/route/v1/driving/%s?%s",
		c.baseURL, strings.Join(coords, ";"), query.Encode())
}

func formatPoint(point kernel.GeoPoint) string {
	return fmt.Sprintf("%f,%f", point.Longitude(), point.Latitude())
}
