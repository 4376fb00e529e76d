// Package directions computes routes between two points with the Mapbox
// Directions API.
package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.mapbox.com/directions/v5/mapbox"

var (
	ErrNotConfigured = errors.New("mapbox access token not configured")
	ErrNoRoute       = errors.New("no route available")
	ErrInvalidMode   = errors.New("unknown transport mode")
)

// NetworkError reports a failed or rejected call to the routing provider.
type NetworkError struct {
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("directions: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("directions: %s", e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }

type Mode string

const (
	ModeDriving Mode = "driving-traffic"
	ModeWalking Mode = "walking"
	ModeCycling Mode = "cycling"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeDriving, nil
	case ModeDriving, ModeWalking, ModeCycling:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Point is a [longitude, latitude] pair.
type Point [2]float64

// ParsePoint reads "lng,lat".
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("point %q: want lng,lat", s)
	}
	var p Point
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Point{}, fmt.Errorf("point %q: %w", s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Point{}, fmt.Errorf("point %q: not a finite number", s)
		}
		p[i] = v
	}
	if p[0] < -180 || p[0] > 180 || p[1] < -90 || p[1] > 90 {
		return Point{}, fmt.Errorf("point %q: out of range", s)
	}
	return p, nil
}

type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type Route struct {
	Geometry Geometry `json:"geometry"`
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Mode     Mode     `json:"mode"`
}

type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Route asks the provider for the first route from origin to destination.
func (c *Client) Route(ctx context.Context, origin, destination Point, mode Mode) (Route, error) {
	if c.token == "" {
		return Route{}, ErrNotConfigured
	}

	coords := fmt.Sprintf("%g,%g;%g,%g", origin[0], origin[1], destination[0], destination[1])
	q := url.Values{}
	q.Set("access_token", c.token)
	q.Set("geometries", "geojson")
	q.Set("overview", "full")
	q.Set("steps", "false")
	endpoint := c.baseURL + "/" + string(mode) + "/" + coords + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Route{}, fmt.Errorf("build directions request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Route{}, &NetworkError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Route{}, &NetworkError{Status: resp.StatusCode, Message: "read body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = "route could not be computed"
		}
		return Route{}, &NetworkError{Status: resp.StatusCode, Message: msg}
	}

	var payload struct {
		Routes []struct {
			Geometry Geometry `json:"geometry"`
			Distance float64  `json:"distance"`
			Duration float64  `json:"duration"`
		} `json:"routes"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Route{}, &NetworkError{Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	if len(payload.Routes) == 0 {
		return Route{}, ErrNoRoute
	}
	first := payload.Routes[0]
	return Route{Geometry: first.Geometry, Distance: first.Distance, Duration: first.Duration, Mode: mode}, nil
}

// FormatDistance renders meters as "500 m" or "1.5 km".
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%d m", int(math.Round(meters)))
}

// FormatDuration renders seconds as "15 min", "2 h" or "1 h 30 min".
func FormatDuration(seconds float64) string {
	minutes := int(math.Round(seconds / 60))
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours, rest := minutes/60, minutes%60
	if rest == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, rest)
}

type LineStyle struct {
	Color     string `json:"color"`
	Width     int    `json:"width"`
	DashArray []int  `json:"dashArray,omitempty"`
}

func StyleFor(mode Mode) LineStyle {
	switch mode {
	case ModeWalking:
		return LineStyle{Color: "#22C55E", Width: 4, DashArray: []int{2, 4}}
	case ModeCycling:
		return LineStyle{Color: "#F97316", Width: 4, DashArray: []int{4, 2}}
	default:
		return LineStyle{Color: "#3B82F6", Width: 5}
	}
}
