// Package telemetry reads raw GPS position streams from the fleet's
// tracking provider.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tour-planning-service/internal/domain"
	"tour-planning-service/internal/platform/obs"
	"tour-planning-service/internal/ports"
)

const defaultTimeout = 15 * time.Second

// Client implements ports.PositionSource against a Traccar-style REST API.
// Read-only; it never mutates the telemetry source.
type Client struct {
	session *http.Client
	baseURL string
	token   string
}

func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("telemetry base url is empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}, nil
}

type positionRecord struct {
	DeviceID   json.Number    `json:"deviceId"`
	FixTime    time.Time      `json:"fixTime"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	Speed      float64        `json:"speed"`
	Address    string         `json:"address"`
	Attributes map[string]any `json:"attributes"`
}

type deviceRecord struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	Status     string      `json:"status"`
	LastUpdate time.Time   `json:"lastUpdate"`
}

// Positions returns the ordered samples for one device in [from, to].
func (c *Client) Positions(ctx context.Context, deviceID string, from, to time.Time, limit int) (_ []domain.Position, err error) {
	defer obs.Time(ctx, "telemetry.Positions")(&err)

	params := url.Values{}
	params.Set("deviceId", deviceID)
	params.Set("from", from.UTC().Format(time.RFC3339))
	params.Set("to", to.UTC().Format(time.RFC3339))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var records []positionRecord
	if err := c.get(ctx, "/api/positions", params, &records); err != nil {
		return nil, fmt.Errorf("get positions for device %s: %w", deviceID, err)
	}

	return toDomain(records), nil
}

// Devices returns all registered trackers.
func (c *Client) Devices(ctx context.Context) (_ []ports.Device, err error) {
	defer obs.Time(ctx, "telemetry.Devices")(&err)

	var records []deviceRecord
	if err := c.get(ctx, "/api/devices", nil, &records); err != nil {
		return nil, fmt.Errorf("get devices: %w", err)
	}

	devices := make([]ports.Device, 0, len(records))
	for _, r := range records {
		devices = append(devices, ports.Device{
			ID:         r.ID.String(),
			Name:       r.Name,
			Status:     r.Status,
			LastUpdate: r.LastUpdate,
		})
	}
	return devices, nil
}

// LatestPositions returns the most recent sample per device, which is what
// the provider serves when no device or range filter is given.
func (c *Client) LatestPositions(ctx context.Context) (_ []domain.Position, err error) {
	defer obs.Time(ctx, "telemetry.LatestPositions")(&err)

	var records []positionRecord
	if err := c.get(ctx, "/api/positions", nil, &records); err != nil {
		return nil, fmt.Errorf("get latest positions: %w", err)
	}

	return toDomain(records), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return &ports.TransportError{System: ports.SystemTelemetry, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return &ports.TransportError{System: ports.SystemTelemetry, Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &ports.AuthError{
			System: ports.SystemTelemetry,
			Detail: fmt.Sprintf("status %d", resp.StatusCode),
		}
	case resp.StatusCode >= 400:
		return &ports.TransportError{
			System: ports.SystemTelemetry,
			Err:    fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ports.TransportError{
			System: ports.SystemTelemetry,
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}

	return nil
}

func toDomain(records []positionRecord) []domain.Position {
	positions := make([]domain.Position, 0, len(records))
	for _, r := range records {
		positions = append(positions, domain.Position{
			DeviceID:   r.DeviceID.String(),
			FixTime:    r.FixTime,
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			SpeedKmh:   r.Speed,
			Address:    r.Address,
			Attributes: r.Attributes,
		})
	}
	return positions
}
