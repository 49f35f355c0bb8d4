package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/fare-engine/internal/models"
)

// RoutedClient performs route lookups against an OSRM-compatible HTTP server.
type RoutedClient struct {
	Endpoint string
	Client   *http.Client
}

func NewRoutedClient(endpoint string, timeout time.Duration) *RoutedClient {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &RoutedClient{Endpoint: endpoint, Client: &http.Client{Timeout: timeout}}
}

// Route queries /route between points and returns the network distance and
// duration. Any transport error, non-2xx status, malformed payload, or
// missing route is returned as an error for the resolver to recover from.
func (c *RoutedClient) Route(ctx context.Context, from, to models.Coordinates) (Leg, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=false",
		c.Endpoint, from.Longitude, from.Latitude, to.Longitude, to.Latitude)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Leg{}, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return Leg{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Leg{}, fmt.Errorf("route provider status %d", resp.StatusCode)
	}
	var out struct {
		Routes []struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"routes"`
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Leg{}, err
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return Leg{}, fmt.Errorf("route provider no route: %v", out.Code)
	}
	return Leg{
		DistanceKm:  out.Routes[0].Distance / 1000,
		DurationMin: out.Routes[0].Duration / 60,
	}, nil
}
