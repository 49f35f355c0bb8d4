package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/example/fare-engine/internal/distance"
	"github.com/example/fare-engine/internal/engine"
	"github.com/example/fare-engine/internal/fare"
	"github.com/example/fare-engine/internal/feed"
	"github.com/example/fare-engine/internal/incentive"
	"github.com/example/fare-engine/internal/lifecycle"
	"github.com/example/fare-engine/internal/models"
	"github.com/example/fare-engine/internal/store"
)

type fixedProvider struct{ leg distance.Leg }

func (f fixedProvider) Route(_ context.Context, _, _ models.Coordinates) (distance.Leg, error) {
	return f.leg, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	catalog := store.NewMemoryCatalog()
	store.Seed(catalog)

	machine := lifecycle.NewMachine(30*time.Second, nil)
	ledger := incentive.NewMemoryLedger()
	e := engine.New(engine.Deps{
		Drivers:  catalog,
		Rides:    catalog,
		Resolver: &distance.Resolver{Provider: fixedProvider{leg: distance.Leg{DistanceKm: 10, DurationMin: 20}}},
		Fares:    &fare.Calculator{},
		Ledger:   ledger,
		Machine:  machine,
		Archive:  catalog,
	})
	return NewServer(e, machine, ledger, feed.NewWSRegistry(nil), nil)
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestRideRequestEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(t, s, "/api/v1/rides/request", `{"ride_id":"5678","driver_id":"12345"}`)
	if rec.Code != 200 {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var n models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &n); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n.RideID != "5678" || n.DriverID != "12345" {
		t.Errorf("ids = %s/%s", n.RideID, n.DriverID)
	}
	if n.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", n.Status)
	}
	if n.Fare.TotalFare <= 0 {
		t.Errorf("total fare = %d, want positive", n.Fare.TotalFare)
	}
	if n.Classification.Category != models.CategoryHighLow {
		t.Errorf("category = %s", n.Classification.Category)
	}
}

func TestRideRequestRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"ride_id":`, 400},
		{"missing fields", `{}`, 400},
		{"unknown ride", `{"ride_id":"nope","driver_id":"12345"}`, 404},
		{"unknown driver", `{"ride_id":"5678","driver_id":"nope"}`, 404},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, s, "/api/v1/rides/request", tc.body)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestDuplicateRideRequestConflicts(t *testing.T) {
	s := newTestServer(t)
	body := `{"ride_id":"5678","driver_id":"12345"}`

	if rec := postJSON(t, s, "/api/v1/rides/request", body); rec.Code != 200 {
		t.Fatalf("first request: status = %d", rec.Code)
	}
	if rec := postJSON(t, s, "/api/v1/notifications/5678/accept", ""); rec.Code != 200 {
		t.Fatalf("accept: status = %d", rec.Code)
	}

	if rec := postJSON(t, s, "/api/v1/rides/request", body); rec.Code != 409 {
		t.Fatalf("duplicate request: status = %d, want 409", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/5678", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var n models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &n); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n.Status != models.StatusAccepted {
		t.Errorf("status after duplicate request = %s, want accepted", n.Status)
	}
}

func TestNotificationLifecycleEndpoints(t *testing.T) {
	s := newTestServer(t)
	postJSON(t, s, "/api/v1/rides/request", `{"ride_id":"5678","driver_id":"12345"}`)

	// starting before accepting is off the graph
	if rec := postJSON(t, s, "/api/v1/notifications/5678/start", ""); rec.Code != 409 {
		t.Fatalf("start before accept: status = %d, want 409", rec.Code)
	}

	for _, action := range []string{"accept", "start", "complete"} {
		rec := postJSON(t, s, "/api/v1/notifications/5678/"+action, "")
		if rec.Code != 200 {
			t.Fatalf("%s: status = %d, body %s", action, rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/5678", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var n models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &n); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", n.Status)
	}

	// completion credited points once
	req = httptest.NewRequest(http.MethodGet, "/api/v1/points", nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var points map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode points: %v", err)
	}
	if points["points"] != int64(n.Fare.PointsEarned) {
		t.Errorf("points = %d, want %d", points["points"], n.Fare.PointsEarned)
	}
}

func TestTransitionUnknownRideAndAction(t *testing.T) {
	s := newTestServer(t)

	if rec := postJSON(t, s, "/api/v1/notifications/ghost/accept", ""); rec.Code != 404 {
		t.Errorf("unknown ride: status = %d, want 404", rec.Code)
	}
	postJSON(t, s, "/api/v1/rides/request", `{"ride_id":"5678","driver_id":"12345"}`)
	if rec := postJSON(t, s, "/api/v1/notifications/5678/teleport", ""); rec.Code != 404 {
		t.Errorf("unknown action: status = %d, want 404", rec.Code)
	}
}

func TestWSSessionPrunedOnClose(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/12345"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	if err := s.WSReg.Push("12345", models.Notification{RideID: "5678"}); err != nil {
		t.Fatalf("push to live session: %v", err)
	}

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := s.WSReg.Push("12345", models.Notification{}); errors.Is(err, feed.ErrNoSession) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("session still registered after the connection closed")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != 200 || rec.Body.String() != "ok" {
		t.Errorf("healthz: %d %q", rec.Code, rec.Body.String())
	}
}
