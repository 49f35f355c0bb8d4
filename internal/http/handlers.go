// Package httpapi exposes the engine over HTTP: ride-request processing, the
// notification lifecycle endpoints, the points balance, and the driver
// websocket feed.
package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/fare-engine/internal/engine"
	"github.com/example/fare-engine/internal/feed"
	"github.com/example/fare-engine/internal/incentive"
	"github.com/example/fare-engine/internal/lifecycle"
	"github.com/example/fare-engine/internal/models"
	"github.com/example/fare-engine/internal/store"
)

type Server struct {
	Engine  *engine.Engine
	Machine *lifecycle.Machine
	Ledger  incentive.Ledger
	WSReg   *feed.WSRegistry

	logger *slog.Logger
	mux    *mux.Router
}

func NewServer(e *engine.Engine, m *lifecycle.Machine, ledger incentive.Ledger, wsreg *feed.WSRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{Engine: e, Machine: m, Ledger: ledger, WSReg: wsreg, logger: logger, mux: mux.NewRouter()}
	s.registerMiddleware()
	s.routes()
	return s
}

// transitionActions maps URL verbs to target statuses.
var transitionActions = map[string]models.Status{
	"accept":   models.StatusAccepted,
	"reject":   models.StatusRejected,
	"start":    models.StatusStarted,
	"complete": models.StatusCompleted,
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/rides/request", s.handleRideRequest).Methods("POST")
	s.mux.HandleFunc("/api/v1/notifications/{ride_id}", s.handleGetNotification).Methods("GET")
	s.mux.HandleFunc("/api/v1/notifications/{ride_id}/{action}", s.handleTransition).Methods("POST")
	s.mux.HandleFunc("/api/v1/points", s.handlePoints).Methods("GET")
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/ws/{driver_id}", s.handleWS)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

type rideRequestPayload struct {
	RideID   string `json:"ride_id"`
	DriverID string `json:"driver_id"`
}

func (s *Server) handleRideRequest(w http.ResponseWriter, r *http.Request) {
	var p rideRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	if p.RideID == "" || p.DriverID == "" {
		http.Error(w, "ride_id and driver_id are required", 400)
		return
	}
	n, err := s.Engine.ProcessRideRequest(r.Context(), p.RideID, p.DriverID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			http.Error(w, err.Error(), 404)
		case errors.Is(err, lifecycle.ErrAlreadyAdmitted):
			http.Error(w, err.Error(), 409)
		default:
			s.logger.Error("process ride request", "ride_id", p.RideID, "error", err)
			http.Error(w, "internal error", 500)
		}
		return
	}
	writeJSON(w, 200, n)
}

func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	rideID := mux.Vars(r)["ride_id"]
	n, ok := s.Machine.Get(rideID)
	if !ok {
		http.Error(w, "notification not found", 404)
		return
	}
	writeJSON(w, 200, n)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	to, ok := transitionActions[vars["action"]]
	if !ok {
		http.Error(w, "unknown action", 404)
		return
	}
	n, err := s.Machine.Transition(vars["ride_id"], to)
	if err != nil {
		var invalid *lifecycle.InvalidTransitionError
		switch {
		case errors.Is(err, lifecycle.ErrNotFound):
			http.Error(w, err.Error(), 404)
		case errors.As(err, &invalid):
			http.Error(w, err.Error(), 409)
		default:
			http.Error(w, "internal error", 500)
		}
		return
	}
	writeJSON(w, 200, n)
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	total, err := s.Ledger.Total(r.Context())
	if err != nil {
		s.logger.Error("points total", "error", err)
		http.Error(w, "internal error", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"points": total})
}

var upgrader = websocket.Upgrader{}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["driver_id"]
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", 400)
		return
	}
	s.WSReg.Add(id, conn)

	// read pump: drivers never send anything, but reading is how we learn
	// the connection closed so the session can be pruned
	go func() {
		defer func() {
			s.WSReg.Remove(id)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }
