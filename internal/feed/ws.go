// Package feed pushes notification records outward: live driver sessions
// over websocket, and best-effort lifecycle events to Kafka. Consumers only
// read; engine state changes flow back through the HTTP lifecycle endpoints.
package feed

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/example/fare-engine/internal/models"
)

// WSSession represents a connected driver session.
type WSSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *WSSession) Send(n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(n)
}

// WSRegistry holds driver sessions.
type WSRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*WSSession
	logger   *slog.Logger
}

func NewWSRegistry(logger *slog.Logger) *WSRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSRegistry{sessions: make(map[string]*WSSession), logger: logger}
}

func (r *WSRegistry) Add(driverID string, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[driverID] = &WSSession{conn: conn}
}

func (r *WSRegistry) Remove(driverID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, driverID)
}

// Push sends a notification snapshot to the driver's live session, if any.
func (r *WSRegistry) Push(driverID string, n models.Notification) error {
	r.mu.RLock()
	s, ok := r.sessions[driverID]
	r.mu.RUnlock()
	if !ok {
		return ErrNoSession
	}
	if err := s.Send(n); err != nil {
		r.logger.Warn("ws send error", "driver_id", driverID, "error", err)
		return err
	}
	return nil
}

var ErrNoSession = errors.New("no ws session for driver")
