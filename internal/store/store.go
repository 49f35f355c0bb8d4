// Package store provides the injected read-only driver/ride lookups and the
// optional notification archive.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/example/fare-engine/internal/models"
)

var ErrNotFound = errors.New("not found")

// DriverStore is a read-only driver lookup. Profile management lives in an
// external collaborator.
type DriverStore interface {
	Driver(ctx context.Context, id string) (models.DriverProfile, error)
}

// RideStore is a read-only ride-request lookup.
type RideStore interface {
	Ride(ctx context.Context, id string) (models.RideRequest, error)
}

// NotificationStore archives notification records and status changes.
type NotificationStore interface {
	SaveNotification(n models.Notification) error
	UpdateStatus(rideID string, status models.Status) error
}

// MemoryCatalog is the in-memory driver/ride source. It doubles as the
// notification archive when no Postgres DSN is configured.
type MemoryCatalog struct {
	mu            sync.RWMutex
	drivers       map[string]models.DriverProfile
	rides         map[string]models.RideRequest
	notifications map[string]models.Notification
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		drivers:       make(map[string]models.DriverProfile),
		rides:         make(map[string]models.RideRequest),
		notifications: make(map[string]models.Notification),
	}
}

func (c *MemoryCatalog) Driver(_ context.Context, id string) (models.DriverProfile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.drivers[id]
	if !ok {
		return models.DriverProfile{}, ErrNotFound
	}
	return d, nil
}

func (c *MemoryCatalog) Ride(_ context.Context, id string) (models.RideRequest, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rides[id]
	if !ok {
		return models.RideRequest{}, ErrNotFound
	}
	return r, nil
}

func (c *MemoryCatalog) UpsertDriver(d models.DriverProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drivers[d.ID] = d
}

func (c *MemoryCatalog) UpsertRide(r models.RideRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rides[r.ID] = r
}

func (c *MemoryCatalog) SaveNotification(n models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications[n.RideID] = n
	return nil
}

func (c *MemoryCatalog) UpdateStatus(rideID string, status models.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.notifications[rideID]
	if !ok {
		return ErrNotFound
	}
	n.Status = status
	c.notifications[rideID] = n
	return nil
}
