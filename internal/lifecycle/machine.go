// Package lifecycle owns notification state. All status changes flow through
// one guarded transition path, including the expiry sweep.
package lifecycle

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/fare-engine/internal/models"
	"github.com/example/fare-engine/internal/observability"
)

// allowedTransitions is the state graph as data. rejected and completed are
// terminal.
var allowedTransitions = map[models.Status][]models.Status{
	models.StatusPending:  {models.StatusAccepted, models.StatusRejected},
	models.StatusAccepted: {models.StatusStarted},
	models.StatusStarted:  {models.StatusCompleted},
}

// CanTransition reports whether from→to is a valid edge.
func CanTransition(from, to models.Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

var (
	ErrNotFound        = fmt.Errorf("notification not found")
	ErrAlreadyAdmitted = fmt.Errorf("notification already admitted for ride")
)

// InvalidTransitionError rejects an off-graph transition request without
// touching the current status.
type InvalidTransitionError struct {
	From, To models.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// TransitionHook observes a committed transition.
type TransitionHook func(n models.Notification, from models.Status)

// CompletedHook observes a ride reaching completed.
type CompletedHook func(n models.Notification)

// Machine holds every notification this process has created and applies
// transitions under one lock. Notifications are never deleted; terminal ones
// simply stop mattering.
type Machine struct {
	mu            sync.Mutex
	notifications map[string]*models.Notification

	window time.Duration
	now    func() time.Time

	onTransition []TransitionHook
	onCompleted  []CompletedHook

	logger *slog.Logger
}

func NewMachine(window time.Duration, logger *slog.Logger) *Machine {
	if window <= 0 {
		window = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		notifications: make(map[string]*models.Notification),
		window:        window,
		now:           time.Now,
		logger:        logger,
	}
}

// OnTransition registers a hook fired after every committed transition.
func (m *Machine) OnTransition(fn TransitionHook) { m.onTransition = append(m.onTransition, fn) }

// OnCompleted registers the point-crediting (or any other) completion hook.
func (m *Machine) OnCompleted(fn CompletedHook) { m.onCompleted = append(m.onCompleted, fn) }

// Admit takes ownership of a freshly built notification: stamps creation and
// expiry, sets status pending, and returns the stored snapshot. A ride id is
// admitted at most once; re-admission would reset a live status and re-arm
// the expiry sweep, so it is refused with ErrAlreadyAdmitted and the existing
// snapshot.
func (m *Machine) Admit(n models.Notification) (models.Notification, error) {
	now := m.now()
	n.Status = models.StatusPending
	n.CreatedAt = now
	n.ExpiresAt = now.Add(m.window)

	m.mu.Lock()
	if existing, ok := m.notifications[n.RideID]; ok {
		snapshot := *existing
		m.mu.Unlock()
		return snapshot, ErrAlreadyAdmitted
	}
	m.notifications[n.RideID] = &n
	snapshot := n
	m.mu.Unlock()

	observability.NotificationsCreated.Inc()
	m.logger.Info("notification created",
		"ride_id", n.RideID, "driver_id", n.DriverID,
		"category", n.Classification.Category, "fare", n.Fare.TotalFare,
		"expires_at", n.ExpiresAt)
	return snapshot, nil
}

// Get returns a snapshot of a notification.
func (m *Machine) Get(rideID string) (models.Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[rideID]
	if !ok {
		return models.Notification{}, false
	}
	return *n, true
}

// Transition applies a driver-initiated status change. Invalid edges are
// rejected with an error and leave the status untouched.
func (m *Machine) Transition(rideID string, to models.Status) (models.Notification, error) {
	m.mu.Lock()
	n, ok := m.notifications[rideID]
	if !ok {
		m.mu.Unlock()
		return models.Notification{}, ErrNotFound
	}
	from := n.Status
	if !CanTransition(from, to) {
		m.mu.Unlock()
		return models.Notification{}, &InvalidTransitionError{From: from, To: to}
	}
	n.Status = to
	snapshot := *n
	m.mu.Unlock()

	m.committed(snapshot, from)
	return snapshot, nil
}

// ExpireLapsed sweeps pending notifications whose expiry has passed and
// rejects them through the same guarded path. Safe to run concurrently with
// driver transitions: the status is rechecked under the lock, so a stale
// sweep can never override a just-accepted ride. Returns the number expired.
func (m *Machine) ExpireLapsed(now time.Time) int {
	type lapse struct {
		snapshot models.Notification
		from     models.Status
	}
	var lapsed []lapse

	m.mu.Lock()
	for _, n := range m.notifications {
		if n.Status != models.StatusPending || now.Before(n.ExpiresAt) {
			continue
		}
		from := n.Status
		n.Status = models.StatusRejected
		lapsed = append(lapsed, lapse{snapshot: *n, from: from})
	}
	m.mu.Unlock()

	for _, l := range lapsed {
		observability.NotificationsExpired.Inc()
		m.logger.Info("notification expired", "ride_id", l.snapshot.RideID)
		m.committed(l.snapshot, l.from)
	}
	return len(lapsed)
}

func (m *Machine) committed(n models.Notification, from models.Status) {
	observability.Transitions.WithLabelValues(string(n.Status)).Inc()
	for _, fn := range m.onTransition {
		fn(n, from)
	}
	if n.Status == models.StatusCompleted {
		for _, fn := range m.onCompleted {
			fn(n)
		}
	}
}
