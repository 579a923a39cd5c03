package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"meeting-room-booking/internal/usecase/queries"
)

type EventType string

const (
	ReservationCreated   EventType = "reservation.created"
	ReservationUpdated   EventType = "reservation.updated"
	ReservationCancelled EventType = "reservation.cancelled"
)

type Event struct {
	Type        EventType                `json:"type"`
	Reservation *queries.ReservationView `json:"reservation"`
	OccurredAt  time.Time                `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Dispatcher publishes events off the request path. Failures are logged and
// dropped; callers never wait on delivery.
type Dispatcher struct {
	publisher Publisher
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(publisher Publisher, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{
		publisher: publisher,
		timeout:   timeout,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		slog.Warn("event dropped after shutdown", "type", string(event.Type))
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	// Detached from the request so a finished handler does not cancel delivery
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := d.publisher.Publish(pubCtx, event); err != nil {
			attrs := []any{"type", string(event.Type), "error", err.Error()}
			if event.Reservation != nil {
				attrs = append(attrs, "reservation_id", event.Reservation.ID.String())
			}
			slog.Error("failed to publish event", attrs...)
		}
	}()
}

// Wait stops accepting new events and blocks until in-flight ones finish or
// ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
