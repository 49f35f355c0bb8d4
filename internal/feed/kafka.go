package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/fare-engine/internal/models"
)

// Event is the lifecycle record published per status change.
type Event struct {
	RideID   string        `json:"ride_id"`
	DriverID string        `json:"driver_id"`
	From     models.Status `json:"from"`
	To       models.Status `json:"to"`
	At       time.Time     `json:"at"`
}

// Publisher writes lifecycle events to a Kafka topic. Publishing is
// best-effort: failures are logged, never surfaced to the caller.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Publisher{writer: w, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, ev Event) {
	buf, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("marshal lifecycle event", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.RideID),
		Value: buf,
	})
	if err != nil {
		p.logger.Warn("publish lifecycle event", "ride_id", ev.RideID, "error", err)
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
