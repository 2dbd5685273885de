package publisher

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Aarya06/Bookwizard/internal/order"
)

// MessageWriter is the slice of kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher polls for orders whose completed-order event has not been
// published yet and writes them to Kafka. An order is marked published only
// after a successful write, so a failed write is retried on the next tick.
type Publisher struct {
	tick    time.Duration
	batch   int
	orders  order.Repository
	writer  MessageWriter
	logger  *zap.Logger
}

func New(orders order.Repository, logger *zap.Logger, brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-completed",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{
		tick:   time.Second,
		batch:  100,
		orders: orders,
		writer: w,
		logger: logger,
	}
}

// Close releases the underlying kafka writer. Call after Run has stopped.
func (p *Publisher) Close() error {
	if c, ok := p.writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.publishPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Publisher) publishPending(ctx context.Context) {
	orders, err := p.orders.GetUnpublished(ctx, p.batch)
	if err != nil {
		p.logger.Warn("failed to fetch unpublished orders", zap.Error(err))
		return
	}

	for i := range orders {
		snap := &orders[i]
		if err := p.publish(ctx, snap); err != nil {
			p.logger.Warn("failed to publish order event",
				zap.String("order_id", snap.ID), zap.Error(err))
			continue
		}

		if err := p.orders.MarkPublished(ctx, snap.ID); err != nil {
			p.logger.Warn("failed to mark order published",
				zap.String("order_id", snap.ID), zap.Error(err))
		}
	}
}

func (p *Publisher) publish(ctx context.Context, snap *order.Snapshot) error {
	payload, err := json.Marshal(map[string]interface{}{
		"order_id":     snap.ID,
		"buyer_id":     snap.BuyerID,
		"items":        snap.Lines,
		"total":        snap.Total,
		"currency":     snap.Currency,
		"completed_at": snap.CreatedAt,
	})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(snap.ID), // order id for partition ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.completed")},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}
