package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/webstore/checkout-orchestrator/internal/models"
)

const orderRecordedTopic = "order.recorded"

// Publisher announces recorded orders on Kafka so downstream consumers do not
// have to poll the order store.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(kafkaBrokers string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(kafkaBrokers),
			Topic:    orderRecordedTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) PublishOrderRecorded(ctx context.Context, order *models.Order) error {
	event := models.OrderRecordedEvent{
		OrderID:       order.ID,
		PaymentID:     order.PaymentID,
		Status:        order.Status,
		Total:         order.Total,
		CustomerEmail: order.Customer.Email,
		CreatedAt:     order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling order event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
