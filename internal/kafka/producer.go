package kafka

import (
	"context"
	"encoding/json"

	"ms-events/internal/models"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

func (p *Producer) publish(topic string, event models.Event) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(event.ID),
			Value: msgBytes,
		},
	)
}

// PublishEventCreated streams the event creation to Kafka.
func (p *Producer) PublishEventCreated(event models.Event) error {
	return p.publish(TopicEventCreated, event)
}

// PublishEventUpdated streams the event update to Kafka.
func (p *Producer) PublishEventUpdated(event models.Event) error {
	return p.publish(TopicEventUpdated, event)
}

// PublishEventCanceled streams the event cancellation to Kafka.
func (p *Producer) PublishEventCanceled(event models.Event) error {
	return p.publish(TopicEventCanceled, event)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
