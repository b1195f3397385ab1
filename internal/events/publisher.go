package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// RunEventPublisher publishes quiz run events.
type RunEventPublisher interface {
	PublishRunEvent(ctx context.Context, event *RunEvent) error
	Close() error
}

// PublisherConfig holds configuration for the Kafka publisher.
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// KafkaRunEventPublisher implements RunEventPublisher using Watermill with
// Kafka.
type KafkaRunEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

func NewKafkaRunEventPublisher(config PublisherConfig) (*KafkaRunEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaRunEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

func (p *KafkaRunEventPublisher) PublishRunEvent(ctx context.Context, event *RunEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal run event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("exam", event.Payload.Exam)

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("failed to publish run event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish run event: %w", err)
	}

	p.logger.Info("published run event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)
	return nil
}

func (p *KafkaRunEventPublisher) Close() error {
	return p.publisher.Close()
}

// MockRunEventPublisher stores events in memory for tests and for running
// without a broker.
type MockRunEventPublisher struct {
	mu     sync.Mutex
	events []RunEvent
	logger *slog.Logger
}

func NewMockRunEventPublisher(logger *slog.Logger) *MockRunEventPublisher {
	return &MockRunEventPublisher{logger: logger}
}

func (m *MockRunEventPublisher) PublishRunEvent(ctx context.Context, event *RunEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, *event)
	m.logger.Debug("mock: published run event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

func (m *MockRunEventPublisher) Close() error {
	return nil
}

// PublishedEvents returns a copy of everything published so far.
func (m *MockRunEventPublisher) PublishedEvents() []RunEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RunEvent, len(m.events))
	copy(out, m.events)
	return out
}
