// Package events publishes booking lifecycle notifications for the
// notification collaborator. Publishing happens after commit and never fails
// the request that triggered it.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"litrato/config"
	"litrato/infras/kafka"
	"litrato/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	BookingRequestCreated   = "booking_request.created"
	BookingRequestAccepted  = "booking_request.accepted"
	BookingRequestRejected  = "booking_request.rejected"
	BookingRequestCancelled = "booking_request.cancelled"
	BookingExtended         = "booking.extended"
	BookingStatusChanged    = "booking.status_changed"
)

// Names lists every event this service emits.
var Names = []string{
	BookingRequestCreated,
	BookingRequestAccepted,
	BookingRequestRejected,
	BookingRequestCancelled,
	BookingExtended,
	BookingStatusChanged,
}

type Envelope struct {
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	Actor      string    `json:"actor"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, name, key, actor string, payload any)
}

type publisherImpl struct {
	cfg    *config.Config
	client kafka.Client
}

func New(cfg *config.Config, client kafka.Client) Publisher {
	return &publisherImpl{
		cfg:    cfg,
		client: client,
	}
}

// Topic maps an event name onto its kafka topic.
func Topic(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return strings.Join([]string{prefix, name}, ".")
}

// Publish sends the event in the background so a slow broker never holds
// the request.
func (p *publisherImpl) Publish(ctx context.Context, name, key, actor string, payload any) {
	envelope := Envelope{
		Name:       name,
		OccurredAt: timezone.Now(),
		Actor:      actor,
		Payload:    payload,
	}

	if !p.cfg.Kafka.Enable {
		log.Debug().Str("event", name).Str("key", key).Msg("kafka disabled, event dropped")

		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		topic := Topic(p.cfg.Kafka.TopicPrefix, name)
		if err := p.client.Send(c, topic, kafka.Message{Key: key, Value: envelope}); err != nil {
			log.Error().Err(err).Str("event", name).Str("key", key).Msg("failed to publish event")
		}
	}()
}

// Decode reads the envelope carried by a consumed message.
func Decode(msg kafkaGo.Message) (Envelope, error) {
	envelope, err := kafka.Decode[Envelope](msg)
	if err != nil {
		return envelope, fmt.Errorf("failed to decode event: %w", err)
	}

	if envelope.Name == "" {
		return envelope, fmt.Errorf("event on %s has no name", msg.Topic)
	}

	return envelope, nil
}

// Listen consumes every event topic until ctx is done and hands each
// envelope to handle.
func Listen(ctx context.Context, cfg *config.Config, client kafka.Client, handle func(key string, envelope Envelope)) {
	var wg sync.WaitGroup

	for _, name := range Names {
		wg.Add(1)

		go func(topic string) {
			defer wg.Done()

			err := client.Consume(ctx, cfg.Kafka.ConsumerGroup, topic, func(_ context.Context, msg kafkaGo.Message) error {
				envelope, err := Decode(msg)
				if err != nil {
					return err
				}

				handle(string(msg.Key), envelope)

				return nil
			})
			if err != nil {
				log.Error().Err(err).Str("topic", topic).Msg("stopped consuming events")
			}
		}(Topic(cfg.Kafka.TopicPrefix, name))
	}

	wg.Wait()
}
