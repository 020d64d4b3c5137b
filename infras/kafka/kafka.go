package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"litrato/config"
	"litrato/infras/otel"
	"litrato/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	batchTimeout = 10 * time.Millisecond
	retryBackoff = time.Second
)

var errNoTopic = errors.New("topic is required")

// Message is published as JSON. Key decides the partition, so all messages of
// one booking stay in order.
type Message struct {
	Key   string
	Value any
}

func (m Message) encode(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to encode message %q: %w", m.Key, err)
	}

	return kafkaGo.Message{Topic: topic, Key: []byte(m.Key), Value: value}, nil
}

// Decode unmarshals the JSON value of msg into T.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to decode message from %s: %w", msg.Topic, err)
	}

	return value, nil
}

// Handler processes one consumed message. The offset is committed once it
// returns, whatever the result.
type Handler func(ctx context.Context, msg kafkaGo.Message) error

type Client interface {
	Send(ctx context.Context, topic string, messages ...Message) error
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error
	Close() error
}

type kafkaClientImpl struct {
	config *config.Config
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Client {
	dialer := &kafkaGo.Dialer{DualStack: true, Timeout: 10 * time.Second}
	transport := &kafkaGo.Transport{}

	if cfg.Kafka.SASL.Username != "" {
		mechanism := plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}

		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: cfg,
		dialer: dialer,
		otel:   ot,
		// the topic travels on each message so one writer serves every topic
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireOne,
			BatchTimeout:           batchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}

func (k *kafkaClientImpl) Send(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if topic == "" {
		return errNoTopic
	}

	scope.SetAttributes(map[string]any{"kafka.topic": topic, "kafka.messages": len(messages)})

	encoded := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.encode(topic)
		if err != nil {
			return err
		}

		encoded = append(encoded, msg)
	}

	if err = k.writer.WriteMessages(ctx, encoded...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send messages to Kafka")

		return fmt.Errorf("failed to send messages to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(encoded)).Msg("Sent messages to Kafka")

	return nil
}

// Consume reads topic as part of consumerGroup until ctx is done. Messages
// are handled one at a time, in partition order.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error {
	if topic == "" {
		return errNoTopic
	}

	if consumerGroup == "" {
		consumerGroup = k.config.Kafka.ConsumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     consumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if ctx.Err() != nil {
			return nil
		}

		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to fetch message from Kafka")

			time.Sleep(retryBackoff)

			continue
		}

		k.handle(ctx, msg, handler)

		if err = reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka offset")
		}
	}
}

func (k *kafkaClientImpl) handle(ctx context.Context, msg kafkaGo.Message, handler Handler) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Consume")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"kafka.topic":     msg.Topic,
		"kafka.partition": msg.Partition,
		"kafka.offset":    msg.Offset,
	})

	if err := handler(ctx, msg); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("topic", msg.Topic).Str("key", string(msg.Key)).Msg("Failed to handle Kafka message")
	}
}
