// Package bus generalizes the teacher's single-purpose
// core/services/amqp_service.go into the durable topic/retry/DLQ
// abstraction spec §4.3 and §6.1 require: idempotent per-order publish,
// manual-ack consumption, and automatic retry-then-DLQ routing on handler
// failure.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/RodolfoBonis/spooliq/core/config"
	"github.com/RodolfoBonis/spooliq/core/entities"
	"github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

// Bus owns a single AMQP connection/channel pair and the topic/retry/DLQ
// topology declared on top of it.
type Bus struct {
	conn           *amqp.Connection
	channel        *amqp.Channel
	log            logger.Logger
	publishTimeout time.Duration
	backoffBase    time.Duration
}

// NewBus dials RabbitMQ and opens the channel the rest of the component's
// lifetime will publish/consume through, mirroring the teacher's
// StartAmqpConnection/StartChannelConnection pair but surfacing errors
// instead of os.Exit-ing the process.
func NewBus(log logger.Logger, cfg *config.AppConfig) (*Bus, error) {
	conn, err := amqp.Dial(cfg.AmqpConnection)
	if err != nil {
		appErr := errors.NewAppError(entities.ErrService, err.Error(), map[string]interface{}{"amqp_url": cfg.AmqpConnection}, err)
		log.LogError(context.Background(), "failed to connect to RabbitMQ", appErr)
		return nil, appErr
	}

	channel, err := conn.Channel()
	if err != nil {
		appErr := errors.NewAppError(entities.ErrService, err.Error(), nil, err)
		log.LogError(context.Background(), "failed to open AMQP channel", appErr)
		return nil, appErr
	}

	if err := channel.Qos(32, 0, false); err != nil {
		return nil, errors.NewAppError(entities.ErrService, "failed to set channel QoS", nil, err)
	}

	log.Info(context.Background(), "connected to RabbitMQ", nil)

	return &Bus{
		conn:           conn,
		channel:        channel,
		log:            log,
		publishTimeout: cfg.BusPublishTimeout,
		backoffBase:    500 * time.Millisecond,
	}, nil
}

// Close tears down the channel and connection.
func (b *Bus) Close() error {
	if err := b.channel.Close(); err != nil {
		return err
	}
	return b.conn.Close()
}

// Ping satisfies core/health.Checker.
func (b *Bus) Ping(ctx context.Context) error {
	if b.conn.IsClosed() {
		return fmt.Errorf("amqp connection is closed")
	}
	return nil
}

func exchangeName(topic string) string   { return topic + ".exchange" }
func queueName(topic string) string      { return topic + ".queue" }
func retryExchange(topic string) string  { return RetryTopic(topic) + ".exchange" }
func retryQueueName(topic string) string { return RetryTopic(topic) + ".queue" }
func dlqExchange(topic string) string    { return DLQTopic(topic) + ".exchange" }
func dlqQueueName(topic string) string   { return DLQTopic(topic) + ".queue" }

// DeclareTopic declares the main topic exchange/queue plus its retry and
// DLQ infrastructure. The retry queue dead-letters back into the main
// exchange once each message's per-message TTL (the computed `scheduleAt`
// backoff) expires — the standard RabbitMQ delayed-retry idiom.
func (b *Bus) DeclareTopic(topic string) error {
	if err := b.channel.ExchangeDeclare(exchangeName(topic), "topic", true, false, false, false, nil); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to declare exchange", map[string]interface{}{"topic": topic}, err)
	}
	if _, err := b.channel.QueueDeclare(queueName(topic), true, false, false, false, nil); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to declare queue", map[string]interface{}{"topic": topic}, err)
	}
	if err := b.channel.QueueBind(queueName(topic), "#", exchangeName(topic), false, nil); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to bind queue", map[string]interface{}{"topic": topic}, err)
	}

	if err := b.channel.ExchangeDeclare(retryExchange(topic), "topic", true, false, false, false, nil); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to declare retry exchange", map[string]interface{}{"topic": topic}, err)
	}
	retryArgs := amqp.Table{
		"x-dead-letter-exchange": exchangeName(topic),
	}
	if _, err := b.channel.QueueDeclare(retryQueueName(topic), true, false, false, false, retryArgs); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to declare retry queue", map[string]interface{}{"topic": topic}, err)
	}
	if err := b.channel.QueueBind(retryQueueName(topic), "#", retryExchange(topic), false, nil); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to bind retry queue", map[string]interface{}{"topic": topic}, err)
	}

	if err := b.channel.ExchangeDeclare(dlqExchange(topic), "topic", true, false, false, false, nil); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to declare dlq exchange", map[string]interface{}{"topic": topic}, err)
	}
	if _, err := b.channel.QueueDeclare(dlqQueueName(topic), true, false, false, false, nil); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to declare dlq queue", map[string]interface{}{"topic": topic}, err)
	}
	if err := b.channel.QueueBind(dlqQueueName(topic), "#", dlqExchange(topic), false, nil); err != nil {
		return errors.NewAppError(entities.ErrService, "failed to bind dlq queue", map[string]interface{}{"topic": topic}, err)
	}

	return nil
}

// Publish performs an idempotent-by-key publish: routing key is the orderId
// so the same order always lands in the same queue (spec §4.3 "idempotent
// publish keyed by orderId").
func (b *Bus) Publish(ctx context.Context, topic string, env Envelope) error {
	ctx, cancel := context.WithTimeout(ctx, b.publishTimeout)
	defer cancel()

	body, err := json.Marshal(env)
	if err != nil {
		return errors.PoisonMessageError("failed to marshal envelope", map[string]interface{}{"topic": topic})
	}

	routingKey := env.OrderID
	if env.Key != "" {
		routingKey = env.Key
	}

	err = b.channel.PublishWithContext(ctx, exchangeName(topic), routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return errors.UpstreamUnavailableError("failed to publish message", err, map[string]interface{}{"topic": topic, "order_id": env.OrderID})
	}

	return nil
}

// PublishRetry routes env to its topic's retry queue with a per-message TTL
// equal to the computed `scheduleAt` backoff, so it dead-letters back into
// the main topic once the delay elapses (spec §4.3).
func (b *Bus) PublishRetry(ctx context.Context, topic string, env Envelope) error {
	ctx, cancel := context.WithTimeout(ctx, b.publishTimeout)
	defer cancel()

	next := env.NextAttempt(b.backoffBase)

	body, err := json.Marshal(next)
	if err != nil {
		return errors.PoisonMessageError("failed to marshal retry envelope", map[string]interface{}{"topic": topic})
	}

	var ttl time.Duration
	if next.ScheduleAt != nil {
		ttl = time.Until(*next.ScheduleAt)
		if ttl < 0 {
			ttl = 0
		}
	}

	routingKey := env.OrderID

	err = b.channel.PublishWithContext(ctx, retryExchange(topic), routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
		Expiration:   strconv.FormatInt(ttl.Milliseconds(), 10),
		Timestamp:    time.Now(),
	})
	if err != nil {
		return errors.UpstreamUnavailableError("failed to publish retry message", err, map[string]interface{}{"topic": topic, "order_id": env.OrderID})
	}

	return nil
}

// PublishDLQ routes env to its topic's DLQ with the full failure metadata
// spec §6.1 requires (`failedAt`, `errorKind`, `errorMessage`).
func (b *Bus) PublishDLQ(ctx context.Context, topic string, env Envelope, errorKind, errorMessage string) error {
	ctx, cancel := context.WithTimeout(ctx, b.publishTimeout)
	defer cancel()

	record := FailureMetadata{
		Envelope:     env,
		FailedAt:     time.Now(),
		ErrorKind:    errorKind,
		ErrorMessage: errorMessage,
	}

	body, err := json.Marshal(record)
	if err != nil {
		return errors.PoisonMessageError("failed to marshal dlq record", map[string]interface{}{"topic": topic})
	}

	routingKey := env.OrderID

	err = b.channel.PublishWithContext(ctx, dlqExchange(topic), routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return errors.FatalError("failed to publish dlq record", err, map[string]interface{}{"topic": topic, "order_id": env.OrderID})
	}

	b.log.Warning(ctx, "message routed to dlq", map[string]interface{}{
		"topic":    topic,
		"order_id": env.OrderID,
		"kind":     errorKind,
	})

	return nil
}

// Module provides the shared Bus instance.
var Module = fx.Module("bus",
	fx.Provide(NewBus),
	fx.Invoke(func(lc fx.Lifecycle, b *Bus) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return b.Close()
			},
		})
	}),
)
