package bus

import (
	"context"
	"encoding/json"

	"github.com/RodolfoBonis/spooliq/core/entities"
	"github.com/RodolfoBonis/spooliq/core/errors"
)

// Handler processes one envelope off a topic. A nil return acks the
// delivery; a non-nil return drives the retry/DLQ decision in Consume.
type Handler func(ctx context.Context, env Envelope) error

// Consume starts a bounded-concurrency consumer loop on topic's queue.
// Consumers commit (ack) only after the handler succeeds (spec §4.3); on
// failure the envelope's attemptNumber is incremented and the message is
// republished to the retry topic, or to the DLQ once maxAttempts is
// exhausted, classifying the error via errors.IsRetryable so validation/
// poison errors skip straight to the DLQ without consuming a retry.
func (b *Bus) Consume(ctx context.Context, topic string, concurrency int, handler Handler) error {
	deliveries, err := b.channel.Consume(queueName(topic), "", false, false, false, false, nil)
	if err != nil {
		return errors.NewAppError(entities.ErrService, "failed to start consumer", map[string]interface{}{"topic": topic}, err)
	}

	sem := make(chan struct{}, concurrency)

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}

			sem <- struct{}{}
			go func() {
				defer func() { <-sem }()
				b.handleDelivery(ctx, topic, handler, delivery.Body, delivery.Ack, delivery.Nack)
			}()
		}
	}
}

func (b *Bus) handleDelivery(ctx context.Context, topic string, handler Handler, body []byte, ack func(bool) error, nack func(bool, bool) error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		b.log.LogError(ctx, "poison message: undecodable envelope", errors.PoisonMessageError(err.Error(), map[string]interface{}{"topic": topic}))
		_ = ack(false)
		return
	}

	err := handler(ctx, env)
	if err == nil {
		_ = ack(false)
		return
	}

	if !errors.IsRetryable(err) {
		_ = b.PublishDLQ(ctx, topic, env, errorKind(err), err.Error())
		_ = ack(false)
		return
	}

	if env.Exhausted() {
		_ = b.PublishDLQ(ctx, topic, env, errorKind(err), err.Error())
		_ = ack(false)
		return
	}

	if retryErr := b.PublishRetry(ctx, topic, env); retryErr != nil {
		b.log.LogError(ctx, "failed to republish to retry topic", retryErr)
		_ = nack(false, true)
		return
	}

	_ = ack(false)
}

func errorKind(err error) string {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.Type.String()
	}
	return "unknown"
}
