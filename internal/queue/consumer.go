package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Handler applies one decoded event.
type Handler func(ctx context.Context, ev RecipeLinkEvent) error

// errBadMessage marks deliveries that can never succeed.
var errBadMessage = errors.New("bad message")

// Declare makes sure the durable recipe.link queue exists.  Publisher and
// consumer both call it; declaring is idempotent.
func Declare(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(RecipeLinkQueue, true, false, false, false, nil)
	return err
}

// StartRecipeLinkConsumer connects to RabbitMQ and feeds every event on the
// recipe.link queue to h.  It runs a reconnect loop with exponential backoff
// and returns only when ctx is cancelled.
func StartRecipeLinkConsumer(ctx context.Context, url string, h Handler, log logrus.FieldLogger) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.WithError(err).Warnf("link-consumer: dial failed; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, h, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).Warn("link-consumer: consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, h Handler, log logrus.FieldLogger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.WithError(err).Warn("link-consumer: set QoS failed")
	}
	if err := Declare(ch); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(RecipeLinkQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			err := handleMessage(ctx, d.Body, h)
			switch {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, errBadMessage):
				log.WithError(err).Error("link-consumer: dropping message")
				_ = d.Nack(false, false)
			default:
				// one redelivery; after that the reconciler picks it up
				log.WithError(err).WithField("redelivered", d.Redelivered).Warn("link-consumer: apply failed")
				_ = d.Nack(false, !d.Redelivered)
			}
		}
	}
}

func handleMessage(ctx context.Context, body []byte, h Handler) error {
	var ev RecipeLinkEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: unmarshal: %v", errBadMessage, err)
	}
	if _, _, err := ev.IDs(); err != nil {
		return fmt.Errorf("%w: %v", errBadMessage, err)
	}
	return h(ctx, ev)
}
