// Package service holds the background consistency work around the
// document store: best-effort owner-list linking, the RabbitMQ repair
// publisher, and the periodic reconciliation sweep.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/recipe-blog-api/internal/queue"
)

// AMQPPublisher publishes RecipeLinkEvents to the recipe.link queue.  A
// connection is opened per publish; repairs are rare.
type AMQPPublisher struct {
	URL string
	Log logrus.FieldLogger
}

// PublishRecipeLink sends ev as a persistent JSON message.  Errors are
// logged and returned so the caller can decide to ignore them.
func (p *AMQPPublisher) PublishRecipeLink(ctx context.Context, ev queue.RecipeLinkEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.WithError(err).Warn("rabbitmq: dial failed")
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.WithError(err).Warn("rabbitmq: channel open failed")
		return fmt.Errorf("channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := queue.Declare(ch); err != nil {
		p.Log.WithError(err).Warn("rabbitmq: queue declare failed")
		return fmt.Errorf("declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.RecipeLinkQueue, false, false, pub); err != nil {
		p.Log.WithError(err).Warn("rabbitmq: publish failed")
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
