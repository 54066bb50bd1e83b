package main

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"

	"github.com/muhammadolammi/resumeascode/internal/logger"
)

// publisher is the part of *amqp.Channel the worker publishes through.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

func statusRoutingKey(requestID string) string {
	return "request." + requestID
}

func declareTopology(ch *amqp.Channel, queue, exchange string) error {
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return errors.Wrapf(err, "failed to declare queue %s", queue)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return errors.Wrapf(err, "failed to declare exchange %s", exchange)
	}
	return nil
}

func publishJSON(pub publisher, exchange, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode message")
	}
	return pub.Publish(exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// publishStatusUpdate announces a request's status. Failures are logged and
// never fail the request itself.
func publishStatusUpdate(ctx context.Context, pub publisher, exchange string, update StatusUpdate) {
	err := publishJSON(pub, exchange, statusRoutingKey(update.RequestID), update)
	if err != nil {
		logger.G(ctx).WithError(err).WithField("request_id", update.RequestID).Warn("failed to publish status update")
	}
}
