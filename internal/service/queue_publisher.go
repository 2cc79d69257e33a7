// Package queue_publisher provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/feastfleet/feastfleet/internal/queue"
)

// Publisher publishes events to the durable reservation and order
// queues. The zero value is usable; each publish dials the broker,
// declares the target queue idempotently and closes the connection
// again, trading throughput for simplicity on these low-volume paths.
type Publisher struct{}

// PublishReservationRequested enqueues a booking request for the
// booking worker. The HTTP handler acknowledges the client as soon as
// this returns; admission happens asynchronously.
func (Publisher) PublishReservationRequested(ctx context.Context, ev q.ReservationRequested) error {
	return publish(ctx, q.RequestedQueue, ev)
}

// PublishReservationOutcome publishes the terminal decision of one
// booking attempt for the notification consumer.
func (Publisher) PublishReservationOutcome(ctx context.Context, ev q.ReservationOutcome) error {
	return publish(ctx, q.OutcomeQueue, ev)
}

// PublishOrderPlaced announces a persisted food order to downstream
// consumers.
func (Publisher) PublishOrderPlaced(ctx context.Context, ev q.OrderPlaced) error {
	return publish(ctx, q.OrdersQueue, ev)
}

// publish marshals the event and sends it to the named durable queue.
// The function attempts to be robust and to never panic; any error is
// logged and returned so the caller can choose to ignore it. Messages
// are marked as persistent.
func publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
