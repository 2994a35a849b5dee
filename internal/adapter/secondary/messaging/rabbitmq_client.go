package messaging

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/cashflow/payments-api/internal/port/output"
)

const (
	ExchangeName  = "payments"
	QueueName     = "payment_events"
	PrefetchCount = 1 // Process one message at a time per worker
)

// RabbitMQClient is a secondary adapter that implements the
// PaymentEventPublisher output port
type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

// NewRabbitMQClient creates a new RabbitMQ client (returns interface for ports)
func NewRabbitMQClient(amqpURL string, logger *zap.Logger) (output.PaymentEventPublisher, error) {
	return NewRabbitMQClientConcrete(amqpURL, logger)
}

// NewRabbitMQClientConcrete creates a new RabbitMQ client (returns concrete type for workers)
func NewRabbitMQClientConcrete(amqpURL string, logger *zap.Logger) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Declare exchange
	err = channel.ExchangeDeclare(
		ExchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Declare queue
	_, err = channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// Bind the queue to every lifecycle routing key
	for _, kind := range []output.PaymentEventKind{
		output.PaymentEventCreated,
		output.PaymentEventApproved,
		output.PaymentEventCancelled,
	} {
		if err := channel.QueueBind(QueueName, string(kind), ExchangeName, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to bind queue: %w", err)
		}
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		logger:  logger,
	}, nil
}

// PublishPaymentEvent publishes one lifecycle event, routed by its kind
func (c *RabbitMQClient) PublishPaymentEvent(event output.PaymentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		ExchangeName,
		string(event.Kind),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent, // Make message persistent
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	c.logger.Debug("published payment event",
		zap.String("event", string(event.Kind)),
		zap.String("payment_id", event.PaymentID.String()))
	return nil
}

// ConsumePaymentEvents starts consuming lifecycle events. Malformed messages
// are dropped; handler failures requeue the message for retry.
func (c *RabbitMQClient) ConsumePaymentEvents(handler func(output.PaymentEvent) error) error {
	// Set QoS to process one message at a time
	err := c.channel.Qos(
		PrefetchCount,
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		QueueName,
		"",    // consumer tag
		false, // auto-ack (we'll manually ack after processing)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("started consuming payment events")

	go func() {
		for msg := range msgs {
			var event output.PaymentEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("dropping malformed event", zap.Error(err))
				msg.Nack(false, false)
				continue
			}

			if err := handler(event); err != nil {
				c.logger.Error("handling payment event failed",
					zap.String("event", string(event.Kind)),
					zap.String("payment_id", event.PaymentID.String()),
					zap.Error(err))
				msg.Nack(false, true) // Requeue for retry
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// Close closes the RabbitMQ connection
func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
