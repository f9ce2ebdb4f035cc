package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ipede/app-admin-service/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher publishes domain notifications to a durable topic exchange.
// It implements domain.NotificationPublisher. The envelope's subject is the
// routing key, so consumers can bind per event kind.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewAMQPPublisher connects to the broker and declares the exchange
func NewAMQPPublisher(amqpURL, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish sends the notification envelope and returns its message id
func (p *AMQPPublisher) Publish(ctx context.Context, notification *domain.Notification) (string, error) {
	body, err := json.Marshal(notification)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		notification.Subject, // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    notification.ID,
			Timestamp:    notification.OccurredAt,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.Debug("notification published",
		zap.String("message_id", notification.ID),
		zap.String("subject", notification.Subject))
	return notification.ID, nil
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	var err error
	if p.channel != nil {
		err = p.channel.Close()
	}
	if p.conn != nil {
		if closeErr := p.conn.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}
