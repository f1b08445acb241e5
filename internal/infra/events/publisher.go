// Package events публикует доменные события бронирования в RabbitMQ.
// Публикация — fire-and-forget: ошибки логируются вызывающей стороной
// и никогда не прерывают основную операцию.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPublish возвращается при ошибке публикации события
var ErrPublish = errors.New("events: failed to publish")

// Publisher публикует события в очереди RabbitMQ
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher подключается к брокеру и объявляет очереди событий.
// Очереди durable — сообщения переживают перезапуск брокера.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrPublish, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrPublish, err)
	}

	for _, queue := range []string{QueueBookingCreated, QueueBookingCancelled, QueueBookingMoved} {
		if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = channel.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("%w: declare queue %s: %v", ErrPublish, queue, err)
		}
	}

	return &Publisher{conn: conn, channel: channel}, nil
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// publish сериализует событие в JSON и публикует persistent-сообщение
// в очередь с тем же именем, что и routing key
func (p *Publisher) publish(ctx context.Context, queue string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.channel.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		return fmt.Errorf("%w: queue=%s: %v", ErrPublish, queue, err)
	}

	return nil
}

// PublishBookingCreated публикует событие о созданном бронировании
func (p *Publisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	return p.publish(ctx, QueueBookingCreated, event)
}

// PublishBookingCancelled публикует событие об отмене бронирования
func (p *Publisher) PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return p.publish(ctx, QueueBookingCancelled, event)
}

// PublishBookingMoved публикует событие о переносе бронирования
func (p *Publisher) PublishBookingMoved(ctx context.Context, event BookingMovedEvent) error {
	return p.publish(ctx, QueueBookingMoved, event)
}

// NopPublisher используется, когда публикация событий выключена в конфигурации
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, BookingCreatedEvent) error { return nil }

func (NopPublisher) PublishBookingCancelled(context.Context, BookingCancelledEvent) error {
	return nil
}

func (NopPublisher) PublishBookingMoved(context.Context, BookingMovedEvent) error { return nil }
