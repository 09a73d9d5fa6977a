package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	dialAttempts      = 5
	publishTimeout    = 5 * time.Second
	maxReconnectDelay = 30 * time.Second
)

var (
	ErrPublisherClosed = errors.New("amqp publisher closed")
	ErrNotConnected    = errors.New("amqp connection not available")
)

// AMQPPublisher publishes notifications to a durable topic exchange. A lost
// connection is re-dialed in the background until Close.
type AMQPPublisher struct {
	url      string
	exchange string
	done     chan struct{}

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

func newAMQPPublisher(url, exchange string) *AMQPPublisher {
	return &AMQPPublisher{url: url, exchange: exchange, done: make(chan struct{})}
}

// DialAMQP connects with backoff and declares the exchange.
func DialAMQP(ctx context.Context, url, exchange string) (*AMQPPublisher, error) {
	p := newAMQPPublisher(url, exchange)
	delay := time.Second
	var lastErr error

	for attempt := 1; attempt <= dialAttempts; attempt++ {
		err := p.connect()
		if err == nil {
			slog.Info("amqp connected", "exchange", exchange, "attempt", attempt)
			return p, nil
		}
		lastErr = err
		slog.Warn("amqp connection attempt failed", "attempt", attempt, "error", err)

		if attempt == dialAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return nil, fmt.Errorf("failed to connect after %d attempts: %w", dialAttempts, lastErr)
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare %s: %w", p.exchange, err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		_ = conn.Close()
		return ErrPublisherClosed
	}
	p.conn, p.ch = conn, ch
	p.mu.Unlock()

	go p.watch(conn.NotifyClose(make(chan *amqp.Error, 1)))
	return nil
}

// watch waits for the connection to drop and re-dials with backoff. A
// graceful close delivers nothing and ends the watch.
func (p *AMQPPublisher) watch(notify <-chan *amqp.Error) {
	reason, ok := <-notify
	if !ok || reason == nil {
		return
	}
	slog.Warn("amqp connection lost", "exchange", p.exchange, "error", reason)

	p.mu.Lock()
	p.conn, p.ch = nil, nil
	p.mu.Unlock()

	delay := time.Second
	for {
		select {
		case <-p.done:
			return
		case <-time.After(delay):
		}

		err := p.connect()
		if err == nil {
			slog.Info("amqp reconnected", "exchange", p.exchange)
			return
		}
		if errors.Is(err, ErrPublisherClosed) {
			return
		}
		slog.Warn("amqp reconnect failed", "exchange", p.exchange, "error", err)
		delay = min(delay*2, maxReconnectDelay)
	}
}

func (p *AMQPPublisher) PublishNotification(ctx context.Context, event NotificationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	if p.ch == nil {
		return ErrNotConnected
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(publishCtx, p.exchange, event.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.CreatedAt,
	})
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.done != nil {
		close(p.done)
	}

	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
