package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// DataLoadedQueue carries one message per committed seed run.
const DataLoadedQueue = "data_loaded_queue"

// DataLoadedEvent announces that a seed run committed.
type DataLoadedEvent struct {
	RunID       string    `json:"run_id"`
	Files       []string  `json:"files"`
	CompletedAt time.Time `json:"completed_at"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the data loaded queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected and %s declared.", DataLoadedQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareQueue(ch *amqp.Channel) (amqp.Queue, error) {
	queue, err := ch.QueueDeclare(
		DataLoadedQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return queue, fmt.Errorf("failed to declare %s: %w", DataLoadedQueue, err)
	}
	return queue, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishDataLoaded publishes event as a persistent JSON message.
func (c *Client) PublishDataLoaded(event DataLoadedEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal data loaded event: %w", err)
	}

	err = c.channel.Publish(
		"", // default exchange
		DataLoadedQueue,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    event.RunID,
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Printf(" [x] Sent data loaded event: %s", body)
	return nil
}

// ConsumeDataLoaded registers handler for data loaded events. Messages are
// processed on a separate goroutine until the channel closes. A message the
// handler accepts is acked; a message that cannot be decoded is dropped; a
// handler error requeues the message.
func (c *Client) ConsumeDataLoaded(handler func(DataLoadedEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for data loaded events on %s", queue.Name)

	go func() {
		for msg := range msgs {
			settle(msg, Dispatch(msg.Body, handler))
		}
	}()
	return nil
}

// Outcome is the settlement decided for one delivery.
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Requeue
)

// Dispatch decodes body and passes the event to handler.
func Dispatch(body []byte, handler func(DataLoadedEvent) error) Outcome {
	var event DataLoadedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Discarding malformed data loaded event: %v", err)
		return Drop
	}
	if err := handler(event); err != nil {
		log.Printf("Error processing data loaded event %s: %v", event.RunID, err)
		return Requeue
	}
	return Ack
}

func settle(msg amqp.Delivery, outcome Outcome) {
	var err error
	switch outcome {
	case Ack:
		err = msg.Ack(false)
	case Drop:
		err = msg.Nack(false, false)
	case Requeue:
		err = msg.Nack(false, true)
	}
	if err != nil {
		log.Printf("Error settling message %d: %v", msg.DeliveryTag, err)
	}
}
