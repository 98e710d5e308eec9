package messaging

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/streadway/amqp"

	"github.com/saiindkan/sweets-n-snacks-production/internal/events"
)

type EventHandler func(event events.OrderEvent) error

type Consumer struct {
	client       *RabbitMQClient
	queueName    string
	consumerName string
}

func NewConsumer(client *RabbitMQClient, queueName, consumerName string) *Consumer {
	return &Consumer{
		client:       client,
		queueName:    queueName,
		consumerName: consumerName,
	}
}

// ConsumeEvents binds the queue to the routing keys and dispatches each
// delivery to the handler. Failed deliveries are re-published once per
// attempt up to the redelivery cap, then dead-lettered.
func (c *Consumer) ConsumeEvents(routingKeys []string, handler EventHandler) error {
	if !c.client.IsConnected() {
		return fmt.Errorf("no connection to RabbitMQ")
	}

	channel := c.client.Channel()

	queue, err := channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("queue declare error: %v", err)
	}

	for _, routingKey := range routingKeys {
		err = channel.QueueBind(
			queue.Name,
			routingKey,
			c.client.config.Exchange,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("queue bind error (%s): %v", routingKey, err)
		}
		log.Printf("Queue %s bound to routing key: %s", queue.Name, routingKey)
	}

	messages, err := channel.Consume(
		queue.Name,
		c.consumerName,
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume start error: %v", err)
	}

	log.Printf("Consuming events on queue: %s", queue.Name)

	go func() {
		for {
			select {
			case msg := <-messages:
				c.handleMessage(msg, handler)
			case <-c.client.Context().Done():
				log.Printf("Consumer stopped: %s", c.consumerName)
				return
			}
		}
	}()

	return nil
}

func (c *Consumer) handleMessage(msg amqp.Delivery, handler EventHandler) {
	var event events.OrderEvent

	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Event deserialize error: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := handler(event); err != nil {
		log.Printf("Event process error (%s): %v", event.EventType, err)

		if c.shouldRetry(msg) {
			c.republish(msg, event)
		} else {
			log.Printf("Redelivery cap reached, dead-lettering: %s", event.EventType)
			msg.Nack(false, false)
		}
		return
	}

	msg.Ack(false)
}

const (
	maxRedeliveries       = 3
	redeliveryCountHeader = "x-redelivery-count"
)

func (c *Consumer) shouldRetry(msg amqp.Delivery) bool {
	return redeliveryCount(msg.Headers) < maxRedeliveries
}

// redeliveryCount reads the attempt counter stamped by republish, falling
// back to the broker's x-death count for messages routed through a
// dead-letter exchange.
func redeliveryCount(headers amqp.Table) int64 {
	if v, ok := headers[redeliveryCountHeader]; ok {
		switch n := v.(type) {
		case int64:
			return n
		case int32:
			return int64(n)
		case int:
			return int64(n)
		}
	}

	if xDeath, ok := headers["x-death"]; ok {
		if deathArray, ok := xDeath.([]interface{}); ok && len(deathArray) > 0 {
			if death, ok := deathArray[0].(amqp.Table); ok {
				if count, ok := death["count"].(int64); ok {
					return count
				}
			}
		}
	}

	return 0
}

// retryHeaders copies the delivery headers with the attempt counter bumped,
// so the cap engages even though republishing bypasses any dead-letter
// exchange.
func retryHeaders(headers amqp.Table) amqp.Table {
	next := amqp.Table{}
	for key, value := range headers {
		next[key] = value
	}
	next[redeliveryCountHeader] = redeliveryCount(headers) + 1
	return next
}

func (c *Consumer) republish(msg amqp.Delivery, event events.OrderEvent) {
	channel := c.client.Channel()

	time.Sleep(2 * time.Second)

	err := channel.Publish(
		msg.Exchange,
		msg.RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  msg.ContentType,
			Body:         msg.Body,
			DeliveryMode: msg.DeliveryMode,
			Headers:      retryHeaders(msg.Headers),
		},
	)

	if err != nil {
		log.Printf("Retry publish error: %v", err)
		msg.Nack(false, false)
		return
	}

	msg.Ack(false)
	log.Printf("Re-published for retry: %s", event.EventType)
}
