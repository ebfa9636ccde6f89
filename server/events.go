package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/Shopify/sarama"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// logEvent publishes a domain audit event to Kafka. Publish failures
// are the caller's to log; they never fail the request that produced
// the event.
func (s *Server) logEvent(event map[string]interface{}) error {
	if s.kafka == nil {
		return nil
	}
	event["event_id"] = uuid.NewString()
	event["timestamp"] = time.Now().Unix()
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, _, err = s.kafka.SendMessage(&sarama.ProducerMessage{
		Topic: s.cfg.Kafka.Topic,
		Value: sarama.StringEncoder(data),
	})
	return err
}

// publishDispatch drops a freshly created order id onto the durable
// dispatch queue for the courier-assignment consumer.
func (s *Server) publishDispatch(orderID string) {
	if s.rabbitmq == nil {
		return
	}
	ch, err := s.rabbitmq.Channel()
	if err != nil {
		log.Printf("Failed to open dispatch channel: %v", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(s.cfg.RabbitMQ.QueueName, true, false, false, false, nil)
	if err != nil {
		log.Printf("Failed to declare dispatch queue: %v", err)
		return
	}

	err = ch.Publish(
		"",                       // exchange
		s.cfg.RabbitMQ.QueueName, // routing key
		false,                    // mandatory
		false,                    // immediate
		amqp.Publishing{
			ContentType: "text/plain",
			MessageId:   uuid.NewString(),
			Body:        []byte(orderID),
		},
	)
	if err != nil {
		log.Printf("Failed to publish order to dispatch queue: %v", err)
	}
}
