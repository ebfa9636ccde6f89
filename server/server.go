package server

import (
	"fmt"
	"log"
	"time"

	"github.com/Shopify/sarama"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/streadway/amqp"

	"kurir-pintar/api/config"
	"kurir-pintar/api/routeopt"
	"kurir-pintar/api/store"
)

// Server owns every external collaborator: the Postgres store, Redis
// for the optimize rate limiter, Kafka for audit events, RabbitMQ for
// the dispatch queue and the route-ordering client.
type Server struct {
	cfg       *config.Config
	store     *store.Store
	rdb       *redis.Client
	rabbitmq  *amqp.Connection
	kafka     sarama.SyncProducer
	optimizer *routeopt.Client
}

func NewServer(cfg *config.Config, st *store.Store, opt *routeopt.Client) *Server {
	return &Server{
		cfg:       cfg,
		store:     st,
		optimizer: opt,
	}
}

// InitConnections dials Redis, RabbitMQ and Kafka. RabbitMQ gets a
// retry loop because it is routinely the last container up.
func (s *Server) InitConnections() error {
	s.rdb = redis.NewClient(&redis.Options{
		Addr:     s.cfg.Redis.Addr,
		Password: s.cfg.Redis.Password,
		DB:       s.cfg.Redis.DB,
	})

	var rabbitmqConn *amqp.Connection
	var err error
	for i := 0; i < 5; i++ {
		log.Printf("Attempting to connect to RabbitMQ (attempt %d/5)...", i+1)
		rabbitmqConn, err = amqp.Dial(s.cfg.RabbitMQ.URL)
		if err == nil {
			break
		}
		if i < 4 {
			log.Printf("Failed to connect to RabbitMQ: %v. Retrying in 5 seconds...", err)
			time.Sleep(5 * time.Second)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ after 5 attempts: %v", err)
	}
	s.rabbitmq = rabbitmqConn

	kafkaConfig := sarama.NewConfig()
	kafkaConfig.Producer.Return.Successes = true
	producer, err := sarama.NewSyncProducer(s.cfg.Kafka.Brokers, kafkaConfig)
	if err != nil {
		return fmt.Errorf("failed to create Kafka producer: %v", err)
	}
	s.kafka = producer

	return nil
}

// ErrorHandler converts anything escaping a handler into the one JSON
// error shape the clients know.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now(),
	})
}
