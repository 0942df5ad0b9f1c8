package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
)

type ServiceConfig struct {
	KafkaEnabled bool
	KafkaBrokers []string
	Topic        string
	GroupID      string
	InstanceID   string
}

// Service owns the local Hub and, when Kafka is enabled, the publisher and
// relay that fan notifications out across instances.
type Service struct {
	config    *ServiceConfig
	hub       *Hub
	publisher *KafkaPublisher
	relay     *KafkaRelay

	isRunning bool
	mu        sync.Mutex
}

func NewService(config *ServiceConfig) (*Service, error) {
	s := &Service{config: config, hub: NewHub()}
	if !config.KafkaEnabled {
		log.Printf("📣 Notification service running in-process only")
		return s, nil
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = config.KafkaBrokers
	producerConfig.Topic = config.Topic
	producerConfig.Origin = config.InstanceID

	publisher, err := NewKafkaPublisher(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification publisher: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = config.KafkaBrokers
	consumerConfig.Topic = config.Topic
	consumerConfig.GroupID = config.GroupID + "-" + config.InstanceID

	relay, err := NewKafkaRelay(consumerConfig, s.hub)
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("failed to create notification relay: %w", err)
	}

	s.publisher = publisher
	s.relay = relay
	return s, nil
}

// Notifier returns the channel services should publish on
func (s *Service) Notifier() Notifier {
	if s.publisher != nil {
		return s.publisher
	}
	return s.hub
}

func (s *Service) Hub() *Hub {
	return s.hub
}

func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("notification service is already running")
	}
	if s.relay != nil {
		s.relay.Start(ctx)
	}
	s.isRunning = true
	return nil
}

func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	if s.relay != nil {
		if err := s.relay.Stop(); err != nil {
			log.Printf("Error stopping relay: %v", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			log.Printf("Error closing publisher: %v", err)
		}
	}
	s.isRunning = false
	return nil
}
