package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topic            string
	SessionTimeoutMs int
	HeartbeatMs      int
	RetryBackoffMs   int
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "etik-station",
		Topic:            "etik-station-notifications",
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		RetryBackoffMs:   100,
	}
}

// KafkaRelay consumes the notification topic and republishes every
// message on a local Notifier (normally the instance's Hub). Each
// instance must use its own consumer group so that all of them see
// every message.
type KafkaRelay struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	target        Notifier
	wg            sync.WaitGroup
	cancel        context.CancelFunc
}

func NewKafkaRelay(config *ConsumerConfig, target Notifier) (*KafkaRelay, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	// Toasts are only relevant while they are fresh
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaRelay{
		consumerGroup: consumerGroup,
		config:        config,
		target:        target,
	}, nil
}

// Start runs the relay until ctx is cancelled or Stop is called
func (kr *KafkaRelay) Start(ctx context.Context) {
	ctx, kr.cancel = context.WithCancel(ctx)
	log.Printf("📥 Starting notification relay for topic %s (group %s)", kr.config.Topic, kr.config.GroupID)

	go func() {
		for err := range kr.consumerGroup.Errors() {
			log.Printf("📥 Consumer group error: %v", err)
		}
	}()

	handler := &relayHandler{target: kr.target}
	kr.wg.Add(1)
	go func() {
		defer kr.wg.Done()
		for {
			if err := kr.consumerGroup.Consume(ctx, []string{kr.config.Topic}, handler); err != nil {
				log.Printf("📥 Relay error consuming messages: %v", err)
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
				}
			}
			if ctx.Err() != nil {
				log.Printf("📥 Notification relay shutting down")
				return
			}
		}
	}()
}

func (kr *KafkaRelay) Stop() error {
	if kr.cancel != nil {
		kr.cancel()
	}
	kr.wg.Wait()

	if err := kr.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	log.Println("📥 Notification relay stopped")
	return nil
}

type relayHandler struct {
	target Notifier
}

func (h *relayHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *relayHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *relayHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				log.Printf("📥 Relay: skipping message at offset %d: %v", message.Offset, err)
			}
			// Malformed messages are marked too; they will never decode
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *relayHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var n Notification
	if err := json.Unmarshal(message.Value, &n); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return h.target.Publish(ctx, n)
}
