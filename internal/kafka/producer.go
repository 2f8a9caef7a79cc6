package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type Config struct {
	Broker string
	Topic  string
}

// messageWriter is the subset of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// event is the JSON value published for every dispatched notification.
type event struct {
	ChatID string    `json:"chat_id"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Producer publishes notification texts to a topic so other services can follow them.
type Producer struct {
	writer messageWriter
	cfg    Config
	chatID string
	now    func() time.Time
	dial   func(ctx context.Context, network, address string) (*kafka.Conn, error)
}

func NewProducer(cfg Config, chatID string) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
	return newProducer(w, cfg, chatID)
}

func newProducer(w messageWriter, cfg Config, chatID string) *Producer {
	return &Producer{writer: w, cfg: cfg, chatID: chatID, now: time.Now, dial: kafka.DialContext}
}

// Ping checks that the broker answers and knows the topic. The writer itself
// connects lazily, so this is the only place a bad broker address shows up early.
func (p *Producer) Ping(ctx context.Context) error {
	conn, err := p.dial(ctx, "tcp", p.cfg.Broker)
	if err != nil {
		return fmt.Errorf("dial kafka broker %s: %w", p.cfg.Broker, err)
	}
	defer conn.Close()

	if _, err := conn.ReadPartitions(p.cfg.Topic); err != nil {
		return fmt.Errorf("read partitions of topic %s: %w", p.cfg.Topic, err)
	}
	return nil
}

func (p *Producer) Name() string { return "kafka" }

func (p *Producer) Send(ctx context.Context, text string) error {
	sentAt := p.now().UTC()
	value, err := json.Marshal(event{ChatID: p.chatID, Text: text, SentAt: sentAt})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(p.chatID),
		Value: value,
		Time:  sentAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
