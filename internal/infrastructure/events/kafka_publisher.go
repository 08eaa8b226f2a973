package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/elbaul-api/internal/application/order"
	"github.com/jhoicas/elbaul-api/pkg/config"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

var _ order.EventPublisher = (*KafkaPublisher)(nil)

var (
	ErrBufferFull      = errors.New("events: buffer de publicación lleno")
	ErrPublisherClosed = errors.New("events: publicador cerrado")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica eventos de órdenes de forma asíncrona: Publish encola y una goroutine escribe.
type KafkaPublisher struct {
	w        messageWriter
	prefix   string
	producer string
	log      *logger.Logger

	mu     sync.RWMutex
	closed bool
	inbox  chan kafka.Message
	done   chan struct{}
}

func NewKafkaPublisher(cfg config.KafkaConfig, log *logger.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, cfg, log)
}

func newKafkaPublisher(w messageWriter, cfg config.KafkaConfig, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Nop()
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = 256
	}
	p := &KafkaPublisher{
		w:        w,
		prefix:   cfg.TopicPrefix,
		producer: cfg.ClientID,
		log:      log.Named("kafka"),
		inbox:    make(chan kafka.Message, size),
		done:     make(chan struct{}),
	}
	go p.loop()
	return p
}

// Topic nombre del topic para un tipo de evento, p. ej. elbaul.orden.creada.
func (p *KafkaPublisher) Topic(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt order.OrderEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     evt.Type,
		EventVersion:  1,
		OccurredAt:    evt.OccurredAt.UTC(),
		Producer:      p.producer,
		CorrelationID: evt.OrderID,
		Payload:       payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	msg := kafka.Message{
		Topic: p.Topic(evt.Type),
		Key:   []byte(evt.OrderID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

func (p *KafkaPublisher) loop() {
	defer close(p.done)
	for m := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), m); err != nil {
			p.log.Error().Err(err).Str("topic", m.Topic).Str("orden_id", string(m.Key)).Msg("no se pudo publicar el evento")
			continue
		}
		p.log.Debug().Str("topic", m.Topic).Str("orden_id", string(m.Key)).Msg("evento publicado")
	}
}

// Close deja de aceptar eventos, escribe los pendientes y cierra el writer.
// Si ctx vence antes de vaciar la cola se devuelve su error.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return p.w.Close()
}
