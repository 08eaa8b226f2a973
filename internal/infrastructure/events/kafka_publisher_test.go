package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/application/order"
	"github.com/jhoicas/elbaul-api/pkg/config"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	block  chan struct{}
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

var testKafkaCfg = config.KafkaConfig{TopicPrefix: "elbaul", ClientID: "elbaul-api", BufferSize: 4}

func sampleEvent() order.OrderEvent {
	return order.OrderEvent{
		Type:    order.EventOrderCreated,
		OrderID: "OR700001",
		UserID:  "US100001",
		Status:  "pendiente",
		Total:   decimal.NewFromInt(130),
		Items: []order.EventItem{
			{ProductID: "PR300001", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
			{ProductID: "PR300002", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
		},
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublish_EnvuelveYEscribeAlCerrar(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, testKafkaCfg, nil)

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.NoError(t, p.Close(context.Background()))

	require.Len(t, w.msgs, 1)
	m := w.msgs[0]
	assert.Equal(t, "elbaul.orden.creada", m.Topic)
	assert.Equal(t, "OR700001", string(m.Key))
	assert.True(t, w.closed)

	var env Envelope
	require.NoError(t, json.Unmarshal(m.Value, &env))
	assert.Equal(t, order.EventOrderCreated, env.EventType)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, "elbaul-api", env.Producer)
	assert.Equal(t, "OR700001", env.CorrelationID)
	assert.NotEmpty(t, env.EventID)

	var payload struct {
		OrderID string `json:"orden_id"`
		Total   string `json:"total"`
		Items   []struct {
			ProductID string `json:"producto_id"`
			Quantity  int    `json:"cantidad"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "OR700001", payload.OrderID)
	assert.Equal(t, "130", payload.Total)
	assert.Len(t, payload.Items, 2)
}

func TestPublish_DespuesDeCerrarFalla(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{}, testKafkaCfg, nil)
	require.NoError(t, p.Close(context.Background()))

	err := p.Publish(context.Background(), sampleEvent())
	assert.ErrorIs(t, err, ErrPublisherClosed)
}

func TestPublish_BufferLlenoNoBloquea(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	cfg := testKafkaCfg
	cfg.BufferSize = 1
	p := newKafkaPublisher(w, cfg, nil)

	// el primero lo toma la goroutine (bloqueada en el writer), el segundo llena el buffer
	var err error
	for i := 0; i < 3 && !errors.Is(err, ErrBufferFull); i++ {
		err = p.Publish(context.Background(), sampleEvent())
	}
	assert.ErrorIs(t, err, ErrBufferFull)

	close(w.block)
	require.NoError(t, p.Close(context.Background()))
}

func TestLoop_ErrorDeEscrituraNoDetieneElPublicador(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker caído")}
	p := newKafkaPublisher(w, testKafkaCfg, nil)

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))
	require.NoError(t, p.Close(context.Background()))
	assert.Empty(t, w.msgs)
	assert.True(t, w.closed)
}

func TestTopic_SinPrefijo(t *testing.T) {
	p := newKafkaPublisher(&fakeWriter{}, config.KafkaConfig{}, nil)
	defer p.Close(context.Background())
	assert.Equal(t, "orden.cancelada", p.Topic(order.EventOrderCancelled))
}
