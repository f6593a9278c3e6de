package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"energypredictor/internal/model"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisherWithWriter(w, "energy.predictions")

	ev := &model.PredictionEvent{
		ID:            "abc",
		Model:         "random_forest",
		Schema:        "household-energy-v2",
		PredictionKWh: 312.5,
		Features:      []float64{1, 2, 3},
		CreatedAt:     time.Date(2025, time.July, 4, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "abc", string(msg.Key))
	assert.Equal(t, ev.CreatedAt, msg.Time)

	var decoded model.PredictionEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, 312.5, decoded.PredictionKWh)
	assert.Equal(t, "random_forest", decoded.Model)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewPublisherWithWriter(w, "energy.predictions")

	err := p.Publish(context.Background(), &model.PredictionEvent{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
