package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

// scriptedReader replays a fixed sequence of messages, then fails.
type scriptedReader struct {
	messages []kafka.Message
	err      error
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		return kafka.Message{}, r.err
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *scriptedReader) Close() error { return nil }

func TestConsume_DecodesEvents(t *testing.T) {
	stop := errors.New("stop")
	consumer := &Consumer{reader: &scriptedReader{
		messages: []kafka.Message{
			{Value: []byte(`{"type":"booking_confirmed","booking_id":"bk-123","user_id":7}`)},
		},
		err: stop,
	}}

	var got []BookingEvent
	err := consumer.Consume(context.Background(), func(ctx context.Context, event BookingEvent) error {
		got = append(got, event)
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Len(t, got, 1)
	assert.Equal(t, "booking_confirmed", got[0].Type)
	assert.Equal(t, "bk-123", got[0].BookingID)
	assert.Equal(t, int64(7), got[0].UserID)
}

func TestConsume_SkipsUndecodableMessage(t *testing.T) {
	stop := errors.New("stop")
	consumer := &Consumer{reader: &scriptedReader{
		messages: []kafka.Message{
			{Value: []byte(`not json`)},
			{Value: []byte(`{"type":"booking_cancelled","booking_id":"bk-456"}`)},
		},
		err: stop,
	}}

	var got []BookingEvent
	err := consumer.Consume(context.Background(), func(ctx context.Context, event BookingEvent) error {
		got = append(got, event)
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Len(t, got, 1)
	assert.Equal(t, "bk-456", got[0].BookingID)
}

func TestConsume_HandlerErrorStops(t *testing.T) {
	consumer := &Consumer{reader: &scriptedReader{
		messages: []kafka.Message{
			{Value: []byte(`{"type":"booking_created"}`)},
			{Value: []byte(`{"type":"booking_created"}`)},
		},
		err: errors.New("unreachable"),
	}}

	handlerErr := errors.New("persist failed")
	calls := 0
	err := consumer.Consume(context.Background(), func(ctx context.Context, event BookingEvent) error {
		calls++
		return handlerErr
	})

	assert.ErrorIs(t, err, handlerErr)
	assert.Equal(t, 1, calls)
}
