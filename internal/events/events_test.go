package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (r *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	r.msgs = append(r.msgs, msgs...)
	return nil
}

func (r *recordingWriter) Close() error {
	r.closed = true
	return nil
}

func TestPublishBooking(t *testing.T) {
	rec := &recordingWriter{}
	w := NewWriterWith(rec)
	at := time.Date(2030, 3, 20, 16, 0, 0, 0, time.UTC)
	ev := BookingEvent{ReservationID: 9, RestaurantID: 42, TableID: 3, PartySize: 2,
		ReservationTime: "2030-03-20T19:00:00Z", ConfirmationCode: "ABC", BookedAt: at}

	require.NoError(t, w.PublishBooking(context.Background(), ev))
	require.Len(t, rec.msgs, 1)
	assert.Equal(t, "42", string(rec.msgs[0].Key))
	assert.Equal(t, at, rec.msgs[0].Time)

	var got BookingEvent
	require.NoError(t, json.Unmarshal(rec.msgs[0].Value, &got))
	assert.Equal(t, ev, got)

	require.NoError(t, w.Close())
	assert.True(t, rec.closed)
}

func TestNilWriterIsNoop(t *testing.T) {
	w := NewWriter("  ", "")
	assert.Nil(t, w)
	assert.NoError(t, w.PublishBooking(context.Background(), BookingEvent{RestaurantID: 1}))
	assert.NoError(t, w.Close())
}

func TestNewWriterBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092, ,b:9092 "))
	w := NewWriter("a:9092", "")
	require.NotNil(t, w)
	kw := w.w.(*kafka.Writer)
	assert.Equal(t, DefaultTopic, kw.Topic)
}
