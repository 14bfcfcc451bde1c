// Package events publishes booking outcomes to Kafka for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "reservations.booked"

// BookingEvent is emitted once per reservation the backend confirmed.
type BookingEvent struct {
	ReservationID    int64     `json:"reservation_id"`
	RestaurantID     int64     `json:"restaurant_id"`
	TableID          int64     `json:"table_id"`
	PartySize        int       `json:"party_size"`
	ReservationTime  string    `json:"reservation_time"`
	ConfirmationCode string    `json:"confirmation_code"`
	BookedAt         time.Time `json:"booked_at"`
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Writer struct {
	w MessageWriter
}

// NewWriter returns nil when brokers is empty; a nil *Writer publishes nothing.
func NewWriter(brokers, topic string) *Writer {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return nil
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return &Writer{w: &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

// NewWriterWith wraps an existing message writer.
func NewWriterWith(w MessageWriter) *Writer { return &Writer{w: w} }

// PublishBooking writes ev keyed by restaurant id, so one restaurant's bookings stay ordered.
func (p *Writer) PublishBooking(ctx context.Context, ev BookingEvent) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.RestaurantID, 10)),
		Value: data,
		Time:  ev.BookedAt,
	})
}

func (p *Writer) Close() error {
	if p == nil {
		return nil
	}
	return p.w.Close()
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
