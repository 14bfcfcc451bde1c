package restaurant

import (
	"strings"
	"time"
)

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCanceled  ReservationStatus = "canceled"
)

// Reservation is the backend's read-only view of a booking.
type Reservation struct {
	ID               int64             `json:"reservation_id"`
	RestaurantID     int64             `json:"restaurant_id"`
	RestaurantName   string            `json:"restaurant_name"`
	PartySize        int               `json:"party_size"`
	ReservationTime  string            `json:"reservation_time"`
	Status           ReservationStatus `json:"status"`
	TableID          int64             `json:"table_id"`
	ConfirmationCode string            `json:"confirmation_code"`
	SpecialRequests  string            `json:"special_requests,omitempty"`
	Review           *Review           `json:"review,omitempty"`
}

func (r Reservation) status() ReservationStatus {
	return ReservationStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
}

func (r Reservation) CanCancel() bool { return r.status() == StatusConfirmed }

func (r Reservation) CanReview() bool { return r.status() == StatusCompleted && r.Review == nil }

// Time parses ReservationTime. The backend is not consistent about zone suffixes.
func (r Reservation) Time() (time.Time, bool) {
	if r.ReservationTime == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, r.ReservationTime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
