package restaurant

import "strings"

// Restaurant is one catalog entry as served by the backend. Availability, BookedSlots and
// Tables are nil when the backend omitted the field.
type Restaurant struct {
	ID               int64      `json:"restaurant_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	CuisineType      string     `json:"cuisine_type"`
	CostRating       int        `json:"cost_rating"`
	AddressLine1     string     `json:"address_line1,omitempty"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	ZipCode          string     `json:"zip_code"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	Email            string     `json:"email,omitempty"`
	AvgRating        float64    `json:"avg_rating"`
	Reviews          []Review   `json:"reviews,omitempty"`
	Availability     []string   `json:"availability"`
	BookedSlots      []string   `json:"booked_slots"`
	Tables           []Table    `json:"tables"`
	IsApproved       bool       `json:"is_approved"`
	ApprovedAt       *Timestamp `json:"approved_at,omitempty"`
	CreatedAt        Timestamp  `json:"created_at"`
	TimesBookedToday int        `json:"times_booked_today"`
}

func (r Restaurant) ReviewCount() int { return len(r.Reviews) }

// HasActiveTable reports whether any table is currently bookable, ignoring party size.
func (r Restaurant) HasActiveTable() bool {
	for _, t := range r.Tables {
		if t.IsActive {
			return true
		}
	}
	return false
}

// CostLabel renders the cost rating the way listings show it ("$$$").
func (r Restaurant) CostLabel() string {
	if r.CostRating <= 0 {
		return ""
	}
	return strings.Repeat("$", r.CostRating)
}

type Table struct {
	ID          int64  `json:"table_id"`
	TableNumber string `json:"table_number,omitempty"`
	Capacity    int    `json:"capacity"`
	IsActive    bool   `json:"is_active"`
}

type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewInput is what a customer submits after a completed reservation.
type ReviewInput struct {
	RestaurantID int64  `json:"restaurant_id" validate:"required"`
	Rating       int    `json:"rating" validate:"min=1,max=5"`
	Comment      string `json:"comment"`
}

// BookingRequest is handed to the backend to create a reservation. ReservationTime is the
// normalized UTC form, e.g. "2030-03-20T18:00:00Z".
type BookingRequest struct {
	RestaurantID    int64  `json:"restaurant_id"`
	TableID         int64  `json:"table_id"`
	ReservationTime string `json:"reservation_time"`
	PartySize       int    `json:"party_size"`
	SpecialRequests string `json:"special_requests"`
}
