package availability

import (
	"regexp"
	"slices"
	"strings"

	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/example/tablefinder/internal/restaurant"
	"github.com/example/tablefinder/internal/validate"
)

const msgUnavailable = "That time is no longer available."

var minutePrecision = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)

// BookingInput is a slot the user picked from a Match. When RequestedTime is set the slot
// must also be one of the slots offered for that search time.
type BookingInput struct {
	Restaurant     restaurant.Restaurant `json:"restaurant" validate:"-"`
	Date           string                `json:"date" validate:"required,datetime=2006-01-02"`
	Slot           string                `json:"slot" validate:"required,slot"`
	RequestedTime  string                `json:"time" validate:"omitempty,slot"`
	PartySize      int                   `json:"party_size" validate:"gt=0"`
	SpecialRequest string                `json:"special_requests"`
}

// SelectTable returns the first active table, in input order, that seats partySize.
func SelectTable(tables []restaurant.Table, partySize int) (restaurant.Table, error) {
	for _, t := range tables {
		if t.IsActive && t.Capacity >= partySize {
			return t, nil
		}
	}
	return restaurant.Table{}, internaltypes.ErrNoTableAvailable
}

// NormalizeTimestamp merges a date and slot into the UTC form sent to the backend:
// "2030-03-20" and "18:00" become "2030-03-20T18:00:00Z".
func NormalizeTimestamp(date, slot string) string {
	ts := date + " " + slot
	if minutePrecision.MatchString(ts) {
		ts += ":00"
	}
	return strings.Replace(ts, " ", "T", 1) + "Z"
}

// ResolveBooking checks the chosen slot is still free, in the future and, given a requested
// time, near it. Then it picks a table
// for the party. It fails with ErrNoTableAvailable when no active table is large enough.
func (r *Resolver) ResolveBooking(in BookingInput) (restaurant.BookingRequest, error) {
	if err := validate.StructWith(in, filterMessages); err != nil {
		return restaurant.BookingRequest{}, err
	}
	loc := r.location()
	day, err := parseDate(in.Date, loc)
	if err != nil {
		return restaurant.BookingRequest{}, err
	}
	if !slotTime(day, in.Slot, loc).After(r.now()) {
		return restaurant.BookingRequest{}, internaltypes.Invalid("date", msgFuture)
	}
	if !slices.Contains(in.Restaurant.Availability, in.Slot) || slices.Contains(in.Restaurant.BookedSlots, in.Slot) {
		return restaurant.BookingRequest{}, internaltypes.Invalid("slot", msgUnavailable)
	}
	if in.RequestedTime != "" {
		nearby, err := NearbySlots(in.RequestedTime)
		if err != nil {
			return restaurant.BookingRequest{}, err
		}
		if !slices.Contains(nearby[:], in.Slot) {
			return restaurant.BookingRequest{}, internaltypes.Invalid("slot", msgUnavailable)
		}
	}
	table, err := SelectTable(in.Restaurant.Tables, in.PartySize)
	if err != nil {
		return restaurant.BookingRequest{}, err
	}
	return restaurant.BookingRequest{
		RestaurantID:    in.Restaurant.ID,
		TableID:         table.ID,
		ReservationTime: NormalizeTimestamp(in.Date, in.Slot),
		PartySize:       in.PartySize,
		SpecialRequests: strings.TrimSpace(in.SpecialRequest),
	}, nil
}
