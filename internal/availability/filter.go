package availability

import (
	"time"

	"github.com/example/tablefinder/internal/internaltypes"
)

const dateLayout = "2006-01-02"

const (
	msgDateTime  = "Please select a date and time."
	msgPartySize = "Please enter a valid number of people."
	msgFuture    = "Please select a future date/time."
)

// Filter is one search request. Date is a calendar date (YYYY-MM-DD) and Time a grid slot,
// both read in the restaurant time zone.
type Filter struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,slot"`
	PartySize int    `json:"party_size" validate:"gt=0"`
	Location  string `json:"location"`
}

var filterMessages = map[string]string{
	"date.required": msgDateTime,
	"time.required": msgDateTime,
	"date.datetime": "Please select a valid date.",
	"time.slot":     invalidSlot,
	"party_size":    msgPartySize,
	"slot.required": "Please select a time slot.",
	"slot.slot":     invalidSlot,
}

// slotTime places slot on date in loc.
func slotTime(date time.Time, slot string, loc *time.Location) time.Time {
	i, _ := slotIndex(slot)
	mins := i * slotMinutes
	return time.Date(date.Year(), date.Month(), date.Day(), mins/60, mins%60, 0, 0, loc)
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, internaltypes.Invalid("date", "Please select a valid date.")
	}
	return d, nil
}
