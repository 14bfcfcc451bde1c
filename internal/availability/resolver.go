package availability

import (
	"strings"
	"time"

	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/example/tablefinder/internal/restaurant"
	"github.com/example/tablefinder/internal/validate"
)

// DefaultTimezone is where restaurants are assumed to be when no zone is configured.
const DefaultTimezone = "America/New_York"

// Match is a restaurant that can take the party near the requested time, with the slots to offer.
type Match struct {
	Restaurant restaurant.Restaurant `json:"restaurant"`
	Slots      []string              `json:"slots"`
}

// Resolver holds the clock and zone used to decide whether a request is in the future.
// The zero value uses time.Now and UTC.
type Resolver struct {
	Location *time.Location
	Now      func() time.Time
}

func NewResolver(loc *time.Location) *Resolver {
	return &Resolver{Location: loc, Now: time.Now}
}

func (r *Resolver) location() *time.Location {
	if r == nil || r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func (r *Resolver) now() time.Time {
	if r == nil || r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Validate checks f on its own, before any catalog is consulted.
func (r *Resolver) Validate(f Filter) error {
	_, err := r.nearby(f)
	return err
}

func (r *Resolver) nearby(f Filter) ([3]string, error) {
	if err := validate.StructWith(f, filterMessages); err != nil {
		return [3]string{}, err
	}
	nearby, err := NearbySlots(f.Time)
	if err != nil {
		return [3]string{}, err
	}
	loc := r.location()
	day, err := parseDate(f.Date, loc)
	if err != nil {
		return [3]string{}, err
	}
	now := r.now()
	for _, s := range nearby {
		if slotTime(day, s, loc).After(now) {
			return nearby, nil
		}
	}
	return [3]string{}, internaltypes.Invalid("date", msgFuture)
}

// Resolve returns, in catalog order, every restaurant that matches the location text and has
// at least one offerable slot and an active table. The catalog is not modified.
func (r *Resolver) Resolve(catalog []restaurant.Restaurant, f Filter) ([]Match, error) {
	nearby, err := r.nearby(f)
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0)
	for _, rest := range catalog {
		if !MatchesLocation(rest, f.Location) {
			continue
		}
		slots := OfferableSlots(rest, nearby)
		if len(slots) == 0 || !rest.HasActiveTable() {
			continue
		}
		out = append(out, Match{Restaurant: rest, Slots: slots})
	}
	return out, nil
}

// MatchesLocation is a case-insensitive substring match of text against city, state and zip
// code. Blank text matches everything.
func MatchesLocation(r restaurant.Restaurant, text string) bool {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return true
	}
	for _, field := range []string{r.City, r.State, r.ZipCode} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// OfferableSlots returns the advertised slots near the request that are not booked, in
// advertised order without duplicates.
// A restaurant with no availability data offers nothing.
func OfferableSlots(r restaurant.Restaurant, nearby [3]string) []string {
	if len(r.Availability) == 0 {
		return nil
	}
	booked := make(map[string]struct{}, len(r.BookedSlots))
	for _, s := range r.BookedSlots {
		booked[s] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{}, len(nearby))
	for _, s := range r.Availability {
		if _, ok := seen[s]; ok {
			continue
		}
		if _, ok := booked[s]; ok {
			continue
		}
		if s == nearby[0] || s == nearby[1] || s == nearby[2] {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
