// Package analytics summarizes recent restaurant sign-ups for the admin dashboard.
package analytics

import (
	"sort"
	"time"

	"github.com/example/tablefinder/internal/restaurant"
)

const (
	Window   = 30
	TopCount = 3
)

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type Summary struct {
	Since     time.Time   `json:"since"`
	Total     int         `json:"total"`
	Pending   int         `json:"pending"`
	NewCount  int         `json:"new_count"`
	ByDay     []DayCount  `json:"by_day"`
	TopCities []CityCount `json:"top_cities"`
}

// Summarize counts restaurants created in the Window days up to now. Days are calendar days
// in loc, oldest first; cities are ranked by count, then name.
func Summarize(list []restaurant.Restaurant, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}
	since := now.In(loc).AddDate(0, 0, -Window)
	s := Summary{Since: since, Total: len(list), ByDay: []DayCount{}, TopCities: []CityCount{}}

	days := map[string]int{}
	cities := map[string]int{}
	for _, r := range list {
		if !r.IsApproved {
			s.Pending++
		}
		if r.CreatedAt.IsZero() || r.CreatedAt.Before(since) {
			continue
		}
		s.NewCount++
		days[r.CreatedAt.In(loc).Format("2006-01-02")]++
		cities[r.City]++
	}

	for d, n := range days {
		s.ByDay = append(s.ByDay, DayCount{Date: d, Count: n})
	}
	sort.Slice(s.ByDay, func(i, j int) bool { return s.ByDay[i].Date < s.ByDay[j].Date })

	for c, n := range cities {
		s.TopCities = append(s.TopCities, CityCount{City: c, Count: n})
	}
	sort.Slice(s.TopCities, func(i, j int) bool {
		a, b := s.TopCities[i], s.TopCities[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.City < b.City
	})
	if len(s.TopCities) > TopCount {
		s.TopCities = s.TopCities[:TopCount]
	}
	return s
}
