// Package bookings ties the resolver to the backend: search, book, and manage a customer's
// reservations.
package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tablefinder/internal/attempts"
	"github.com/example/tablefinder/internal/availability"
	"github.com/example/tablefinder/internal/events"
	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/example/tablefinder/internal/restaurant"
	"github.com/example/tablefinder/internal/validate"
	"github.com/sirupsen/logrus"
)

// Backend is the reservation half of the backend client.
type Backend interface {
	SubmitBooking(ctx context.Context, token string, req restaurant.BookingRequest) (restaurant.Reservation, error)
	FetchReservations(ctx context.Context, token string) ([]restaurant.Reservation, error)
	CancelReservation(ctx context.Context, token string, id int64) error
	AddReview(ctx context.Context, token string, in restaurant.ReviewInput) error
}

type Catalog interface {
	FetchCatalog(ctx context.Context) ([]restaurant.Restaurant, error)
}

type Recorder interface {
	Record(ctx context.Context, a attempts.Attempt) (attempts.Attempt, error)
}

type Publisher interface {
	PublishBooking(ctx context.Context, ev events.BookingEvent) error
}

// refresher is implemented by caching catalogs; a booking changes booked slots.
type refresher interface {
	Refresh(ctx context.Context) ([]restaurant.Restaurant, error)
}

// Service needs Backend, Catalog and Resolver. Attempts and Events are optional.
type Service struct {
	Backend  Backend
	Catalog  Catalog
	Resolver *availability.Resolver
	Attempts Recorder
	Events   Publisher
	Log      logrus.FieldLogger
	Now      func() time.Time
}

// BookRequest is a customer's confirmation of one offered slot.
type BookRequest struct {
	RestaurantID    int64  `json:"restaurant_id"`
	Date            string `json:"date"`
	Slot            string `json:"slot"`
	Time            string `json:"time,omitempty"`
	PartySize       int    `json:"party_size"`
	SpecialRequests string `json:"special_requests"`
}

func (s *Service) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Search validates f before touching the catalog, then resolves against a fresh snapshot.
func (s *Service) Search(ctx context.Context, f availability.Filter) ([]availability.Match, error) {
	if err := s.Resolver.Validate(f); err != nil {
		return nil, err
	}
	catalog, err := s.Catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return s.Resolver.Resolve(catalog, f)
}

// Book resolves req against the current catalog and submits it. The attempt log and the event
// stream are best effort; their failures are logged and do not fail the booking.
func (s *Service) Book(ctx context.Context, token string, req BookRequest) (restaurant.Reservation, error) {
	if req.RestaurantID <= 0 {
		return restaurant.Reservation{}, internaltypes.Invalid("restaurant_id", "Please select a restaurant.")
	}
	catalog, err := s.Catalog.FetchCatalog(ctx)
	if err != nil {
		return restaurant.Reservation{}, fmt.Errorf("load catalog: %w", err)
	}
	rest, ok := find(catalog, req.RestaurantID)
	if !ok {
		return restaurant.Reservation{}, fmt.Errorf("restaurant %d: %w", req.RestaurantID, internaltypes.ErrNotFound)
	}

	br, err := s.Resolver.ResolveBooking(availability.BookingInput{
		Restaurant:     rest,
		Date:           req.Date,
		Slot:           req.Slot,
		RequestedTime:  req.Time,
		PartySize:      req.PartySize,
		SpecialRequest: req.SpecialRequests,
	})
	if err != nil {
		return restaurant.Reservation{}, err
	}

	log := s.log().WithFields(logrus.Fields{
		"restaurant_id":    br.RestaurantID,
		"table_id":         br.TableID,
		"reservation_time": br.ReservationTime,
		"party_size":       br.PartySize,
	})

	res, err := s.Backend.SubmitBooking(ctx, token, br)
	if err != nil {
		s.record(ctx, log, attempts.Failed(br.RestaurantID, br.TableID, br.PartySize, br.ReservationTime, err))
		log.WithError(err).Warn("booking rejected")
		return restaurant.Reservation{}, err
	}
	log = log.WithField("confirmation_code", res.ConfirmationCode)
	log.Info("booking confirmed")

	s.record(ctx, log, attempts.Attempt{
		RestaurantID:     br.RestaurantID,
		TableID:          br.TableID,
		PartySize:        br.PartySize,
		ReservationTime:  br.ReservationTime,
		Success:          true,
		ConfirmationCode: res.ConfirmationCode,
	})
	if s.Events != nil {
		ev := events.BookingEvent{
			ReservationID:    res.ID,
			RestaurantID:     br.RestaurantID,
			TableID:          br.TableID,
			PartySize:        br.PartySize,
			ReservationTime:  br.ReservationTime,
			ConfirmationCode: res.ConfirmationCode,
			BookedAt:         s.now().UTC(),
		}
		if err := s.Events.PublishBooking(ctx, ev); err != nil {
			log.WithError(err).Warn("publish booking event failed")
		}
	}
	if r, ok := s.Catalog.(refresher); ok {
		if _, err := r.Refresh(ctx); err != nil {
			log.WithError(err).Warn("catalog refresh after booking failed")
		}
	}
	return res, nil
}

func (s *Service) record(ctx context.Context, log logrus.FieldLogger, a attempts.Attempt) {
	if s.Attempts == nil {
		return
	}
	if _, err := s.Attempts.Record(ctx, a); err != nil {
		log.WithError(err).Warn("record booking attempt failed")
	}
}

func (s *Service) Reservations(ctx context.Context, token string) ([]restaurant.Reservation, error) {
	return s.Backend.FetchReservations(ctx, token)
}

// Cancel cancels a confirmed reservation. Completed or already canceled ones are refused.
func (s *Service) Cancel(ctx context.Context, token string, id int64) error {
	res, err := s.reservation(ctx, token, id)
	if err != nil {
		return err
	}
	if !res.CanCancel() {
		return internaltypes.Invalid("status", fmt.Sprintf("Reservation is %s and can no longer be canceled.", res.Status))
	}
	return s.Backend.CancelReservation(ctx, token, id)
}

// Review attaches a rating to a completed reservation that has none yet.
func (s *Service) Review(ctx context.Context, token string, id int64, rating int, comment string) error {
	res, err := s.reservation(ctx, token, id)
	if err != nil {
		return err
	}
	if !res.CanReview() {
		return internaltypes.Invalid("status", "Only completed reservations without a review can be reviewed.")
	}
	in := restaurant.ReviewInput{RestaurantID: res.RestaurantID, Rating: rating, Comment: comment}
	if err := validate.StructWith(in, map[string]string{"rating": "Please choose a rating from 1 to 5."}); err != nil {
		return err
	}
	return s.Backend.AddReview(ctx, token, in)
}

func (s *Service) reservation(ctx context.Context, token string, id int64) (restaurant.Reservation, error) {
	list, err := s.Backend.FetchReservations(ctx, token)
	if err != nil {
		return restaurant.Reservation{}, err
	}
	for _, r := range list {
		if r.ID == id {
			return r, nil
		}
	}
	return restaurant.Reservation{}, fmt.Errorf("reservation %d: %w", id, internaltypes.ErrNotFound)
}

func find(catalog []restaurant.Restaurant, id int64) (restaurant.Restaurant, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return restaurant.Restaurant{}, false
}
