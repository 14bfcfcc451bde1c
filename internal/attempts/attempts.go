// Package attempts keeps a local log of every booking this service submitted to the backend.
package attempts

import (
	"context"
	"errors"
	"time"

	"github.com/example/tablefinder/internal/db"
	"github.com/google/uuid"
)

const maxRecent = 500

type Attempt struct {
	ID               uuid.UUID `json:"id"`
	RestaurantID     int64     `json:"restaurant_id"`
	TableID          int64     `json:"table_id,omitempty"`
	PartySize        int       `json:"party_size"`
	ReservationTime  string    `json:"reservation_time"`
	Success          bool      `json:"success"`
	ConfirmationCode string    `json:"confirmation_code,omitempty"`
	Error            *string   `json:"error,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Failed builds the attempt for a booking that did not go through.
func Failed(restaurantID, tableID int64, partySize int, reservationTime string, err error) Attempt {
	msg := err.Error()
	return Attempt{
		RestaurantID:    restaurantID,
		TableID:         tableID,
		PartySize:       partySize,
		ReservationTime: reservationTime,
		Error:           &msg,
	}
}

type Repo struct{ db db.Querier }

func NewRepo(d db.Querier) *Repo { return &Repo{db: d} }

// Record stores a, assigning an id when it has none, and returns it with its created_at.
func (r *Repo) Record(ctx context.Context, a Attempt) (Attempt, error) {
	if a.RestaurantID == 0 {
		return Attempt{}, errors.New("attempt: restaurant_id required")
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	var tableID *int64
	if a.TableID != 0 {
		tableID = &a.TableID
	}
	err := r.db.QueryRow(ctx, `
INSERT INTO booking_attempts(id,restaurant_id,table_id,party_size,reservation_time,success,confirmation_code,error)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING created_at`,
		a.ID, a.RestaurantID, tableID, a.PartySize, a.ReservationTime, a.Success, a.ConfirmationCode, a.Error,
	).Scan(&a.CreatedAt)
	if err != nil {
		return Attempt{}, db.WrapNotFound(err)
	}
	return a, nil
}

// Recent returns up to limit attempts, newest first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}
	rows, err := r.db.Query(ctx, `
SELECT id,restaurant_id,table_id,party_size,reservation_time,success,confirmation_code,error,created_at
FROM booking_attempts
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, db.WrapNotFound(err)
	}
	defer rows.Close()

	out := make([]Attempt, 0)
	for rows.Next() {
		var a Attempt
		var tableID *int64
		if err := rows.Scan(&a.ID, &a.RestaurantID, &tableID, &a.PartySize, &a.ReservationTime,
			&a.Success, &a.ConfirmationCode, &a.Error, &a.CreatedAt); err != nil {
			return nil, err
		}
		if tableID != nil {
			a.TableID = *tableID
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
