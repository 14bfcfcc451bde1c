package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/example/tablefinder/internal/restaurant"
)

// Session is what the backend hands back on login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	Role        string `json:"role"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var s Session
	if err := c.call(ctx, "login", http.MethodPost, "/login", "", credentials{username, password}, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// FetchCatalog returns every approved restaurant with its slots and tables.
func (c *Client) FetchCatalog(ctx context.Context) ([]restaurant.Restaurant, error) {
	var out []restaurant.Restaurant
	if err := c.call(ctx, "fetch catalog", http.MethodGet, "/customer/restaurants", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitBooking(ctx context.Context, token string, req restaurant.BookingRequest) (restaurant.Reservation, error) {
	var out restaurant.Reservation
	if err := c.call(ctx, "submit booking", http.MethodPost, "/customer/reservations", token, req, &out); err != nil {
		return restaurant.Reservation{}, err
	}
	return out, nil
}

func (c *Client) FetchReservations(ctx context.Context, token string) ([]restaurant.Reservation, error) {
	var out []restaurant.Reservation
	if err := c.call(ctx, "fetch reservations", http.MethodGet, "/customer/reservations", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelReservation(ctx context.Context, token string, id int64) error {
	path := "/customer/reservations/" + strconv.FormatInt(id, 10) + "/cancel"
	return c.call(ctx, "cancel reservation", http.MethodPut, path, token, nil, nil)
}

func (c *Client) AddReview(ctx context.Context, token string, in restaurant.ReviewInput) error {
	return c.call(ctx, "add review", http.MethodPost, "/customer/reviews", token, in, nil)
}
