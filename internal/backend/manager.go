package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/example/tablefinder/internal/restaurant"
)

func managerPath(id int64) string {
	return "/manager/restaurants/" + strconv.FormatInt(id, 10)
}

func (c *Client) CreateListing(ctx context.Context, token string, l restaurant.Listing) (restaurant.Restaurant, error) {
	var out restaurant.Restaurant
	if err := c.call(ctx, "create listing", http.MethodPost, "/manager/restaurants", token, l, &out); err != nil {
		return restaurant.Restaurant{}, err
	}
	return out, nil
}

func (c *Client) ManagerRestaurants(ctx context.Context, token string) ([]restaurant.Restaurant, error) {
	var out []restaurant.Restaurant
	if err := c.call(ctx, "manager restaurants", http.MethodGet, "/manager/restaurants", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ManagerRestaurant(ctx context.Context, token string, id int64) (restaurant.Restaurant, error) {
	var out restaurant.Restaurant
	if err := c.call(ctx, "manager restaurant", http.MethodGet, managerPath(id), token, nil, &out); err != nil {
		return restaurant.Restaurant{}, err
	}
	return out, nil
}

func (c *Client) UpdateListing(ctx context.Context, token string, id int64, u restaurant.ListingUpdate) (restaurant.Restaurant, error) {
	var out restaurant.Restaurant
	if err := c.call(ctx, "update listing", http.MethodPut, managerPath(id), token, u, &out); err != nil {
		return restaurant.Restaurant{}, err
	}
	return out, nil
}
