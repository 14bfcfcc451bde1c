package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/example/tablefinder/internal/restaurant"
)

func adminPath(id int64) string {
	return "/admin/restaurants/" + strconv.FormatInt(id, 10)
}

func (c *Client) AdminRestaurants(ctx context.Context, token string) ([]restaurant.Restaurant, error) {
	return c.adminList(ctx, token, "admin restaurants", "/admin/restaurants")
}

func (c *Client) PendingRestaurants(ctx context.Context, token string) ([]restaurant.Restaurant, error) {
	return c.adminList(ctx, token, "pending restaurants", "/admin/restaurants/pending")
}

func (c *Client) adminList(ctx context.Context, token, op, path string) ([]restaurant.Restaurant, error) {
	var out []restaurant.Restaurant
	if err := c.call(ctx, op, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveRestaurant(ctx context.Context, token string, id int64) (restaurant.Restaurant, error) {
	var out restaurant.Restaurant
	if err := c.call(ctx, "approve restaurant", http.MethodPut, adminPath(id)+"/approve", token, nil, &out); err != nil {
		return restaurant.Restaurant{}, err
	}
	return out, nil
}

func (c *Client) RejectRestaurant(ctx context.Context, token string, id int64) (restaurant.Restaurant, error) {
	var out restaurant.Restaurant
	if err := c.call(ctx, "reject restaurant", http.MethodPut, adminPath(id)+"/reject", token, nil, &out); err != nil {
		return restaurant.Restaurant{}, err
	}
	return out, nil
}

func (c *Client) RemoveRestaurant(ctx context.Context, token string, id int64) error {
	return c.call(ctx, "remove restaurant", http.MethodDelete, adminPath(id), token, nil, nil)
}
