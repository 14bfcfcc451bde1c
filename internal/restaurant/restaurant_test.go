package restaurant

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() Listing {
	return Listing{
		Name:         "Trattoria Roma",
		Description:  "Handmade pasta",
		AddressLine1: "1 Main St",
		City:         "New York",
		State:        "NY",
		ZipCode:      "10001",
		PhoneNumber:  "555-123-4567",
		Email:        "roma@example.com",
		CuisineType:  "italian",
		CostRating:   3,
	}
}

func TestListingValidate(t *testing.T) {
	require.NoError(t, validListing().Validate())

	tests := []struct {
		name   string
		mutate func(*Listing)
		field  string
	}{
		{"missing name", func(l *Listing) { l.Name = "" }, "name"},
		{"bad email", func(l *Listing) { l.Email = "roma.example.com" }, "email"},
		{"bad phone", func(l *Listing) { l.PhoneNumber = "(555) 123-4567" }, "phone_number"},
		{"cost too high", func(l *Listing) { l.CostRating = 6 }, "cost_rating"},
		{"unknown cuisine", func(l *Listing) { l.CuisineType = "martian" }, "cuisine_type"},
		{"missing zip", func(l *Listing) { l.ZipCode = "" }, "zip_code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			tt.mutate(&l)
			var ve *internaltypes.ValidationError
			require.True(t, errors.As(l.Validate(), &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestListingUpdateValidate(t *testing.T) {
	assert.True(t, ListingUpdate{}.Empty())
	require.NoError(t, ListingUpdate{}.Validate())

	bad := "12345"
	var ve *internaltypes.ValidationError
	require.True(t, errors.As(ListingUpdate{PhoneNumber: &bad}.Validate(), &ve))
	assert.Equal(t, "phone_number", ve.Field)

	city := "Boston"
	u := ListingUpdate{City: &city}
	assert.False(t, u.Empty())
	assert.NoError(t, u.Validate())
}

func TestReservationActions(t *testing.T) {
	tests := []struct {
		status    ReservationStatus
		review    *Review
		canCancel bool
		canReview bool
	}{
		{status: "confirmed", canCancel: true},
		{status: "Confirmed", canCancel: true},
		{status: "completed", canReview: true},
		{status: "completed", review: &Review{Rating: 4}},
		{status: "canceled"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := Reservation{Status: tt.status, Review: tt.review}
			assert.Equal(t, tt.canCancel, r.CanCancel())
			assert.Equal(t, tt.canReview, r.CanReview())
		})
	}
}

func TestReservationTime(t *testing.T) {
	want := time.Date(2030, 3, 20, 19, 0, 0, 0, time.UTC)
	for _, in := range []string{"2030-03-20T19:00:00Z", "2030-03-20T19:00:00", "2030-03-20 19:00:00"} {
		got, ok := Reservation{ReservationTime: in}.Time()
		require.True(t, ok, in)
		assert.True(t, want.Equal(got), in)
	}
	_, ok := Reservation{ReservationTime: "tonight"}.Time()
	assert.False(t, ok)
}

func TestRestaurantJSONMissingCollections(t *testing.T) {
	var r Restaurant
	require.NoError(t, json.Unmarshal([]byte(`{"restaurant_id":7,"name":"Noodle Bar","city":"Austin","state":"TX","zip_code":"73301"}`), &r))
	assert.Nil(t, r.Availability)
	assert.Nil(t, r.Tables)
	assert.False(t, r.HasActiveTable())
	assert.Equal(t, 0, r.ReviewCount())

	r.CostRating = 2
	assert.Equal(t, "$$", r.CostLabel())
}

func TestTimestampLayouts(t *testing.T) {
	want := time.Date(2024, 3, 20, 19, 0, 0, 0, time.UTC)
	for _, in := range []string{`"2024-03-20T19:00:00Z"`, `"2024-03-20T19:00:00.000000"`, `"2024-03-20 19:00:00"`} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, want.Equal(ts.Time), in)
	}

	var r Restaurant
	require.NoError(t, json.Unmarshal([]byte(`{"created_at":null,"approved_at":"2024-03-20T19:00:00"}`), &r))
	assert.True(t, r.CreatedAt.IsZero())
	require.NotNil(t, r.ApprovedAt)
	assert.True(t, want.Equal(r.ApprovedAt.Time))

	var bad Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}
