package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/tablefinder/internal/analytics"
	"github.com/example/tablefinder/internal/attempts"
	"github.com/example/tablefinder/internal/auth"
	"github.com/example/tablefinder/internal/availability"
	"github.com/example/tablefinder/internal/backend"
	"github.com/example/tablefinder/internal/bookings"
	"github.com/example/tablefinder/internal/internaltypes"
	"github.com/example/tablefinder/internal/restaurant"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookings struct {
	searchErr error
	bookErr   error
	lastToken string
	lastBook  bookings.BookRequest
	canceled  int64
	reviewed  [2]int64
}

func (f *fakeBookings) Search(_ context.Context, flt availability.Filter) ([]availability.Match, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if flt.PartySize <= 0 {
		return nil, internaltypes.Invalid("party_size", "Please enter a valid number of people.")
	}
	return []availability.Match{{Restaurant: restaurant.Restaurant{ID: 1, Name: "Roma"}, Slots: []string{"19:00"}}}, nil
}

func (f *fakeBookings) Book(_ context.Context, token string, req bookings.BookRequest) (restaurant.Reservation, error) {
	f.lastToken, f.lastBook = token, req
	if f.bookErr != nil {
		return restaurant.Reservation{}, f.bookErr
	}
	return restaurant.Reservation{ID: 9, RestaurantID: req.RestaurantID, Status: restaurant.StatusConfirmed, ConfirmationCode: "ABC"}, nil
}

func (f *fakeBookings) Reservations(_ context.Context, token string) ([]restaurant.Reservation, error) {
	f.lastToken = token
	return []restaurant.Reservation{{ID: 9}}, nil
}

func (f *fakeBookings) Cancel(_ context.Context, _ string, id int64) error {
	f.canceled = id
	return nil
}

func (f *fakeBookings) Review(_ context.Context, _ string, id int64, rating int, _ string) error {
	f.reviewed = [2]int64{id, int64(rating)}
	return nil
}

type fakeBackend struct {
	role     string
	loginErr error
	created  []restaurant.Listing
	list     []restaurant.Restaurant
}

func (f *fakeBackend) Login(_ context.Context, username, _ string) (backend.Session, error) {
	if f.loginErr != nil {
		return backend.Session{}, f.loginErr
	}
	return backend.Session{AccessToken: "tok-" + username, Role: f.role}, nil
}

func (f *fakeBackend) CreateListing(_ context.Context, _ string, l restaurant.Listing) (restaurant.Restaurant, error) {
	f.created = append(f.created, l)
	return restaurant.Restaurant{ID: 5, Name: l.Name}, nil
}

func (f *fakeBackend) ManagerRestaurants(context.Context, string) ([]restaurant.Restaurant, error) {
	return f.list, nil
}

func (f *fakeBackend) ManagerRestaurant(_ context.Context, _ string, id int64) (restaurant.Restaurant, error) {
	return restaurant.Restaurant{}, &internaltypes.UpstreamError{Op: "manager restaurant", StatusCode: 404}
}

func (f *fakeBackend) UpdateListing(_ context.Context, _ string, id int64, _ restaurant.ListingUpdate) (restaurant.Restaurant, error) {
	return restaurant.Restaurant{ID: id}, nil
}

func (f *fakeBackend) AdminRestaurants(context.Context, string) ([]restaurant.Restaurant, error) {
	return f.list, nil
}

func (f *fakeBackend) PendingRestaurants(context.Context, string) ([]restaurant.Restaurant, error) {
	return nil, &internaltypes.UpstreamError{Op: "pending restaurants", StatusCode: 500}
}

func (f *fakeBackend) ApproveRestaurant(_ context.Context, _ string, id int64) (restaurant.Restaurant, error) {
	return restaurant.Restaurant{ID: id, IsApproved: true}, nil
}

func (f *fakeBackend) RejectRestaurant(_ context.Context, _ string, id int64) (restaurant.Restaurant, error) {
	return restaurant.Restaurant{ID: id}, nil
}

func (f *fakeBackend) RemoveRestaurant(context.Context, string, int64) error { return nil }

type fakeAttempts struct{ limit int }

func (f *fakeAttempts) Recent(_ context.Context, limit int) ([]attempts.Attempt, error) {
	f.limit = limit
	return []attempts.Attempt{{RestaurantID: 1, Success: true}}, nil
}

type env struct {
	srv      *Server
	h        http.Handler
	bookings *fakeBookings
	backend  *fakeBackend
}

func newEnv(t *testing.T, role string) *env {
	t.Helper()
	log, _ := test.NewNullLogger()
	e := &env{bookings: &fakeBookings{}, backend: &fakeBackend{role: role}}
	e.srv = &Server{
		Auth:     auth.NewStore(securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32)),
		Bookings: e.bookings,
		Backend:  e.backend,
		Log:      log,
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2030, 3, 20, 12, 0, 0, 0, time.UTC) },
	}
	e.h = e.srv.Routes()
	return e
}

func (e *env) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, req)
	return rec
}

func (e *env) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/login", `{"username":"ana","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	e := newEnv(t, "")
	rec := e.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	e.srv.Health = func(context.Context) error { return errors.New("db down") }
	rec = e.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSearch(t *testing.T) {
	e := newEnv(t, "")
	rec := e.do(t, http.MethodGet, "/api/search?date=2030-03-20&time=19:00&party_size=2&location=ny", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []availability.Match
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"19:00"}, got[0].Slots)

	rec = e.do(t, http.MethodGet, "/api/search?date=2030-03-20&time=19:00&party_size=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "party_size", body.Field)
	assert.Equal(t, "Please enter a valid number of people.", body.Error)

	e.bookings.searchErr = &internaltypes.UpstreamError{Op: "fetch catalog", Err: errors.New("dial tcp: refused")}
	rec = e.do(t, http.MethodGet, "/api/search?date=2030-03-20&time=19:00&party_size=2", "", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestLogin(t *testing.T) {
	e := newEnv(t, "")
	rec := e.do(t, http.MethodPost, "/login", `{"username":"ana","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, loginResponse{Username: "ana", Role: auth.RoleCustomer}, got)

	e.backend.loginErr = &internaltypes.UpstreamError{Op: "login", StatusCode: 401}
	rec = e.do(t, http.MethodPost, "/login", `{"username":"ana","password":"bad"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password.", decodeError(t, rec).Error)

	rec = e.do(t, http.MethodPost, "/login", `{"username":" "}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBookRequiresSession(t *testing.T) {
	e := newEnv(t, "")
	rec := e.do(t, http.MethodPost, "/api/bookings", `{}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBook(t *testing.T) {
	e := newEnv(t, "")
	c := e.login(t)

	rec := e.do(t, http.MethodPost, "/api/bookings", `{"restaurant_id":1,"date":"2030-03-20","slot":"19:00","party_size":2}`, c)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "tok-ana", e.bookings.lastToken)
	assert.Equal(t, "19:00", e.bookings.lastBook.Slot)

	tests := []struct {
		err    error
		status int
	}{
		{internaltypes.ErrNoTableAvailable, http.StatusConflict},
		{internaltypes.ErrNotFound, http.StatusNotFound},
		{internaltypes.Invalid("slot", "That time is no longer available."), http.StatusBadRequest},
		{&internaltypes.UpstreamError{Op: "submit booking", StatusCode: 500}, http.StatusBadGateway},
		{&internaltypes.UpstreamError{Op: "submit booking", StatusCode: 401}, http.StatusUnauthorized},
		{&internaltypes.UpstreamError{Op: "submit booking", StatusCode: 403}, http.StatusForbidden},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			e.bookings.bookErr = tt.err
			rec := e.do(t, http.MethodPost, "/api/bookings", `{"restaurant_id":1}`, c)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec = e.do(t, http.MethodPost, "/api/bookings", `{not json`, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReservationActions(t *testing.T) {
	e := newEnv(t, "")
	c := e.login(t)

	rec := e.do(t, http.MethodGet, "/api/reservations", "", c)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/reservations/9/cancel", "", c)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(9), e.bookings.canceled)

	rec = e.do(t, http.MethodPost, "/api/reservations/9/review", `{"rating":4,"comment":"good"}`, c)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, [2]int64{9, 4}, e.bookings.reviewed)
}

func TestManagerRoutes(t *testing.T) {
	customer := newEnv(t, auth.RoleCustomer)
	rec := customer.do(t, http.MethodGet, "/api/manager/restaurants", "", customer.login(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	e := newEnv(t, auth.RoleManager)
	c := e.login(t)

	rec = e.do(t, http.MethodPost, "/api/manager/restaurants", `{"name":"Roma","email":"bad"}`, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, e.backend.created)

	listing := `{"name":"Roma","description":"Pasta","address_line1":"1 Main St","city":"New York","state":"NY",
		"zip_code":"10001","phone_number":"555-123-4567","email":"roma@example.com","cuisine_type":"italian","cost_rating":3}`
	rec = e.do(t, http.MethodPost, "/api/manager/restaurants", listing, c)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, e.backend.created, 1)

	rec = e.do(t, http.MethodGet, "/api/manager/restaurants/3", "", c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodPut, "/api/manager/restaurants/3", `{}`, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Nothing to update.", decodeError(t, rec).Error)

	rec = e.do(t, http.MethodPut, "/api/manager/restaurants/3", `{"city":"Boston"}`, c)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	e := newEnv(t, auth.RoleAdmin)
	c := e.login(t)
	e.backend.list = []restaurant.Restaurant{
		{City: "Austin", IsApproved: true, CreatedAt: restaurant.Timestamp{Time: time.Date(2030, 3, 19, 10, 0, 0, 0, time.UTC)}},
	}

	rec := e.do(t, http.MethodGet, "/api/admin/analytics", "", c)
	require.Equal(t, http.StatusOK, rec.Code)
	var sum analytics.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 1, sum.NewCount)
	assert.Equal(t, []analytics.CityCount{{City: "Austin", Count: 1}}, sum.TopCities)

	rec = e.do(t, http.MethodGet, "/api/admin/restaurants/pending", "", c)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/admin/restaurants/4/approve", "", c)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/admin/restaurants/4", "", c)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/admin/attempts", "", c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	log := &fakeAttempts{}
	e.srv.Attempts = log
	rec = e.do(t, http.MethodGet, "/api/admin/attempts?limit=5", "", c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, log.limit)

	rec = e.do(t, http.MethodGet, "/api/admin/attempts?limit=x", "", c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
