package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie) (*http.Request, error) {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// Client talks to the test server as one browser session.
type Client struct {
	t       testing.TB
	baseURL string
	http    *http.Client
}

func newClient(t testing.TB, baseURL string) *Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &Client{
		t:       t,
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

// Do sends body as JSON and returns the status code and the raw response body.
func (c *Client) Do(method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(c.t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)

	return res.StatusCode, raw
}

// DoJSON is Do with the response decoded into dst.
func (c *Client) DoJSON(method, path string, body any, dst any) int {
	status, raw := c.Do(method, path, body)

	if dst != nil && len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, dst), "response: %s", raw)
	}

	return status
}

func (c *Client) Hold(scheduleId int, seatIds ...int) (int, []byte) {
	return c.Do(http.MethodPut, fmt.Sprintf("/schedules/%d/hold", scheduleId), api.HoldRequest{SeatIds: seatIds})
}

func (c *Client) Release(scheduleId int, seatIds ...int) (int, []byte) {
	return c.Do(http.MethodDelete, fmt.Sprintf("/schedules/%d/hold", scheduleId), api.HoldRequest{SeatIds: seatIds})
}

func (c *Client) Checkout(scheduleId int, seatIds ...int) api.CheckoutResponse {
	passengers := make([]api.Passenger, len(seatIds))
	for i, id := range seatIds {
		passengers[i] = api.Passenger{SeatId: id, FullName: fmt.Sprintf("Passenger %c", 'A'+i)}
	}

	var resp api.CheckoutResponse
	status := c.DoJSON(
		http.MethodPost,
		fmt.Sprintf("/schedules/%d/checkout", scheduleId),
		api.CheckoutRequest{ContactEmail: TestContactEmail, Passengers: passengers},
		&resp)
	require.Equal(c.t, http.StatusCreated, status)

	return resp
}

func (c *Client) Book(scheduleId int, reference string) (int, api.BookingResponse) {
	var resp api.BookingResponse
	status := c.DoJSON(
		http.MethodPost,
		fmt.Sprintf("/schedules/%d/bookings", scheduleId),
		api.CreateBookingRequest{PaymentReference: reference},
		&resp)

	return status, resp
}

func (c *Client) SeatMap(scheduleId int) api.SeatMapResponse {
	var resp api.SeatMapResponse
	status := c.DoJSON(http.MethodGet, fmt.Sprintf("/schedules/%d/seat-map", scheduleId), nil, &resp)
	require.Equal(c.t, http.StatusOK, status)

	return resp
}

func (c *Client) Register(email string) {
	status, raw := c.Do(http.MethodPost, "/users/register", api.RegisterRequest{
		FirstName: TestUserFirstName,
		LastName:  TestUserLastName,
		Email:     email,
		Phone:     TestUserPhone,
		Password:  TestUserPassword,
	})
	require.Equal(c.t, http.StatusCreated, status, "response: %s", raw)
}

func (c *Client) Login(email, password string) int {
	status, _ := c.Do(http.MethodPost, "/sessions", api.LoginRequest{Email: email, Password: password})
	return status
}

func seatStatus(seatMap api.SeatMapResponse, seatId int) api.SeatMapSeat {
	for _, seat := range seatMap.Seats {
		if seat.Id == seatId {
			return seat
		}
	}

	return api.SeatMapSeat{}
}

// seatIdsByLabel resolves seat labels of the bus serving the schedule.
func seatIdsByLabel(t testing.TB, app *TestApp, scheduleId int, labels ...string) []int {
	query := `
		SELECT se.id
		FROM schedules sc
		JOIN seats se ON se.bus_id = sc.bus_id
		WHERE sc.id = $1 AND se.label = $2`

	ids := make([]int, len(labels))
	for i, label := range labels {
		err := app.DB.QueryRow(context.Background(), query, scheduleId, label).Scan(&ids[i])
		require.NoError(t, err, "seat %s of schedule %d", label, scheduleId)
	}

	return ids
}

func executeSQL(t testing.TB, app *TestApp, query string, args ...any) {
	_, err := app.DB.Exec(context.Background(), query, args...)
	require.NoError(t, err)
}

func countRows(t testing.TB, app *TestApp, query string, args ...any) int {
	var n int
	err := app.DB.QueryRow(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)

	return n
}

func paymentStatus(t testing.TB, app *TestApp, reference string) domain.PaymentStatus {
	var status domain.PaymentStatus
	err := app.DB.QueryRow(context.Background(),
		`SELECT status FROM payments WHERE provider_reference = $1`, reference).Scan(&status)
	require.NoError(t, err)

	return status
}

func resetState(t testing.TB, app *TestApp) {
	executeSQL(t, app, `TRUNCATE booking_seats, bookings, payments, users RESTART IDENTITY CASCADE`)
	require.NoError(t, app.Redis.FlushAll(context.Background()).Err())
	app.Mailer.Reset()
}
