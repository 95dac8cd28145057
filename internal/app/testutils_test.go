package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/metinatakli/bus-booking-system/internal/mailer"
	"github.com/metinatakli/bus-booking-system/internal/mocks"
	"github.com/metinatakli/bus-booking-system/internal/realtime"
	"github.com/metinatakli/bus-booking-system/internal/reservation"
	"github.com/metinatakli/bus-booking-system/internal/validator"
	"github.com/shopspring/decimal"
)

const (
	ErrInternalServer = "The server encountered a problem and could not process your request"
	ErrNotFound       = "The requested resource not found"
	ErrInvalidValues  = "One or more fields have invalid values"

	testScheduleId = 1
	testHolderId   = "8a4f6f5e-4d67-4c4f-9d87-2b1f7f3f1c10"
	otherHolderId  = "1c0bb2d1-93c6-4a8e-8f45-7d1c7e6a9b22"
)

var (
	testSchedule = domain.Schedule{
		ID:            testScheduleId,
		Origin:        "Ankara",
		Destination:   "Istanbul",
		OperatorName:  "Anatolia Express",
		BusPlate:      "06 ABC 123",
		DepartureTime: time.Now().Add(48 * time.Hour).Truncate(time.Minute),
		ArrivalTime:   time.Now().Add(54 * time.Hour).Truncate(time.Minute),
		BaseFare:      decimal.RequireFromString("25.00"),
		Status:        domain.ScheduleStatusScheduled,
		TotalSeats:    4,
	}

	testSeats = []domain.Seat{
		{ID: 1, Row: 1, Col: 1, Label: "1A", Type: "single", ExtraPrice: decimal.RequireFromString("5.00")},
		{ID: 2, Row: 1, Col: 2, Label: "1B", Type: "front", ExtraPrice: decimal.RequireFromString("2.50")},
		{ID: 3, Row: 2, Col: 1, Label: "2A", Type: "standard", ExtraPrice: decimal.Zero},
		{ID: 4, Row: 2, Col: 2, Label: "2B", Type: "standard", ExtraPrice: decimal.Zero},
	}
)

func newTestApplication(opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := &Application{
		config:         Config{Env: "test", Currency: "usd"},
		validator:      validator.NewValidator(),
		logger:         logger,
		sessionManager: scs.New(),
		mailer:         mailer.NewMockMailer(),
		userRepo:       &mocks.MockUserRepo{},
		scheduleRepo:   scheduleRepoWith(&testSchedule),
		hub:            realtime.NewHub(logger),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// newTestCoordinator wires a coordinator to an in-memory hold store.
func newTestCoordinator(t *testing.T, seats domain.SeatRepository, bookings domain.BookingRepository) (
	*reservation.Coordinator, *mocks.MockBroadcaster) {

	t.Helper()

	broadcaster := &mocks.MockBroadcaster{}
	coordinator, err := reservation.NewCoordinator(
		reservation.Config{HoldWindow: 10 * time.Minute, MaxSeatsPerHold: 4},
		reservation.NewMemoryHoldStore(time.Now),
		seats,
		bookings,
		broadcaster,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	if err != nil {
		t.Fatalf("failed to create coordinator: %v", err)
	}

	return coordinator, broadcaster
}

func scheduleRepoWith(schedule *domain.Schedule) *mocks.MockScheduleRepo {
	return &mocks.MockScheduleRepo{
		GetByIdFunc: func(_ context.Context, id int) (*domain.Schedule, error) {
			if schedule == nil || id != schedule.ID {
				return nil, domain.ErrRecordNotFound
			}
			s := *schedule
			return &s, nil
		},
	}
}

func seatsByIds(ids ...int) []domain.Seat {
	var seats []domain.Seat
	for _, seat := range testSeats {
		if slices.Contains(ids, seat.ID) {
			seats = append(seats, seat)
		}
	}
	return seats
}

// setupTestSession loads a fresh session carrying the given holder id and,
// when userId is not zero, a logged in user.
func setupTestSession(t *testing.T, app *Application, r *http.Request, holderId string, userId int) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	if holderId != "" {
		app.sessionManager.Put(ctx, SessionKeyHolderId.String(), holderId)
	}
	if userId != 0 {
		app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)
		ctx = context.WithValue(ctx, SessionKeyUserId, userId)
	}

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	t.Helper()

	if tt.wantStatus < 400 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		if len(validationResp.ValidationErrors) == 0 {
			if tt.wantErrMessage != "" && validationResp.Message != tt.wantErrMessage {
				t.Errorf("Error message = %v, want %v", validationResp.Message, tt.wantErrMessage)
			}
			return
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if tt.wantErrMessage != "" && !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}
	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
