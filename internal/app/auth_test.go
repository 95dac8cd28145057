package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/metinatakli/bus-booking-system/internal/mocks"
	"golang.org/x/crypto/bcrypt"
)

const ErrInvalidCredentials = "Invalid authentication credentials"

func TestRegisterUser(t *testing.T) {
	validInput := api.RegisterRequest{
		FirstName: "Freddie",
		LastName:  "Mercury",
		Email:     "freddie@example.com",
		Phone:     "+44 20 7946 0958",
		Password:  "Pass123!@#",
	}

	tests := []struct {
		name           string
		input          api.RegisterRequest
		userRepoFunc   func(context.Context, *domain.User) error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "successful registration",
			input: validInput,
			userRepoFunc: func(ctx context.Context, u *domain.User) error {
				u.ID = 1
				u.Version = 1
				return nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "invalid password format",
			input: func() api.RegisterRequest {
				in := validInput
				in.Password = "weak"
				return in
			}(),
			wantStatus: http.StatusUnprocessableEntity,
			wantErrMessage: "must be at least 8 characters long and include at least one uppercase letter, " +
				"one lowercase letter, one number, and one special character (!@#$%^&*).",
		},
		{
			name: "invalid phone",
			input: func() api.RegisterRequest {
				in := validInput
				in.Phone = "12"
				return in
			}(),
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be a valid phone number",
		},
		{
			name: "missing last name",
			input: func() api.RegisterRequest {
				in := validInput
				in.LastName = ""
				return in
			}(),
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:  "duplicate email",
			input: validInput,
			userRepoFunc: func(ctx context.Context, u *domain.User) error {
				return domain.ErrUserAlreadyExists
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid input data",
		},
		{
			name:  "database failure",
			input: validInput,
			userRepoFunc: func(ctx context.Context, u *domain.User) error {
				return errors.New("connection refused")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *domain.User

			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{CreateFunc: func(ctx context.Context, u *domain.User) error {
					created = u
					return tt.userRepoFunc(ctx, u)
				}}
			})

			w, r := executeRequest(t, http.MethodPost, "/users/register", tt.input)

			app.RegisterUser(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("RegisterUser() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusCreated {
				var response api.UserResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if response.Id != 1 {
					t.Errorf("Expected id=1 in response, got %v", response.Id)
				}
				if response.Email != tt.input.Email {
					t.Errorf("Expected email=%s in response, got %v", tt.input.Email, response.Email)
				}
				if response.Role != string(domain.RoleCustomer) {
					t.Errorf("Expected role=%s, got %v", domain.RoleCustomer, response.Role)
				}

				match, err := created.Password.Matches(tt.input.Password)
				if err != nil || !match {
					t.Errorf("Stored password hash does not match the input password")
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func testUser(t *testing.T, plaintext string, active bool) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	user := &domain.User{
		ID:        1,
		FirstName: "Freddie",
		LastName:  "Mercury",
		Email:     "freddie@example.com",
		Role:      domain.RoleCustomer,
		IsActive:  active,
		Version:   1,
	}
	user.Password.Hash = hash

	return user
}

func TestLogin(t *testing.T) {
	validInput := api.LoginRequest{Email: "freddie@example.com", Password: "Pass123!@#"}

	tests := []struct {
		name           string
		input          api.LoginRequest
		loggedInAs     int
		getByEmailFunc func(context.Context, string) (*domain.User, error)
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "user is already logged in",
			input:      validInput,
			loggedInAs: 1,
			wantStatus: http.StatusOK,
		},
		{
			name:           "malformed email",
			input:          api.LoginRequest{Email: "freddie", Password: "Pass123!@#"},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:  "user not found",
			input: validInput,
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:  "incorrect password",
			input: api.LoginRequest{Email: "freddie@example.com", Password: "WrongPass123!@#"},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return testUser(t, "Pass123!@#", true), nil
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:  "deactivated user",
			input: validInput,
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return testUser(t, "Pass123!@#", false), nil
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name:  "database failure",
			input: validInput,
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, errors.New("connection refused")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:  "successful login",
			input: validInput,
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return testUser(t, "Pass123!@#", true), nil
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{GetByEmailFunc: tt.getByEmailFunc}
			})

			w, r := executeRequest(t, http.MethodPost, "/sessions", tt.input)
			r = setupTestSession(t, app, r, testHolderId, tt.loggedInAs)

			app.Login(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("Login() status = %v, want %v", got, tt.wantStatus)
			}

			switch tt.wantStatus {
			case http.StatusOK:
				var response api.AlreadyLoggedInResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if response.Message != "You are already logged in" {
					t.Errorf("Login() message = %q", response.Message)
				}
			case http.StatusNoContent:
				if got := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String()); got != 1 {
					t.Errorf("Expected user id 1 in session, got %d", got)
				}
				// seat holds belong to the holder id, which must survive the login
				if got := app.holderId(r); got != testHolderId {
					t.Errorf("Expected holder id %s to survive login, got %s", testHolderId, got)
				}
			default:
				if got := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String()); got != 0 {
					t.Errorf("Expected no user in session, got %d", got)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name       string
		userId     int
		wantStatus int
	}{
		{name: "logged in user", userId: 1, wantStatus: http.StatusNoContent},
		{name: "guest", userId: 0, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()

			w, r := executeRequest(t, http.MethodDelete, "/sessions", nil)
			r = setupTestSession(t, app, r, testHolderId, tt.userId)

			app.Logout(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("Logout() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusNoContent {
				if got := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String()); got != 0 {
					t.Errorf("Expected session to be destroyed, user id %d still present", got)
				}
			}
		})
	}
}
