package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/metinatakli/bus-booking-system/internal/domain"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
	// SessionKeyHolderId identifies the session to the reservation
	// coordinator. It outlives token renewal, so holds survive login.
	SessionKeyHolderId = sessionKey("holderID")
)

func (s sessionKey) String() string {
	return string(s)
}

type contextKey string

const (
	userContextKey   = contextKey("user")
	loggerContextKey = contextKey("logger")
)

func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(SessionKeyUserId).(int)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}

func (app *Application) contextSetUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

// contextGetUser returns the user loaded by the authorization middleware, if any.
func (app *Application) contextGetUser(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}

func (app *Application) holderId(r *http.Request) string {
	return app.sessionManager.GetString(r.Context(), SessionKeyHolderId.String())
}

// optionalUserId returns the id of the logged in user, or nil for guests.
func (app *Application) optionalUserId(r *http.Request) *int {
	userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
	if userId == 0 {
		return nil
	}

	return &userId
}
