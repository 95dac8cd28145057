package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/metinatakli/bus-booking-system/api"
	"github.com/metinatakli/bus-booking-system/internal/domain"
	"github.com/metinatakli/bus-booking-system/internal/policy"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)

		ctx := context.WithValue(r.Context(), loggerContextKey, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ensureGuestUserSession gives every visitor a holder id, logged in or not.
func (app *Application) ensureGuestUserSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.holderId(r) == "" {
			app.sessionManager.Put(r.Context(), SessionKeyHolderId.String(), uuid.NewString())

			_, _, err := app.sessionManager.Commit(r.Context())
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// authorizeOperation enforces the security requirements the router attaches to
// an operation. Operations without requirements pass through, an empty scope
// list only needs a logged in user, and every listed scope must be allowed by
// the access policy.
func (app *Application) authorizeOperation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scopes, ok := r.Context().Value(api.SessionAuthScopes).([]string)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
		if userId == 0 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), SessionKeyUserId, userId)
		r = r.WithContext(ctx)

		if len(scopes) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := app.userRepo.GetById(r.Context(), userId)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrRecordNotFound):
				app.unauthorizedAccessResponse(w, r)
			default:
				app.serverErrorResponse(w, r, err)
			}

			return
		}

		for _, scope := range scopes {
			allowed, err := app.authorizer.Allowed(r.Context(), user, policy.Action(scope))
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}

			if !allowed {
				app.contextGetLogger(r).Warn("operation denied by policy", "user_id", userId, "action", scope)
				app.forbiddenResponse(w, r)
				return
			}
		}

		next.ServeHTTP(w, app.contextSetUser(r, user))
	})
}
