package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/bus-booking-system/api"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	// provider callbacks carry no session cookie
	r.Post("/webhook", app.StripeWebhookHandler)

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(app.ensureGuestUserSession)

		r.Get("/openapi.json", app.GetOpenAPIDocument)

		api.HandlerWithOptions(app, api.ChiServerOptions{
			BaseRouter:       r,
			Middlewares:      []api.MiddlewareFunc{app.authorizeOperation},
			ErrorHandlerFunc: app.paramErrorResponse,
		})
	})

	return r
}

func (app *Application) GetOpenAPIDocument(w http.ResponseWriter, r *http.Request) {
	if app.swagger == nil {
		app.notFoundResponse(w, r)
		return
	}

	err := app.writeJSON(w, http.StatusOK, app.swagger, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
