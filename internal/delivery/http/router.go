package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Mutating routes require a valid bearer token; read routes are public.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	sessionController *controllers.SessionController,
	registrationController *controllers.RegistrationController,
	speakerController *controllers.SpeakerController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeactivateEvent))

	// Sessions
	mux.HandleFunc("POST /events/{eventID}/sessions", auth(sessionController.CreateSession))
	mux.HandleFunc("GET /events/{eventID}/sessions", sessionController.ListSessionsByEvent)
	mux.HandleFunc("GET /sessions/{sessionID}", sessionController.GetSessionByID)
	mux.HandleFunc("PATCH /sessions/{sessionID}", auth(sessionController.UpdateSession))
	mux.HandleFunc("DELETE /sessions/{sessionID}", auth(sessionController.DeleteSession))

	// Registrations and capacity
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(registrationController.Register))
	mux.HandleFunc("GET /events/{eventID}/registrations", auth(registrationController.ListEventRegistrations))
	mux.HandleFunc("GET /events/{eventID}/capacity", registrationController.GetEventCapacity)
	mux.HandleFunc("GET /registrations/{registrationID}", auth(registrationController.GetRegistration))
	mux.HandleFunc("PATCH /registrations/{registrationID}", auth(registrationController.UpdateRegistration))
	mux.HandleFunc("DELETE /registrations/{registrationID}", auth(registrationController.CancelRegistration))
	mux.HandleFunc("GET /users/me/registrations", auth(registrationController.ListMyRegistrations))

	// Speakers
	mux.HandleFunc("POST /speakers", auth(speakerController.CreateSpeaker))
	mux.HandleFunc("GET /speakers", speakerController.ListSpeakers)
	mux.HandleFunc("GET /speakers/{speakerID}", speakerController.GetSpeakerByID)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
