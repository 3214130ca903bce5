package http

import (
	"net/http"

	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers bundles the handler groups the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Event        *controllers.EventController
	Participant  *controllers.ParticipantController
	Task         *controllers.TaskController
	Notification *controllers.NotificationController
	Lookup       *controllers.LookupController
}

// NewRouter initializes the HTTP router with all application routes.
// Everything except auth, swagger, and metrics requires a bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, metrics *middleware.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Events
	mux.HandleFunc("GET /events", auth(c.Event.ListEvents))
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("PUT /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))

	// Participants
	mux.HandleFunc("GET /events/{eventID}/participants", auth(c.Participant.ListParticipants))
	mux.HandleFunc("POST /events/{eventID}/participants", auth(c.Participant.InviteParticipant))
	mux.HandleFunc("GET /events/{eventID}/participants/available", auth(c.Participant.ListAvailableUsers))

	// Tasks
	mux.HandleFunc("GET /events/{eventID}/tasks", auth(c.Task.ListTasks))
	mux.HandleFunc("POST /events/{eventID}/tasks", auth(c.Task.CreateTask))
	mux.HandleFunc("PATCH /tasks/{taskID}", auth(c.Task.UpdateTask))

	// Notifications
	mux.HandleFunc("GET /events/{eventID}/notifications", auth(c.Notification.ListEventNotifications))
	mux.HandleFunc("POST /events/{eventID}/notifications", auth(c.Notification.CreateNotification))
	mux.HandleFunc("GET /notifications", auth(c.Notification.ListMyNotifications))
	mux.HandleFunc("POST /notifications/{recipientID}/read", auth(c.Notification.MarkRead))

	// Lookups
	mux.HandleFunc("GET /categories", auth(c.Lookup.ListCategories))
	mux.HandleFunc("GET /locations", auth(c.Lookup.ListLocations))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Metrics
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	return mux
}
