package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"gatherly/internal/delivery/http/controllers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	guestController *controllers.GuestController,
	eventController *controllers.EventController,
	rsvpController *controllers.RSVPController,
	galleryController *controllers.GalleryController,
	searchController *controllers.SearchController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Profile
	mux.HandleFunc("GET /profile", auth(guestController.GetProfile))
	mux.HandleFunc("POST /profile", auth(guestController.CreateProfile))

	// Events
	mux.HandleFunc("POST /events", auth(eventController.Create))
	mux.HandleFunc("GET /events/hosted", auth(eventController.ListHosted))
	mux.HandleFunc("GET /events/available", auth(eventController.ListAvailable))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.Get))
	mux.HandleFunc("GET /hosts/{guestID}/event", auth(eventController.FirstByHost))

	// RSVPs
	mux.HandleFunc("PUT /events/{eventID}/rsvp", auth(rsvpController.Upsert))
	mux.HandleFunc("GET /events/{eventID}/attendees", auth(rsvpController.ListAttendees))
	mux.HandleFunc("PATCH /events/{eventID}/rsvps/{rsvpID}/role", auth(rsvpController.SetRole))

	// Gallery
	mux.HandleFunc("POST /events/{eventID}/images", auth(galleryController.Upload))
	mux.HandleFunc("GET /events/{eventID}/images", auth(galleryController.List))
	mux.HandleFunc("DELETE /events/{eventID}/images/{imageID}", auth(galleryController.Delete))

	// Search
	mux.HandleFunc("GET /search/hosts", auth(searchController.SearchHosts))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
