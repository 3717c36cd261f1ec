package server

import (
	"github.com/gorilla/mux"

	"spots-server/metrics"
	"spots-server/server/handlers"
)

type Router struct {
	spotHandler   *handlers.SpotHandler
	reviewHandler *handlers.ReviewHandler
	mapHandler    *handlers.MapHandler
	metrics       *metrics.Metrics
	router        *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	spotHandler *handlers.SpotHandler,
	reviewHandler *handlers.ReviewHandler,
	mapHandler *handlers.MapHandler,
	m *metrics.Metrics,
	router *mux.Router) *Router {
	return &Router{
		spotHandler:   spotHandler,
		reviewHandler: reviewHandler,
		mapHandler:    mapHandler,
		metrics:       m,
		router:        router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.metrics.Middleware)

	r.router.HandleFunc("/ping", r.spotHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", r.metrics.Handler()).Methods("GET")

	r.router.HandleFunc("/v1/categories", r.spotHandler.GetCategories).Methods("GET")
	r.router.HandleFunc("/v1/amenities", r.spotHandler.GetAmenities).Methods("GET")

	// accepts the filter query args: category, noise, wifi, seating, rating,
	// amenities (comma separated), search, open
	r.router.HandleFunc("/v1/spots", r.spotHandler.GetSpots).Methods("GET")
	// must be registered before /v1/spots/{id}
	r.router.HandleFunc("/v1/spots/map", r.mapHandler.GetSpotsMap).Methods("GET")
	r.router.HandleFunc("/v1/spots/{id}", r.spotHandler.GetSpot).Methods("GET")
	r.router.HandleFunc("/v1/spots/{id}/status", r.spotHandler.GetSpotStatus).Methods("GET")
	r.router.HandleFunc("/v1/spots/{id}/reviews", r.reviewHandler.GetReviews).Methods("GET")
	r.router.HandleFunc("/v1/spots/{id}/reviews", r.reviewHandler.SubmitReview).Methods("POST")

	// session comes from the X-Session-ID header
	r.router.HandleFunc("/v1/reviews/{id}/helpful", r.reviewHandler.MarkHelpful).Methods("POST")
	r.router.HandleFunc("/v1/reviews/{id}/helpful", r.reviewHandler.GetHelpfulVote).Methods("GET")
	r.router.HandleFunc("/v1/votes", r.reviewHandler.GetVotes).Methods("GET")

	r.router.HandleFunc("/v1/map/config", r.mapHandler.GetMapConfig).Methods("GET")
}
