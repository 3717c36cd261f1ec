package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"spots-server/models"
	services "spots-server/service"
)

const SPOT_ID_PATH_VAR = "id"

type SpotHandler struct {
	spotService *services.SpotService
}

func NewSpotHandler(spotService *services.SpotService) *SpotHandler {
	return &SpotHandler{spotService: spotService}
}

// GetSpots handles GET /v1/spots. The query string is a filter, see
// models.ParseFilter.
func (h *SpotHandler) GetSpots(w http.ResponseWriter, r *http.Request) {
	filter, err := models.ParseFilter(r.URL.Query(), h.spotService.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	spots, err := h.spotService.ListSpots(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}

func (h *SpotHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	spot, err := h.spotService.GetSpot(r.Context(), mux.Vars(r)[SPOT_ID_PATH_VAR])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spot)
}

func (h *SpotHandler) GetSpotStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.spotService.GetSpotStatus(r.Context(), mux.Vars(r)[SPOT_ID_PATH_VAR])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *SpotHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.spotService.GetCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *SpotHandler) GetAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.spotService.GetAmenities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, amenities)
}

// Ping handles GET /ping
func (h *SpotHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
