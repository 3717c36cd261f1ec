package handlers

import (
	"bytes"
	"net/http"

	"spots-server/config"
	"spots-server/models"
	services "spots-server/service"
	"spots-server/util"
)

// MapConfigResponse is what the browser needs to draw its own map tiles.
type MapConfigResponse struct {
	Provider    string     `json:"provider"`
	AccessToken string     `json:"access_token"`
	Style       string     `json:"style"`
	Center      [2]float64 `json:"center"` // [lng, lat]
	Zoom        int        `json:"zoom"`
}

type MapHandler struct {
	spotService *services.SpotService
	mapConfig   config.MapConfig
}

func NewMapHandler(spotService *services.SpotService, mapConfig config.MapConfig) *MapHandler {
	return &MapHandler{spotService: spotService, mapConfig: mapConfig}
}

func (h *MapHandler) GetMapConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MapConfigResponse{
		Provider:    h.mapConfig.Provider,
		AccessToken: h.mapConfig.APIKey,
		Style:       h.mapConfig.Style,
		Center:      [2]float64{h.mapConfig.CenterLng, h.mapConfig.CenterLat},
		Zoom:        h.mapConfig.Zoom,
	})
}

// GetSpotsMap handles GET /v1/spots/map, an HTML page plotting the spots that
// match the same filter query as GET /v1/spots.
func (h *MapHandler) GetSpotsMap(w http.ResponseWriter, r *http.Request) {
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
	categories, err := h.spotService.GetCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	// render fully before writing so a failure can still become a 500
	var page bytes.Buffer
	if err := util.RenderSpotsMap(&page, spots, categories); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page.Bytes())
}
