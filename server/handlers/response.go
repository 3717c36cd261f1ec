package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"spots-server/dao/redis"
	"spots-server/dao/tables"
	"spots-server/models"
	services "spots-server/service"
)

// GENERIC_ERROR_MESSAGE is shown for store failures; details stay in the logs.
const GENERIC_ERROR_MESSAGE = "Something went wrong. Please try again."

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithFields(log.Fields{
			"prefix": "handlers",
			"error":  err,
		}).Error("failed to encode response")
	}
}

// writeError maps service errors to a status and a message safe to show.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *models.ValidationError
	var filterErr *models.FilterError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message})
	case errors.As(err, &filterErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: filterErr.Error()})
	case errors.Is(err, services.ErrMissingSession), errors.Is(err, redis.ErrInvalidSession):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, tables.ErrSpotNotFound), errors.Is(err, tables.ErrReviewNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrAlreadyVoted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.WithFields(log.Fields{
			"prefix": "handlers",
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err,
		}).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: GENERIC_ERROR_MESSAGE})
	}
}
