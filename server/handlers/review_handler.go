package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"spots-server/config"
	"spots-server/models"
	services "spots-server/service"
)

const REVIEW_ID_PATH_VAR = "id"

type helpfulResponse struct {
	ReviewID string `json:"review_id"`
	Helpful  int    `json:"helpful"`
}

type voteStatusResponse struct {
	ReviewID string `json:"review_id"`
	Voted    bool   `json:"voted"`
}

type votesResponse struct {
	ReviewIDs []string `json:"review_ids"`
}

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListReviews(r.Context(), mux.Vars(r)[SPOT_ID_PATH_VAR])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// SubmitReview handles POST /v1/spots/{id}/reviews. The spot id in the path
// wins over any spot_id in the body.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var sub models.ReviewSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid review body"})
		return
	}
	sub.SpotID = mux.Vars(r)[SPOT_ID_PATH_VAR]

	review, err := h.reviewService.SubmitReview(r.Context(), sub)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// MarkHelpful handles POST /v1/reviews/{id}/helpful for the X-Session-ID session.
func (h *ReviewHandler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)[REVIEW_ID_PATH_VAR]
	count, err := h.reviewService.MarkHelpful(r.Context(), r.Header.Get(config.SESSION_HEADER), reviewID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, helpfulResponse{ReviewID: reviewID, Helpful: count})
}

func (h *ReviewHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	ids, err := h.reviewService.VotedReviewIDs(r.Header.Get(config.SESSION_HEADER))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, votesResponse{ReviewIDs: ids})
}

// GetHelpfulVote handles GET /v1/reviews/{id}/helpful for the X-Session-ID session.
func (h *ReviewHandler) GetHelpfulVote(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)[REVIEW_ID_PATH_VAR]
	voted, err := h.reviewService.HasVoted(r.Header.Get(config.SESSION_HEADER), reviewID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, voteStatusResponse{ReviewID: reviewID, Voted: voted})
}
