package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"midway/models"
	"midway/places"
	"midway/rdx"
	"midway/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Ledger *Ledger
}

// AddSuggestion handles POST /api/events/event/:eventid/suggestions
func (h *Handler) AddSuggestion(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var candidate places.Details
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	venue, err := h.Ledger.Add(ctx, ps.ByName("eventid"), userID, candidate)
	switch {
	case errors.Is(err, ErrEventNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrDuplicateSuggestion):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case err != nil:
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithJSON(w, http.StatusCreated, venue)
	}
}

// ListSuggestions handles GET /api/events/event/:eventid/suggestions
func (h *Handler) ListSuggestions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	venues, err := h.Ledger.List(ctx, ps.ByName("eventid"))
	switch {
	case errors.Is(err, ErrEventNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list suggestions")
	default:
		type entry struct {
			models.SuggestedVenue
			Tally models.VoteTally `json:"tally"`
		}
		out := make([]entry, 0, len(venues))
		for _, v := range venues {
			out = append(out, entry{SuggestedVenue: v, Tally: v.Tally()})
		}
		utils.RespondWithJSON(w, http.StatusOK, out)
	}
}

// CastVote handles POST /api/events/event/:eventid/suggestions/:venueid/vote
func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Direction models.VoteDirection `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	eventID := ps.ByName("eventid")
	venueID := ps.ByName("venueid")

	tally, err := h.Ledger.CastVote(ctx, eventID, venueID, userID, body.Direction)
	switch {
	case errors.Is(err, ErrEventNotFound), errors.Is(err, ErrVenueNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case err != nil:
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		cacheTally(eventID, venueID, tally)
		utils.RespondWithJSON(w, http.StatusOK, tally)
	}
}

// cacheTally mirrors the latest tally into Redis for cheap reads elsewhere.
// Best-effort; the suggestion document stays the source of truth.
func cacheTally(eventID, venueID string, tally models.VoteTally) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	data, err := json.Marshal(tally)
	if err != nil {
		return
	}
	key := "votes:tally:" + eventID + ":" + venueID
	if err := rdx.Conn.Set(ctx, key, data, 10*time.Minute).Err(); err != nil {
		log.Printf("votes: tally cache write failed: %v", err)
	}
}
