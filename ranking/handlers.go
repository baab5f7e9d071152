package ranking

import (
	"context"
	"errors"
	"net/http"
	"time"

	"midway/feasibility"
	"midway/places"
	"midway/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

// rankTimeout bounds the whole ranking operation, nearby search included.
const rankTimeout = 10 * time.Second

type Handler struct {
	Feas     *feasibility.Handler
	Provider places.Provider
}

// RankVenues handles GET /api/events/event/:eventid/venues?category=cafe
func (h *Handler) RankVenues(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), rankTimeout)
	defer cancel()

	category := r.URL.Query().Get("category")
	if category == "" {
		category = "restaurant"
	}

	// ranking never proceeds without a centroid
	region, err := h.Feas.ResolveForEvent(ctx, ps.ByName("eventid"))
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	case errors.Is(err, feasibility.ErrNoParticipants), errors.Is(err, feasibility.ErrNoOverlap):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve meeting point")
		return
	}

	ranked, err := Rank(ctx, region.Centroid, category, h.Provider)
	switch {
	case errors.Is(err, ErrProviderDown):
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to rank venues")
	default:
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"centroid": region.Centroid,
			"venues":   ranked,
		})
	}
}
