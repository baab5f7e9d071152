package feasibility

import (
	"context"
	"errors"
	"net/http"
	"time"

	"midway/db"
	"midway/flexibility"
	"midway/models"
	"midway/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Handler struct {
	Flex *flexibility.Service
}

// ResolveEvent handles GET /api/events/event/:eventid/meetpoint
func (h *Handler) ResolveEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	region, err := h.ResolveForEvent(ctx, eventID)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
	case errors.Is(err, ErrNoParticipants):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNoOverlap):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve meeting point")
	default:
		utils.RespondWithJSON(w, http.StatusOK, region)
	}
}

// ResolveForEvent loads the event's Going participants and their
// flexibilities and runs the resolver. Shared with the ranking handler,
// which must not rank without a centroid.
func (h *Handler) ResolveForEvent(ctx context.Context, eventID string) (*models.FeasibleRegion, error) {
	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		return nil, err
	}

	var constraints []Constraint
	for _, p := range event.Going() {
		flex, err := h.Flex.Get(ctx, eventID, p.UserID)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, Constraint{
			UserID:      p.UserID,
			X:           p.Coords.Lng,
			Y:           p.Coords.Lat,
			Flexibility: flex,
		})
	}

	return Resolve(constraints)
}
