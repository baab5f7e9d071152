package flexibility

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"midway/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Svc *Service
}

// UpdateFlexibility handles PUT /api/events/event/:eventid/flexibility
func (h *Handler) UpdateFlexibility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.Svc.Update(ctx, ps.ByName("eventid"), userID, body.Value)
	if errors.Is(err, ErrOutOfRange) {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update flexibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "value": body.Value})
}

// GetFlexibility handles GET /api/events/event/:eventid/flexibility
func (h *Handler) GetFlexibility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	v, err := h.Svc.Get(ctx, ps.ByName("eventid"), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch flexibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"value": v})
}
