package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"midway/db"
	"midway/flexibility"
	"midway/models"
	"midway/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	Flex *flexibility.Service
}

// CreateEvent handles POST /api/events/event
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Title       string             `json:"title"`
		Description string             `json:"description"`
		Category    string             `json:"category"`
		Date        time.Time          `json:"date"`
		Coords      models.Coordinates `json:"coords"`
		Invited     []string           `json:"invited"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	now := time.Now()
	event := models.Event{
		EventID:     uuid.NewString(),
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		CreatedBy:   userID,
		Date:        body.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
		Participants: []models.Participant{
			{UserID: userID, Status: models.StatusGoing, Coords: body.Coords},
		},
	}
	for _, invitee := range body.Invited {
		if invitee == userID {
			continue
		}
		event.Participants = append(event.Participants, models.Participant{
			UserID: invitee,
			Status: models.StatusInvited,
		})
	}

	if _, err := db.EventsCollection.InsertOne(ctx, event); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	// the creator's attendance response is implicit in creating the event
	if err := h.Flex.Seed(ctx, event.EventID, userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to seed flexibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /api/events/event/:eventid
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": ps.ByName("eventid")}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch event")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, event)
}

// GetEvents handles GET /api/events/events with page/limit pagination.
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page := 1
	limit := 10
	if parsed, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && parsed > 0 {
		page = parsed
	}
	if parsed, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && parsed > 0 {
		limit = parsed
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := db.EventsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode events")
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	utils.RespondWithJSON(w, http.StatusOK, events)
}

// RSVP handles POST /api/events/event/:eventid/rsvp. A participant's first
// response also seeds their default flexibility for the event.
func (h *Handler) RSVP(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Status models.AttendanceStatus `json:"status"`
		Coords models.Coordinates      `json:"coords"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch body.Status {
	case models.StatusGoing, models.StatusNotGoing:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Status must be going or notgoing")
		return
	}

	eventID := ps.ByName("eventid")

	update := bson.M{"$set": bson.M{
		"participants.$.status": body.Status,
		"participants.$.coords": body.Coords,
		"updated_at":            time.Now(),
	}}

	res, err := db.EventsCollection.UpdateOne(ctx, rsvpParticipantFilter(eventID, userID), update)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update attendance")
		return
	}
	if res.MatchedCount == 0 {
		// not yet invited: join directly
		res, err = db.EventsCollection.UpdateOne(ctx,
			rsvpJoinFilter(eventID, userID),
			bson.M{
				"$push": bson.M{"participants": models.Participant{
					UserID: userID, Status: body.Status, Coords: body.Coords,
				}},
				"$set": bson.M{"updated_at": time.Now()},
			},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update attendance")
			return
		}
		if res.MatchedCount == 0 {
			// a concurrent first response pushed the entry between the two
			// writes; the positional update applies now
			res, err = db.EventsCollection.UpdateOne(ctx, rsvpParticipantFilter(eventID, userID), update)
			if err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update attendance")
				return
			}
			if res.MatchedCount == 0 {
				utils.RespondWithError(w, http.StatusNotFound, "Event not found")
				return
			}
		}
	}

	if err := h.Flex.Seed(ctx, eventID, userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to seed flexibility")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": body.Status})
}

// rsvpParticipantFilter matches the event when the user is already a
// participant, positioning the update at their entry.
func rsvpParticipantFilter(eventID, userID string) bson.M {
	return bson.M{"eventid": eventID, "participants.userid": userID}
}

// rsvpJoinFilter only matches when the user is not yet a participant, so two
// racing first-time responses can never both push an entry.
func rsvpJoinFilter(eventID, userID string) bson.M {
	return bson.M{"eventid": eventID, "participants.userid": bson.M{"$ne": userID}}
}

// SetFinalVenue handles PUT /api/events/event/:eventid/final-venue. Only the
// id is recorded; the finalization workflow itself lives outside this core.
func (h *Handler) SetFinalVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		VenueID string `json:"venueid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.VenueID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "venueid is required")
		return
	}

	res, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": ps.ByName("eventid"), "createdBy": userID},
		bson.M{"$set": bson.M{"final_venue_id": body.VenueID, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to set final venue")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusForbidden, "Only the event creator can set the final venue")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
