package events

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"midway/db"
	"midway/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const bannerDir = "static/eventpic"

// UploadBanner handles POST /api/events/event/:eventid/banner. The uploaded
// image is saved alongside a 300px-wide thumbnail.
func (h *Handler) UploadBanner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("banner")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "banner file is required")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to decode image")
		return
	}

	eventID := ps.ByName("eventid")
	fileName := eventID + ".jpg"

	if err := os.MkdirAll(filepath.Join(bannerDir, "thumb"), 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}
	if err := imaging.Save(img, filepath.Join(bannerDir, fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save banner")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(bannerDir, "thumb", fileName)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	res, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID, "createdBy": userID},
		bson.M{"$set": bson.M{"banner": "/" + bannerDir + "/" + fileName, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusForbidden, "Only the event creator can change the banner")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "banner": "/" + bannerDir + "/" + fileName})
}
