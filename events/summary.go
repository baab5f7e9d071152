package events

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"midway/feasibility"
	"midway/suggestions"
	"midway/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/mongo"
)

type SummaryHandler struct {
	Feas   *feasibility.Handler
	Ledger *suggestions.Ledger
}

// EventSummary handles GET /api/events/event/:eventid/summary and renders a
// printable PDF: the resolved meeting point plus the suggestion leaderboard.
func (h *SummaryHandler) EventSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	region, err := h.Feas.ResolveForEvent(ctx, eventID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil && !renderableResolveErr(err) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve meeting point")
		return
	}
	// an unresolvable region still yields a summary; the PDF says so

	venues, lerr := h.Ledger.List(ctx, eventID)
	if errors.Is(lerr, suggestions.ErrEventNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if lerr != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list suggestions")
		return
	}

	// leaderboard: net score descending, submission order on ties
	sort.SliceStable(venues, func(i, j int) bool {
		ti, tj := venues[i].Tally(), venues[j].Tally()
		return ti.Up-ti.Down > tj.Up-tj.Down
	})

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Meetup Summary")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	switch {
	case errors.Is(err, feasibility.ErrNoOverlap):
		pdf.Cell(0, 10, "Meeting point: not resolvable (travel ranges do not intersect)")
		pdf.Ln(10)
	case errors.Is(err, feasibility.ErrNoParticipants):
		pdf.Cell(0, 10, "Meeting point: pending (no attending participants yet)")
		pdf.Ln(10)
	default:
		pdf.Cell(0, 10, fmt.Sprintf("Meeting point: (%.4f, %.4f)", region.Centroid.Lng, region.Centroid.Lat))
		pdf.Ln(8)
		pdf.Cell(0, 10, fmt.Sprintf("Feasible box: x [%.4f, %.4f]  y [%.4f, %.4f]",
			region.MinX, region.MaxX, region.MinY, region.MaxY))
		pdf.Ln(10)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, "Suggested venues")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 11)

	if len(venues) == 0 {
		pdf.Cell(0, 8, "No suggestions yet.")
		pdf.Ln(8)
	}
	for i, v := range venues {
		t := v.Tally()
		pdf.Cell(0, 8, fmt.Sprintf("%d. %s (+%d / -%d) - %s", i+1, v.Name, t.Up, t.Down, v.Address))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=meetup-"+eventID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// renderableResolveErr reports whether a resolve failure is a planning
// outcome the summary should print. Anything else (store failures, decode
// errors) is an infrastructure problem and becomes a 500 instead.
func renderableResolveErr(err error) bool {
	return errors.Is(err, feasibility.ErrNoOverlap) || errors.Is(err, feasibility.ErrNoParticipants)
}
