package routes

import (
	"net/http"

	"midway/events"
	"midway/feasibility"
	"midway/flexibility"
	"midway/live"
	"midway/middleware"
	"midway/ranking"
	"midway/ratelim"
	"midway/suggestions"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/eventpic/*filepath", http.Dir("static/eventpic"))
}

func AddEventRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *events.Handler, sum *events.SummaryHandler) {
	router.GET("/api/events/events", rl.Limit(h.GetEvents))
	router.POST("/api/events/event", middleware.Authenticate(h.CreateEvent))
	router.GET("/api/events/event/:eventid", h.GetEvent)
	router.POST("/api/events/event/:eventid/rsvp", rl.Limit(middleware.Authenticate(h.RSVP)))
	router.PUT("/api/events/event/:eventid/final-venue", middleware.Authenticate(h.SetFinalVenue))
	router.GET("/api/events/event/:eventid/invite-qr", rl.Limit(h.InviteQR))
	router.GET("/api/events/event/:eventid/summary", middleware.Authenticate(sum.EventSummary))
	router.POST("/api/events/event/:eventid/banner", middleware.Authenticate(h.UploadBanner))
}

func AddPlanningRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, feas *feasibility.Handler, rank *ranking.Handler, flex *flexibility.Handler) {
	router.GET("/api/events/event/:eventid/meetpoint", middleware.Authenticate(feas.ResolveEvent))
	router.GET("/api/events/event/:eventid/venues", rl.Limit(middleware.Authenticate(rank.RankVenues)))
	router.GET("/api/events/event/:eventid/flexibility", middleware.Authenticate(flex.GetFlexibility))
	router.PUT("/api/events/event/:eventid/flexibility", rl.Limit(middleware.Authenticate(flex.UpdateFlexibility)))
}

func AddSuggestionRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, h *suggestions.Handler) {
	router.GET("/api/events/event/:eventid/suggestions", h.ListSuggestions)
	router.POST("/api/events/event/:eventid/suggestions", rl.Limit(middleware.Authenticate(h.AddSuggestion)))
	router.POST("/api/events/event/:eventid/suggestions/:venueid/vote", rl.Limit(middleware.Authenticate(h.CastVote)))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/events/:eventid", live.WebSocketHandler(hub))
}
