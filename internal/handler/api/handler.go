package api

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	domrepo "PawMatch/internal/domain/repository"
	"PawMatch/internal/service/ratelimit"
	"PawMatch/internal/usecase"
	"PawMatch/pkg/cache"
	applogger "PawMatch/pkg/logger"
)

// Handler wires the booking and recommendation endpoints onto echo.
type Handler struct {
	logger       *applogger.Logger
	scorer       *usecase.TrustScorer
	availability *usecase.AvailabilityIndex
	slots        *usecase.TimeSlotRecommender
	orchestrator *usecase.RecommendationOrchestrator
	lifecycle    *usecase.BookingLifecycle
	store        domrepo.DataStore
	history      domrepo.BookingHistory
	cache        cache.Cache
	trustTTL     time.Duration
	rl           *ratelimit.Limiter
	hub          *Hub
}

// Deps groups the handler's collaborators.
type Deps struct {
	Scorer       *usecase.TrustScorer
	Availability *usecase.AvailabilityIndex
	Slots        *usecase.TimeSlotRecommender
	Orchestrator *usecase.RecommendationOrchestrator
	Lifecycle    *usecase.BookingLifecycle
	Store        domrepo.DataStore
	History      domrepo.BookingHistory
	Cache        cache.Cache
	TrustTTL     time.Duration
}

func NewHandler(d Deps, l *applogger.Logger) *Handler {
	return &Handler{
		logger:       l.With("api"),
		scorer:       d.Scorer,
		availability: d.Availability,
		slots:        d.Slots,
		orchestrator: d.Orchestrator,
		lifecycle:    d.Lifecycle,
		store:        d.Store,
		history:      d.History,
		cache:        d.Cache,
		trustTTL:     d.TrustTTL,
		rl:           ratelimit.New(),
		hub:          NewHub(l),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/ws/bookings", h.BookingStream)

	g := e.Group("/api")
	g.GET("/sitters/:id/trust-score", h.TrustScore)
	g.GET("/sitters/:id/availability", h.Availability)
	g.POST("/slots/suggest", h.SuggestSlots)
	g.POST("/recommendations", h.Recommend)
	g.POST("/recommendations/timing", h.RecommendWithTiming)
	g.POST("/bookings", h.CreateBooking)
	g.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
}

// Health reports the state of the backing stores. History being down degrades
// the response but keeps the service up, matching the recommender's fallback.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := map[string]string{"store": "ok", "history": "ok"}
	healthy := true
	if err := h.store.Health(ctx); err != nil {
		status["store"] = err.Error()
		healthy = false
	}
	if err := h.history.Health(ctx); err != nil {
		status["history"] = err.Error()
	}
	if !healthy {
		return c.JSON(503, status)
	}
	return c.JSON(200, status)
}

// Shutdown closes the websocket hub.
func (h *Handler) Shutdown() {
	h.hub.Close()
}
