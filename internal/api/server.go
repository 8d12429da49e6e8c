package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/amina/opportunity-radar/internal/cache"
	"github.com/amina/opportunity-radar/internal/models"
	"github.com/amina/opportunity-radar/internal/rank"
	"github.com/amina/opportunity-radar/internal/telegram"
)

// Provider produces aggregated opportunity data. Implemented by
// ingest.Aggregator; stubbed in handler tests.
type Provider interface {
	Aggregate(ctx context.Context) models.AggregatedOpportunities
	Relevant(ctx context.Context, filter models.OpportunityFilter) []models.Opportunity
}

// Notifier delivers a digest to a chat.
type Notifier interface {
	SendDigest(ctx context.Context, chatID string, entries []models.TelegramDigestEntry) error
}

type Server struct {
	Echo     *echo.Echo
	provider Provider
	notifier Notifier
	store    *cache.Cache // optional; nil disables response caching
}

func NewServer(provider Provider, notifier Notifier, store *cache.Cache, corsOrigins []string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	if len(corsOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	s := &Server{
		Echo:     e,
		provider: provider,
		notifier: notifier,
		store:    store,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	api := s.Echo.Group("/api/v1")
	api.GET("/opportunities", s.handleListOpportunities)
	api.GET("/sources", s.handleGetSources)
	api.GET("/stats", s.handleGetStats)
	api.POST("/telegram/digest", s.handleTelegramDigest)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// aggregated returns the cached aggregation when available, recomputing
// and re-caching on a miss. With no cache configured it always recomputes.
func (s *Server) aggregated(c echo.Context) models.AggregatedOpportunities {
	ctx := c.Request().Context()
	if s.store != nil {
		if aggregated, ok := s.store.GetAggregated(ctx); ok {
			return aggregated
		}
	}
	aggregated := s.provider.Aggregate(ctx)
	if s.store != nil {
		if err := s.store.SetAggregated(ctx, aggregated); err != nil {
			c.Logger().Warnf("caching aggregation failed: %v", err)
		}
	}
	return aggregated
}

func (s *Server) handleListOpportunities(c echo.Context) error {
	filter := parseFilter(c)
	aggregated := s.aggregated(c)
	matched := rank.Sort(rank.Filter(aggregated.Opportunities, filter))

	return c.JSON(http.StatusOK, map[string]any{
		"opportunities": matched,
		"generatedAt":   aggregated.GeneratedAt,
		"sources":       aggregated.Sources,
		"stats":         aggregated.Stats,
		"filter":        filter,
		"results":       map[string]int{"count": len(matched)},
	})
}

func (s *Server) handleGetSources(c echo.Context) error {
	return c.JSON(http.StatusOK, s.aggregated(c).Sources)
}

func (s *Server) handleGetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.aggregated(c).Stats)
}

type digestRequest struct {
	ChatID  any                      `json:"chatId"`
	Limit   int                      `json:"limit"`
	Filters models.OpportunityFilter `json:"filters"`
}

func (s *Server) handleTelegramDigest(c echo.Context) error {
	if s.notifier == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Telegram delivery is not configured"})
	}

	var req digestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	chatID, ok := telegram.CoerceChatID(req.ChatID)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "chatId is required"})
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 6
	}
	if limit > 10 {
		limit = 10
	}

	filter := req.Filters
	if filter.Mode == models.ModeAny {
		filter.Mode = ""
	}

	matched := s.provider.Relevant(c.Request().Context(), filter)
	entries := telegram.DigestEntries(matched, limit)

	if err := s.notifier.SendDigest(c.Request().Context(), chatID, entries); err != nil {
		c.Logger().Errorf("telegram digest failed: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]any{"ok": false, "message": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"ok":         true,
		"sent":       len(entries),
		"chatId":     chatID,
		"dispatchId": uuid.NewString(),
	})
}

// parseFilter maps query parameters onto the filter object. Absent
// parameters leave their criterion unset.
func parseFilter(c echo.Context) models.OpportunityFilter {
	var filter models.OpportunityFilter

	if q := c.QueryParam("q"); q != "" {
		filter.Query = q
	}
	for _, t := range c.QueryParams()["type"] {
		switch models.OpportunityType(t) {
		case models.TypeScholarship, models.TypeInternship:
			filter.Types = append(filter.Types, models.OpportunityType(t))
		}
	}
	if mode := c.QueryParam("mode"); mode != "" && mode != string(models.ModeAny) {
		filter.Mode = models.OpportunityMode(mode)
	}
	if country := c.QueryParam("country"); country != "" {
		filter.Country = country
	}
	if tag := c.QueryParam("tag"); tag != "" {
		filter.Tag = tag
	}
	if strings.EqualFold(c.QueryParam("funding"), "true") {
		filter.HasFunding = true
	}
	if v := c.QueryParam("minConfidence"); v != "" {
		if minConfidence, err := strconv.ParseFloat(v, 64); err == nil && minConfidence > 0 {
			filter.MinConfidence = minConfidence
		}
	}
	if v := c.QueryParam("deadlineWithinDays"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			filter.DeadlineWithinDays = days
		}
	}
	return filter
}
