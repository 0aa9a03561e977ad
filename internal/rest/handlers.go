package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"techpulse/internal/domain"
	"techpulse/internal/usecase"
)

type handlers struct {
	deps Deps
}

type errorBody struct {
	Error string `json:"error"`
}

type ingestResponse struct {
	Success bool `json:"success"`
	domain.IngestOutcome
	Timestamp string `json:"timestamp"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type subscribeResponse struct {
	Success bool   `json:"success"`
	Created bool   `json:"created,omitempty"`
	Error   string `json:"error,omitempty"`
}

type searchHit struct {
	domain.NewsItem
	Similarity float64 `json:"similarity"`
}

type searchResponse struct {
	Results []searchHit `json:"results"`
}

var errUnavailable = errorBody{Error: "Service unavailable"}

func (h *handlers) health(c echo.Context) error {
	if h.deps.Health != nil {
		if err := h.deps.Health(c.Request().Context()); err != nil {
			h.logError("health check failed", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) ingest(c echo.Context) error {
	if h.deps.Ingester == nil {
		return c.JSON(http.StatusServiceUnavailable, errUnavailable)
	}

	outcome, err := h.deps.Ingester.Ingest(c.Request().Context())
	if err != nil {
		h.logError("cron job failed", err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Cron job failed"})
	}

	return c.JSON(http.StatusOK, ingestResponse{
		Success:       true,
		IngestOutcome: outcome,
		Timestamp:     h.deps.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handlers) listNews(c echo.Context) error {
	if h.deps.Feed == nil {
		return c.JSON(http.StatusServiceUnavailable, errUnavailable)
	}

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	result, err := h.deps.Feed.List(c.Request().Context(), domain.FeedQuery{
		Category:  c.QueryParam("category"),
		Sentiment: domain.ParseSentimentBucket(c.QueryParam("sentiment")),
		Page:      page,
	})
	if err != nil {
		h.logError("list news failed", err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to load news"})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *handlers) search(c echo.Context) error {
	if h.deps.Search == nil {
		return c.JSON(http.StatusServiceUnavailable, errUnavailable)
	}

	results, err := h.deps.Search.Query(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		h.logError("search failed", err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Search failed"})
	}

	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{NewsItem: r.Item, Similarity: r.Similarity})
	}
	return c.JSON(http.StatusOK, searchResponse{Results: hits})
}

func (h *handlers) subscribe(c echo.Context) error {
	if h.deps.Subscribe == nil {
		return c.JSON(http.StatusServiceUnavailable, errUnavailable)
	}

	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, subscribeResponse{Error: "Please enter a valid email address"})
	}

	created, err := h.deps.Subscribe.Subscribe(c.Request().Context(), req.Email)
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		return c.JSON(http.StatusBadRequest, subscribeResponse{Error: "Please enter a valid email address"})
	case err != nil:
		h.logError("subscribe failed", err)
		return c.JSON(http.StatusInternalServerError, subscribeResponse{Error: "Subscription failed"})
	}
	return c.JSON(http.StatusOK, subscribeResponse{Success: true, Created: created})
}

func (h *handlers) chat(c echo.Context) error {
	if h.deps.Chat == nil {
		return c.JSON(http.StatusServiceUnavailable, errUnavailable)
	}

	var req usecase.ChatRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid chat request"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid chat request"})
	}

	setStreamingHeaders(c)
	err := h.deps.Chat.Stream(c.Request().Context(), req, func(delta string) error {
		return writeEvent(c, "delta", map[string]string{"text": delta})
	})
	if err != nil {
		h.logError("chat stream failed", err)
		return writeEvent(c, "error", errorBody{Error: "Chat failed"})
	}
	return writeEvent(c, "done", struct{}{})
}

func setStreamingHeaders(c echo.Context) {
	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream; charset=utf-8")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
}

func writeEvent(c echo.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(c.Response().Writer, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}

func (h *handlers) logError(msg string, err error) {
	if h.deps.Logger != nil {
		h.deps.Logger.Error(msg, "err", err)
	}
}
