package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techpulse/internal/domain"
	"techpulse/internal/usecase"
)

type stubIngester struct {
	outcome domain.IngestOutcome
	err     error
	calls   int
}

func (s *stubIngester) Ingest(context.Context) (domain.IngestOutcome, error) {
	s.calls++
	return s.outcome, s.err
}

type stubFeed struct {
	got domain.FeedQuery
}

func (s *stubFeed) List(_ context.Context, q domain.FeedQuery) (domain.FeedPage, error) {
	s.got = q
	return domain.FeedPage{Items: []domain.NewsItem{{ID: 1, Title: "Rust"}}, Page: q.ClampedPage(), PageSize: 10, Total: 11, HasMore: true}, nil
}

type stubSearch struct {
	results []domain.SearchResult
}

func (s stubSearch) Query(context.Context, string) ([]domain.SearchResult, error) {
	return s.results, nil
}

type stubSubscriber struct {
	created bool
	err     error
}

func (s stubSubscriber) Subscribe(context.Context, string) (bool, error) {
	return s.created, s.err
}

type stubChat struct {
	chunks []string
	err    error
}

func (s stubChat) Stream(_ context.Context, _ usecase.ChatRequest, onDelta func(string) error) error {
	for _, c := range s.chunks {
		if err := onDelta(c); err != nil {
			return err
		}
	}
	return s.err
}

var fixedNow = func() time.Time { return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC) }

func serve(t *testing.T, deps Deps, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if deps.Now == nil {
		deps.Now = fixedNow
	}
	rec := httptest.NewRecorder()
	NewServer(":0", deps).Handler().ServeHTTP(rec, req)
	return rec
}

func TestCronIngestRequiresBearerSecret(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		secret string
		header string
	}{
		"missing header": {secret: "s3cret"},
		"wrong token":    {secret: "s3cret", header: "Bearer nope"},
		"wrong scheme":   {secret: "s3cret", header: "Basic s3cret"},
		"unset secret":   {secret: "", header: "Bearer "},
	}
	for name, tc := range cases {
		ingester := &stubIngester{}
		req := httptest.NewRequest(http.MethodGet, "/api/cron/ingest", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := serve(t, Deps{Ingester: ingester, CronSecret: tc.secret}, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String(), name)
		assert.Zero(t, ingester.calls, name)
	}
}

func TestCronIngestSuccess(t *testing.T) {
	t.Parallel()

	ingester := &stubIngester{outcome: domain.IngestOutcome{NewCount: 2, SkippedCount: 2, FailedCount: 1}}
	req := httptest.NewRequest(http.MethodGet, "/api/cron/ingest", nil)
	req.Header.Set("Authorization", "Bearer s3cret")

	rec := serve(t, Deps{Ingester: ingester, CronSecret: "s3cret"}, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"newCount":2,"skippedCount":2,"failedCount":1,"timestamp":"2025-01-10T12:00:00Z"}`, rec.Body.String())
}

func TestIngestFailureHidesDetails(t *testing.T) {
	t.Parallel()

	ingester := &stubIngester{err: errors.New("pq: password authentication failed")}
	rec := serve(t, Deps{Ingester: ingester}, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Cron job failed"}`, rec.Body.String())
}

func TestListNewsParsesQuery(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{}
	rec := serve(t, Deps{Feed: feed}, httptest.NewRequest(http.MethodGet, "/api/news?category=AI&sentiment=positive&page=abc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AI", feed.got.Category)
	assert.Equal(t, domain.SentimentPositive, feed.got.Sentiment)
	assert.Equal(t, 1, feed.got.Page)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["hasMore"])
	assert.Equal(t, float64(11), body["total"])
}

func TestSearchFlattensResults(t *testing.T) {
	t.Parallel()

	search := stubSearch{results: []domain.SearchResult{{Item: domain.NewsItem{ID: 4, Title: "Chips"}, Similarity: 0.87}}}
	rec := serve(t, Deps{Search: search}, httptest.NewRequest(http.MethodGet, "/api/search?q=chips", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Chips", body.Results[0]["title"])
	assert.Equal(t, 0.87, body.Results[0]["similarity"])

	empty := serve(t, Deps{Search: stubSearch{}}, httptest.NewRequest(http.MethodGet, "/api/search?q=", nil))
	assert.JSONEq(t, `{"results":[]}`, empty.Body.String())
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	newReq := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	ok := serve(t, Deps{Subscribe: stubSubscriber{created: true}}, newReq(`{"email":"cto@example.com"}`))
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.JSONEq(t, `{"success":true,"created":true}`, ok.Body.String())

	invalid := serve(t, Deps{Subscribe: stubSubscriber{err: domain.ErrInvalidEmail}}, newReq(`{"email":"nope"}`))
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.JSONEq(t, `{"success":false,"error":"Please enter a valid email address"}`, invalid.Body.String())

	broken := serve(t, Deps{Subscribe: stubSubscriber{err: errors.New("db down")}}, newReq(`{"email":"cto@example.com"}`))
	assert.Equal(t, http.StatusInternalServerError, broken.Code)
	assert.NotContains(t, broken.Body.String(), "db down")
}

func TestChatStreamsServerSentEvents(t *testing.T) {
	t.Parallel()

	body := `{"messages":[{"role":"user","content":"What is new?"}],"articleContext":{"title":"Rust 2.0","summary":"s","url":"https://example.com"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(t, Deps{Chat: stubChat{chunks: []string{"Rust ", "2.0"}}}, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream; charset=utf-8", rec.Header().Get("Content-Type"))
	want := "event: delta\ndata: {\"text\":\"Rust \"}\n\n" +
		"event: delta\ndata: {\"text\":\"2.0\"}\n\n" +
		"event: done\ndata: {}\n\n"
	assert.Equal(t, want, rec.Body.String())
}

func TestChatErrors(t *testing.T) {
	t.Parallel()

	badRole := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"system","content":"x"}]}`))
	rec := serve(t, Deps{Chat: stubChat{}}, badRole)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	failing := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	rec = serve(t, Deps{Chat: stubChat{chunks: []string{"partial"}, err: domain.ErrUpstreamUnavailable}}, failing)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasSuffix(rec.Body.String(), "event: error\ndata: {\"error\":\"Chat failed\"}\n\n"), rec.Body.String())
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ok := serve(t, Deps{Health: func(context.Context) error { return nil }}, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, ok.Code)

	down := serve(t, Deps{Health: func(context.Context) error { return errors.New("no db") }}, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, down.Code)

	metrics := serve(t, Deps{}, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, metrics.Code)
}
