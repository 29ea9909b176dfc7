package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/groundtruth/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStats models.SessionStats

func (s stubStats) Stats() models.SessionStats { return models.SessionStats(s) }

type stubQuerier struct {
	urls []string
	err  error
	got  string
}

func (q *stubQuerier) Query(_ context.Context, text string) ([]string, error) {
	q.got = text
	return q.urls, q.err
}

type stubDocs struct {
	err   error
	steps []models.InteractionStep
}

func (d *stubDocs) Document(_ context.Context, url string, steps ...models.InteractionStep) (*models.Document, error) {
	d.steps = steps
	if d.err != nil {
		return nil, d.err
	}
	return &models.Document{URL: url, Extractor: "wikipedia", Text: "text"}, nil
}

type stubEvaluator struct {
	report *models.RewardReport
	err    error
}

func (e stubEvaluator) Evaluate(context.Context, string, string) (*models.RewardReport, error) {
	return e.report, e.err
}

func serve(t *testing.T, method, path string, h gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Handle(method, path, h)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	h := Health(stubStats{Live: true, Opened: 2, Resets: 1, Fetches: 9}, time.Now())
	w := serve(t, http.MethodGet, "/health", h, "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.HealthResponse](t, w)
	assert.Equal(t, "healthy", resp.Status)
	assert.EqualValues(t, 9, resp.SessionStats.Fetches)
	assert.Equal(t, Version, resp.Version)
}

func TestHealth_Idle(t *testing.T) {
	w := serve(t, http.MethodGet, "/health", Health(stubStats{}, time.Now()), "")
	assert.Equal(t, "idle", decode[models.HealthResponse](t, w).Status)
}

func TestQuery(t *testing.T) {
	q := &stubQuerier{urls: []string{"https://en.wikipedia.org/wiki/Go"}}
	w := serve(t, http.MethodPost, "/query", Query(q), `{"query":"golang"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.QueryResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/Go"}, resp.URLs)
	assert.Equal(t, "golang", q.got)
}

func TestQuery_Validation(t *testing.T) {
	for _, body := range []string{`{}`, `{"query":"   "}`, `not json`} {
		w := serve(t, http.MethodPost, "/query", Query(&stubQuerier{}), body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestQuery_ErrorStatus(t *testing.T) {
	tests := []struct {
		kind models.ErrorKind
		want int
	}{
		{models.KindNavigationTimeout, http.StatusGatewayTimeout},
		{models.KindResultsListEmpty, http.StatusBadGateway},
		{models.KindResultsContainerMissing, http.StatusBadGateway},
		{models.KindInteractionTimeout, http.StatusBadGateway},
		{models.KindBrowserCrash, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			q := &stubQuerier{err: models.NewError(tt.kind, "boom", nil)}
			w := serve(t, http.MethodPost, "/query", Query(q), `{"query":"x"}`)

			assert.Equal(t, tt.want, w.Code)
			resp := decode[models.QueryResponse](t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(tt.kind), resp.Error.Code)
		})
	}
}

func TestExtract_PassesSteps(t *testing.T) {
	docs := &stubDocs{}
	body := `{"url":"https://en.wikipedia.org/wiki/Go","steps":[{"by":"css","value":"#expand","index":1,"wait_ms":500}]}`
	w := serve(t, http.MethodPost, "/extract", Extract(docs), body)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ExtractResponse](t, w)
	require.NotNil(t, resp.Document)
	assert.Equal(t, "wikipedia", resp.Document.Extractor)

	require.Len(t, docs.steps, 1)
	assert.Equal(t, models.Locator{By: models.LocateCSS, Value: "#expand"}, docs.steps[0].Locator)
	assert.Equal(t, 1, docs.steps[0].Index)
	assert.Equal(t, 500*time.Millisecond, docs.steps[0].Wait)
}

func TestExtract_BadStrategy(t *testing.T) {
	docs := &stubDocs{}
	body := `{"url":"https://en.wikipedia.org/wiki/Go","steps":[{"by":"shadow","value":"x"}]}`
	w := serve(t, http.MethodPost, "/extract", Extract(docs), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, docs.steps)
}

func TestExtract_NotImplemented(t *testing.T) {
	docs := &stubDocs{err: models.NewError(models.KindExtractorNotImplemented, "example.com", nil)}
	w := serve(t, http.MethodPost, "/extract", Extract(docs), `{"url":"https://example.com/"}`)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestScore(t *testing.T) {
	ev := stubEvaluator{report: &models.RewardReport{
		Reward:  0.5,
		Samples: []models.ScoreSample{{URL: "https://a", Score: 1, Parsed: true}, {URL: "https://b"}},
	}}
	w := serve(t, http.MethodPost, "/score", Score(ev), `{"prompt":"p","completion":"c"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ScoreResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, 0.5, resp.Reward)
	assert.Len(t, resp.Samples, 2)
}

func TestScore_MissingCompletion(t *testing.T) {
	w := serve(t, http.MethodPost, "/score", Score(stubEvaluator{}), `{"prompt":"p"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScore_ForeignErrorIsInternal(t *testing.T) {
	w := serve(t, http.MethodPost, "/score", Score(stubEvaluator{err: assert.AnError}), `{"prompt":"p","completion":"c"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[models.ScoreResponse](t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(models.KindInternal), resp.Error.Code)
}
