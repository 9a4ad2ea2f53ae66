package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	designerJD     = "Role: Product Designer\nRequired skills - Figma, Sketch, Wireframing, Docker\n3+ years experience\nMaster degree preferred"
	designerResume = "Ada Lovelace\nProduct designer skilled in Figma and Sketch.\nBachelor of Design\n2021-present"
)

type upload struct {
	field, filename, content string
}

func multipartRequest(t *testing.T, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/match", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestServer(t *testing.T, rl *ratelimit.Config, logger *zap.Logger) *Server {
	t.Helper()
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	matcher := pipeline.NewMatcher(nil, pipeline.Options{ReferenceYear: 2025})
	s := New(matcher, Config{UploadDir: t.TempDir(), RateLimit: rl, Logger: logger})
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestHandleMatch(t *testing.T) {
	s := newTestServer(t, nil, nil)
	req := multipartRequest(t,
		map[string]string{"jd_text": designerJD, "explain": "true"},
		upload{"resume", "ada.txt", designerResume},
	)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp types.MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Product Designer", resp.JobTitle)
	assert.Equal(t, types.MatchScores{SkillsMatch: 50, ExperienceMatch: 100, EducationMatch: 60, OverallScore: 67}, resp.MatchScores)
	require.NotNil(t, resp.Explanations)
	assert.Equal(t, []string{"docker", "wireframing"}, resp.Explanations.SkillsMissing)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleMatch_NoExplanationByDefault(t *testing.T) {
	s := newTestServer(t, nil, nil)
	req := multipartRequest(t, map[string]string{"jd_text": designerJD}, upload{"resume", "ada.txt", designerResume})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "explanations")
	assert.Equal(t, "", raw["candidate_name"])
}

func TestHandleMatch_JDFileWins(t *testing.T) {
	s := newTestServer(t, nil, nil)
	req := multipartRequest(t,
		map[string]string{"jd_text": "Role: Data Scientist"},
		upload{"resume", "ada.txt", designerResume},
		upload{"jd_file", "jd.txt", designerJD},
	)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Product Designer", resp.JobTitle)
}

func TestHandleMatch_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		files   []upload
		wantErr string
	}{
		{
			name:    "missing resume",
			fields:  map[string]string{"jd_text": designerJD},
			wantErr: "resume file is required",
		},
		{
			name:    "empty job description",
			fields:  map[string]string{"jd_text": "   "},
			files:   []upload{{"resume", "ada.txt", designerResume}},
			wantErr: "Provide jd_text or jd_file",
		},
		{
			name:    "empty jd file and no text",
			files:   []upload{{"resume", "ada.txt", designerResume}, {"jd_file", "jd.txt", ""}},
			wantErr: "Provide jd_text or jd_file",
		},
		{
			name:    "bad explain flag",
			fields:  map[string]string{"jd_text": designerJD, "explain": "maybe"},
			files:   []upload{{"resume", "ada.txt", designerResume}},
			wantErr: "validation error: explain - boolean",
		},
		{
			name:    "bad jd url",
			fields:  map[string]string{"jd_url": "not a url"},
			files:   []upload{{"resume", "ada.txt", designerResume}},
			wantErr: "validation error: jd_url - url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, nil)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, multipartRequest(t, tt.fields, tt.files...))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, rec))
		})
	}
}

func TestHandleMatch_NotMultipart(t *testing.T) {
	s := newTestServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/match", bytes.NewBufferString(`{"jd_text":"x"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "invalid multipart form")
}

func TestHandleMatch_WrongMethod(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/match", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["semantic"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/match", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDAndLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := newTestServer(t, nil, zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "/health", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/match", Method: http.MethodPost, Limit: 1, Window: time.Hour, Burst: 1},
		},
	}, nil)
	handler := s.Handler()

	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, multipartRequest(t, map[string]string{"jd_text": designerJD}, upload{"resume", "ada.txt", designerResume}))
		return rec
	}

	first := send()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := send()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "rate_limit_exceeded", decodeError(t, second))
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	retryAfter, ok := body["retry_after"].(float64)
	require.True(t, ok, "retry_after is a number of seconds")
	assert.Positive(t, retryAfter)

	health := httptest.NewRecorder()
	handler.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code, "health is never limited")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "resume", Message: "required"}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(&http.MaxBytesError{Limit: 1}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}

func TestMatchForm_Flags(t *testing.T) {
	assert.True(t, MatchForm{}.Semantic())
	assert.True(t, MatchForm{UseSemantic: " TRUE "}.Semantic())
	assert.False(t, MatchForm{UseSemantic: "false"}.Semantic())
	assert.False(t, MatchForm{UseSemantic: "yes"}.Semantic())

	assert.False(t, MatchForm{}.WantsExplanation())
	assert.True(t, MatchForm{Explain: "1"}.WantsExplanation())
	assert.False(t, MatchForm{Explain: "false"}.WantsExplanation())
}
