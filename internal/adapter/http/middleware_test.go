package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	var seenID string
	h := requestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = requestID(r.Context())
		_, _ = w.Write([]byte("hello"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fisheries?lat=1&lon=2", nil))

	_, err := uuid.Parse(seenID)
	require.NoError(t, err, "generated request IDs are UUIDs")
	assert.Equal(t, seenID, rec.Header().Get(RequestIDHeader))

	line := logs.String()
	assert.Contains(t, line, "req_id="+seenID)
	assert.Contains(t, line, "status=200")
	assert.Contains(t, line, "bytes=5")
	assert.Contains(t, line, `path="/fisheries?lat=1&lon=2"`)
}

func TestRequestLogging_RejectsOversizedID(t *testing.T) {
	h := requestLogging(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestStatusWriter_ExplicitStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec}

	sw.WriteHeader(http.StatusUnprocessableEntity)
	_, _ = sw.Write([]byte("bad"))

	assert.Equal(t, http.StatusUnprocessableEntity, sw.status)
	assert.Equal(t, 3, sw.bytes)
}

func TestVisitorID_ReusesValidCookie(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookie, Value: id})
	rec := httptest.NewRecorder()

	assert.Equal(t, id, visitorID(rec, req))
	assert.Empty(t, rec.Result().Cookies(), "no new cookie for a known visitor")
}

func TestVisitorID_ReplacesInvalidCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookie, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()

	id := visitorID(rec, req)
	require.NotEqual(t, "not-a-uuid", id)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, id, cookies[0].Value)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}
