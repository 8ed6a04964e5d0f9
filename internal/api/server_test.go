package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/waddle/internal/logging"
	"github.com/abhisek/waddle/internal/records"
	"github.com/abhisek/waddle/internal/store"
)

func newTestServer(t *testing.T) (*Server, *records.Book) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	book := records.NewBook(st.KV(), records.WithLogger(logging.Discard()))
	return NewServer(book, logging.Discard(), 100), book
}

func do(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Success bool      `json:"success"`
		Data    T         `json:"data"`
		Error   *apiError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func sessionJSON(t *testing.T, rec records.SessionRecord) []byte {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	return data
}

var ended = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", data["status"])
}

func TestAppendSession(t *testing.T) {
	s, book := newTestServer(t)

	completed := records.SessionRecord{
		SessionID: "sess_1", Name: "Ana", Score: 30, Lives: 2,
		StartedAt: ended.Add(-time.Minute), EndedAt: ended, Status: records.StatusCompleted,
	}
	reset := records.SessionRecord{
		SessionID: "sess_2", Name: "Ana", Score: 10, Lives: 3,
		StartedAt: ended, EndedAt: ended.Add(time.Minute), Status: records.StatusReset,
	}

	for _, r := range []records.SessionRecord{completed, reset} {
		rec := do(t, s, http.MethodPost, "/api/sessions", sessionJSON(t, r))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	ctx := t.Context()
	sessions, err := book.Sessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	scores, err := book.Scores(ctx)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 30, scores[0].Score)
}

func TestAppendSession_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"not json", "{oops", http.StatusBadRequest},
		{"bad id", `{"sessionId":"x","status":"completed"}`, http.StatusUnprocessableEntity},
		{"bad status", `{"sessionId":"sess_1","status":"paused"}`, http.StatusUnprocessableEntity},
		{"negative score", `{"sessionId":"sess_1","status":"reset","score":-1}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, book := newTestServer(t)
			rec := do(t, s, http.MethodPost, "/api/sessions", []byte(tt.body))
			assert.Equal(t, tt.code, rec.Code)

			sessions, err := book.Sessions(t.Context())
			require.NoError(t, err)
			assert.Empty(t, sessions)
		})
	}
}

func TestListSessions(t *testing.T) {
	s, book := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]records.SessionRecord](t, rec))
	assert.Contains(t, rec.Body.String(), `"data":[]`)

	require.NoError(t, book.AppendSession(t.Context(), records.SessionRecord{SessionID: "sess_a", Status: records.StatusReset}))
	rec = do(t, s, http.MethodGet, "/api/sessions", nil)
	got := decode[[]records.SessionRecord](t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, "sess_a", got[0].SessionID)
}

func TestExportSessions(t *testing.T) {
	s, book := newTestServer(t)
	require.NoError(t, book.AppendSession(t.Context(), records.SessionRecord{
		SessionID: "sess_a", Name: "Quote \"Q\", Jr", Score: 10, Status: records.StatusCompleted, EndedAt: ended,
	}))

	rec := do(t, s, http.MethodGet, "/api/sessions.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), records.ExportFileName)

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Quote \"Q\", Jr", rows[1][1])
}

func TestLeaderboard(t *testing.T) {
	s, book := newTestServer(t)
	for i := 1; i <= 8; i++ {
		require.NoError(t, book.SaveScore(t.Context(), records.ScoreEntry{Name: "p", Score: i, Date: ended}))
	}

	rec := do(t, s, http.MethodGet, "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]records.ScoreEntry](t, rec)
	require.Len(t, got, 5)
	assert.Equal(t, 8, got[0].Score)

	rec = do(t, s, http.MethodGet, "/api/leaderboard?top=2", nil)
	assert.Len(t, decode[[]records.ScoreEntry](t, rec), 2)

	rec = do(t, s, http.MethodGet, "/api/leaderboard?top=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://game.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
