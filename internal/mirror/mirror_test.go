package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/waddle/internal/records"
)

func TestDispatch_PostsJSON(t *testing.T) {
	var (
		mu  sync.Mutex
		got []records.SessionRecord
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var rec records.SessionRecord
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		mu.Lock()
		got = append(got, rec)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api/sessions")
	c.Dispatch(records.SessionRecord{SessionID: "sess_1", Name: "Ann", Score: 10, Status: records.StatusCompleted})
	c.Dispatch(records.SessionRecord{SessionID: "sess_2", Status: records.StatusReset})
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	ids := map[string]bool{got[0].SessionID: true, got[1].SessionID: true}
	assert.True(t, ids["sess_1"] && ids["sess_2"])
}

func TestDispatch_FailuresSwallowed(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New(srv.URL)
			c.Dispatch(records.SessionRecord{SessionID: "sess_x"})
			c.Wait()
		})
	}
}

func TestDispatch_DoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithTimeout(5*time.Second))

	start := time.Now()
	c.Dispatch(records.SessionRecord{SessionID: "sess_slow"})
	assert.Less(t, time.Since(start), time.Second, "Dispatch must return immediately")

	done := make(chan struct{})
	go func() {
		c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Close did not cancel the in-flight post")
	}
}

func TestDispatch_Disabled(t *testing.T) {
	c := New("")
	assert.False(t, c.Enabled())
	c.Dispatch(records.SessionRecord{SessionID: "sess_1"})
	c.Close()
}

func TestDispatch_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, WithTimeout(500*time.Millisecond))
	c.Dispatch(records.SessionRecord{SessionID: "sess_1"})
	c.Wait()
}

func TestDispatch_SendsOnce(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"server error", http.StatusInternalServerError},
		{"rate limited", http.StatusTooManyRequests},
		{"bad gateway", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := New(srv.URL, WithTimeout(DefaultTimeout))
			c.Dispatch(records.SessionRecord{SessionID: "sess_once"})
			c.Wait()

			assert.Equal(t, int32(1), hits.Load())
		})
	}
}

func TestPost_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.post(context.Background(), records.SessionRecord{SessionID: "sess_1"})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
}
