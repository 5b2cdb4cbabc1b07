package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elijahthis/extract-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct{ allow bool }

func (s stubLimiter) Allow(string) bool     { return s.allow }
func (s stubLimiter) Window() time.Duration { return time.Hour }

func newTestGovernor(allow bool) *governor {
	return &governor{
		limiter: stubLimiter{allow: allow},
		token:   "secret",
		metrics: metrics.NewMetricsWith(prometheus.NewRegistry()),
	}
}

func admitDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Detail
}

func TestGovernorAdmitsValidToken(t *testing.T) {
	t.Parallel()

	g := newTestGovernor(true)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/extract", nil)
	r.Header.Set("Authorization", "Bearer secret")

	assert.True(t, g.admit(w, r))
}

func TestGovernorRejectsMissingCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic c2VjcmV0"},
		{"bearer with empty credential", "Bearer "},
		{"bare token without scheme", "secret"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newTestGovernor(true)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/extract", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			assert.False(t, g.admit(w, r))
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "Not authenticated", admitDetail(t, w))
		})
	}
}

func TestGovernorSchemeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"bearer secret", "BEARER secret", "BeArEr secret"} {
		g := newTestGovernor(true)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/extract", nil)
		r.Header.Set("Authorization", header)

		assert.True(t, g.admit(w, r), header)
	}
}

func TestGovernorRejectsWrongToken(t *testing.T) {
	t.Parallel()

	g := newTestGovernor(true)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/extract", nil)
	r.Header.Set("Authorization", "Bearer not-the-secret")

	assert.False(t, g.admit(w, r))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Invalid authentication token", admitDetail(t, w))
}

func TestGovernorRateLimitBeatsAuth(t *testing.T) {
	t.Parallel()

	// A rate-limited client sees 429 even with a bad token, so probing the
	// limit cannot be used to test credentials.
	g := newTestGovernor(false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/extract", nil)
	r.Header.Set("Authorization", "Bearer not-the-secret")

	assert.False(t, g.admit(w, r))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
	assert.Equal(t, "Rate limit exceeded. Please try again later.", admitDetail(t, w))
}

func TestGovernorRateLimitBeatsMissingCredential(t *testing.T) {
	t.Parallel()

	g := newTestGovernor(false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/extract", nil)

	assert.False(t, g.admit(w, r))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
