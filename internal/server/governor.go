package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/elijahthis/extract-api/internal/metrics"
	"github.com/elijahthis/extract-api/internal/shared"
	"github.com/rs/zerolog/log"
)

// governor runs the admission gates for /extract in a fixed order: rate
// limit first, then credential presence, then token match. A rate-limited
// client is turned away before its token is looked at, so probing the
// limit reveals nothing about credential validity.
type governor struct {
	limiter shared.RateLimiter
	token   string
	metrics *metrics.PrometheusMetrics
}

// admit reports whether the request may proceed to extraction. On
// rejection the response has already been written.
func (g *governor) admit(w http.ResponseWriter, r *http.Request) bool {
	clientID := shared.ClientIP(r)

	if !g.limiter.Allow(clientID) {
		g.metrics.RateLimited.WithLabelValues().Inc()
		log.Ctx(r.Context()).Warn().Str("client", clientID).Msg("Rate limit exceeded")
		w.Header().Set("Retry-After", strconv.Itoa(int(g.limiter.Window().Seconds())))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Detail: "Rate limit exceeded. Please try again later."})
		return false
	}

	scheme, credential, _ := strings.Cut(r.Header.Get("Authorization"), " ")
	if !strings.EqualFold(scheme, "Bearer") || credential == "" {
		g.metrics.AuthFailures.WithLabelValues("missing").Inc()
		writeJSON(w, http.StatusForbidden, errorResponse{Detail: "Not authenticated"})
		return false
	}

	if credential != g.token {
		g.metrics.AuthFailures.WithLabelValues("invalid").Inc()
		log.Ctx(r.Context()).Warn().Str("client", clientID).Msg("Invalid authentication token")
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "Invalid authentication token"})
		return false
	}

	return true
}
