package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elijahthis/extract-api/internal/extract"
	"github.com/elijahthis/extract-api/internal/sanitize"
)

// handleTextExtract sanitizes the submitted text and runs the selected
// extraction rules over it. The response echoes the sanitized text, not the
// raw submission.
func (s *Service) handleTextExtract(w http.ResponseWriter, r *http.Request) {
	var req TextExtractionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, tooLargeDetail(s.cfg.MaxTextChars))
			return
		}
		writeError(w, r, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	kind, err := extract.ParseType(req.ExtractionType)
	if err != nil {
		detail := fmt.Sprintf("Invalid extraction type. Allowed types: %s", strings.Join(extract.TypeNames(), ", "))
		writeError(w, r, http.StatusUnprocessableEntity, detail)
		return
	}

	cleaned, err := sanitize.Clean(req.Text, s.cfg.MaxTextChars)
	if err != nil {
		if errors.Is(err, sanitize.ErrTooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, tooLargeDetail(s.cfg.MaxTextChars))
			return
		}
		writeError(w, r, http.StatusUnprocessableEntity, "Text input is required and must be a string")
		return
	}

	start := time.Now()
	data := extract.Run(cleaned, kind)
	s.cfg.Metrics.ExtractDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	for key, items := range data {
		s.cfg.Metrics.ExtractedItems.WithLabelValues(key).Add(float64(len(items)))
	}

	writeJSON(w, http.StatusOK, TextExtractionResponse{
		Success:        true,
		ExtractedData:  data,
		OriginalText:   cleaned,
		ExtractionType: string(kind),
		Timestamp:      timestamp(),
	})
}

func tooLargeDetail(maxChars int) string {
	return fmt.Sprintf("Text input too large. Maximum %d characters allowed.", maxChars)
}
