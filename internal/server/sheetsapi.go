package server

import (
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/elijahthis/extract-api/internal/sanitize"
	"github.com/elijahthis/extract-api/internal/sheets"
)

// handleSheetsExtract pulls the document ID and sheet IDs out of a Google
// Sheets URL or bare document ID. A URL that yields nothing is still a 200;
// Success false and url_type "invalid" report the miss.
func (s *Service) handleSheetsExtract(w http.ResponseWriter, r *http.Request) {
	var req SheetsExtractionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "URL input is required")
		return
	}
	if utf8.RuneCountInString(req.URL) > s.cfg.MaxURLChars {
		detail := fmt.Sprintf("URL too long. Maximum %d characters allowed.", s.cfg.MaxURLChars)
		writeError(w, r, http.StatusUnprocessableEntity, detail)
		return
	}

	cleaned, err := sanitize.Clean(req.URL, 0)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "URL input is required")
		return
	}

	start := time.Now()
	info := sheets.Extract(cleaned)
	s.cfg.Metrics.ExtractDuration.WithLabelValues("sheets").Observe(time.Since(start).Seconds())

	var docID *string
	if info.Found {
		docID = &info.DocumentID
		s.cfg.Metrics.ExtractedItems.WithLabelValues("document_id").Inc()
	}
	s.cfg.Metrics.ExtractedItems.WithLabelValues("sheet_id").Add(float64(len(info.SheetIDs)))

	writeJSON(w, http.StatusOK, SheetsExtractionResponse{
		Success:     info.Found,
		DocumentID:  docID,
		SheetIDs:    info.SheetIDs,
		OriginalURL: cleaned,
		URLType:     string(info.URLType),
		Timestamp:   timestamp(),
	})
}
