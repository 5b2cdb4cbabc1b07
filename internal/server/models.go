package server

// TextExtractionRequest is the body of POST /extract on the text service.
// Unknown fields are ignored.
type TextExtractionRequest struct {
	Text           string `json:"text"`
	ExtractionType string `json:"extraction_type"`
}

type TextExtractionResponse struct {
	Success        bool                `json:"success"`
	ExtractedData  map[string][]string `json:"extracted_data"`
	OriginalText   string              `json:"original_text"`
	ExtractionType string              `json:"extraction_type"`
	Timestamp      string              `json:"timestamp"`
}

// SheetsExtractionRequest is the body of POST /extract on the sheets
// service. URL also accepts a bare document ID.
type SheetsExtractionRequest struct {
	URL string `json:"url"`
}

// SheetsExtractionResponse reports what was found in the URL. DocumentID is
// null when nothing document-shaped was present; the call still succeeds at
// the HTTP level with Success false.
type SheetsExtractionResponse struct {
	Success     bool     `json:"success"`
	DocumentID  *string  `json:"document_id"`
	SheetIDs    []string `json:"sheet_ids"`
	OriginalURL string   `json:"original_url"`
	URLType     string   `json:"url_type"`
	Timestamp   string   `json:"timestamp"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
