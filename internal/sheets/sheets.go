package sheets

import (
	"regexp"
	"strings"
)

// URLType classifies the input that produced an extraction result.
type URLType string

const (
	URLTypeInvalid        URLType = "invalid"
	URLTypeDocumentID     URLType = "document_id"
	URLTypeFullWithSheets URLType = "full_url_with_sheets"
	URLTypeFull           URLType = "full_url"
	URLTypePartial        URLType = "partial_url"
)

var (
	docIDPattern  = regexp.MustCompile(`spreadsheets/d/([a-zA-Z0-9-_]+)`)
	bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]{25,50}$`)

	// gid appears both as a query parameter and as a fragment; matches are
	// merged and deduplicated.
	gidPatterns = []*regexp.Regexp{
		regexp.MustCompile(`gid=(\d+)`),
		regexp.MustCompile(`#gid=(\d+)`),
	}
)

// Info aggregates everything extracted from one input.
type Info struct {
	DocumentID string
	Found      bool
	SheetIDs   []string
	URLType    URLType
}

// Extract pulls the spreadsheet document ID and any sheet IDs out of a URL
// or bare ID and classifies the input form.
func Extract(url string) Info {
	id, found := DocumentID(url)
	ids := SheetIDs(url)
	return Info{
		DocumentID: id,
		Found:      found,
		SheetIDs:   ids,
		URLType:    Classify(url, found, ids),
	}
}

// DocumentID extracts the document ID from a spreadsheet URL, or accepts
// the whole input when it is already a bare ID. The URL form wins when both
// could apply.
func DocumentID(url string) (string, bool) {
	if m := docIDPattern.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if trimmed := strings.TrimSpace(url); bareIDPattern.MatchString(trimmed) {
		return trimmed, true
	}
	return "", false
}

// SheetIDs collects gid values in query and fragment form, deduplicated in
// first-occurrence order. Never returns nil.
func SheetIDs(url string) []string {
	var ids []string
	for _, p := range gidPatterns {
		for _, m := range p.FindAllStringSubmatch(url, -1) {
			ids = append(ids, m[1])
		}
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// Classify labels the input form. Conditions are checked in priority order
// and the first hit wins, so every input gets exactly one label.
func Classify(url string, hasDocID bool, sheetIDs []string) URLType {
	switch {
	case !hasDocID:
		return URLTypeInvalid
	case bareIDPattern.MatchString(strings.TrimSpace(url)):
		return URLTypeDocumentID
	case strings.Contains(url, "docs.google.com/spreadsheets") || strings.Contains(url, "spreadsheets/d/"):
		if len(sheetIDs) > 0 {
			return URLTypeFullWithSheets
		}
		return URLTypeFull
	default:
		return URLTypePartial
	}
}
