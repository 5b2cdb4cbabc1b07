package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Type selects which rule families run against a piece of text.
type Type string

const (
	TypeEmailPhone Type = "email_phone"
	TypeDates      Type = "dates"
	TypeNumbers    Type = "numbers"
	TypeURLs       Type = "urls"
	TypeAll        Type = "all"
)

// DefaultType is applied when a request omits extraction_type.
const DefaultType = TypeEmailPhone

var ErrUnknownType = errors.New("unknown extraction type")

// TypeNames lists the accepted wire values, in the order error messages
// report them.
func TypeNames() []string {
	return []string{
		string(TypeEmailPhone),
		string(TypeDates),
		string(TypeNumbers),
		string(TypeURLs),
		string(TypeAll),
	}
}

// ParseType decodes a wire value once at the API boundary. Empty input
// selects DefaultType; recognized values match after trimming and
// lowercasing.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultType, nil
	}
	switch t := Type(s); t {
	case TypeEmailPhone, TypeDates, TypeNumbers, TypeURLs, TypeAll:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// One pattern per phone format family. Matches are merged across
	// families and deduplicated, since formats overlap on some inputs.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{3}-\d{3}-\d{4}`),
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}-\d{4}`),
		regexp.MustCompile(`\d{3}\.\d{3}\.\d{4}`),
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{3}[\s.-]?\d{3}[\s.-]?\d{4}`),
		regexp.MustCompile(`\b\d{3}\s\d{3}\s\d{4}\b`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
		regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
		regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}`),
	}

	numberPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	urlPattern    = regexp.MustCompile(`https?://[A-Za-z0-9.-]+(?::\d+)?(?:[/?#][^\s]*)?`)
)

// Emails returns every address-shaped substring in first-occurrence order.
// Duplicates are kept.
func Emails(text string) []string {
	return matches(emailPattern, text)
}

// PhoneNumbers runs every format family over the text and deduplicates the
// combined matches, keeping the first occurrence of each number.
func PhoneNumbers(text string) []string {
	return matchFamilies(phonePatterns, text)
}

// Dates recognizes slash, dash, ISO and written month forms. Deduplicated
// like PhoneNumbers.
func Dates(text string) []string {
	return matchFamilies(datePatterns, text)
}

// Numbers returns integer and decimal tokens. Duplicates are kept.
func Numbers(text string) []string {
	return matches(numberPattern, text)
}

// URLs returns http and https links, including query and fragment parts.
func URLs(text string) []string {
	return matches(urlPattern, text)
}

// Run executes the rule families selected by t and returns results keyed
// the way the API reports them. Every selected key is present even when
// nothing matched; a type that never went through ParseType yields an
// empty map.
func Run(text string, t Type) map[string][]string {
	data := make(map[string][]string)
	switch t {
	case TypeEmailPhone:
		data["emails"] = Emails(text)
		data["phone_numbers"] = PhoneNumbers(text)
	case TypeDates:
		data["dates"] = Dates(text)
	case TypeNumbers:
		data["numbers"] = Numbers(text)
	case TypeURLs:
		data["urls"] = URLs(text)
	case TypeAll:
		data["emails"] = Emails(text)
		data["phone_numbers"] = PhoneNumbers(text)
		data["dates"] = Dates(text)
		data["numbers"] = Numbers(text)
		data["urls"] = URLs(text)
	}
	return data
}

func matches(p *regexp.Regexp, text string) []string {
	found := p.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}

func matchFamilies(patterns []*regexp.Regexp, text string) []string {
	var all []string
	for _, p := range patterns {
		all = append(all, p.FindAllString(text, -1)...)
	}
	return dedupe(all)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
