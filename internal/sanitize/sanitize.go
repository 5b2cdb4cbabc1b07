package sanitize

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmpty    = errors.New("input text is empty")
	ErrTooLarge = errors.New("input text too large")
)

// Removal patterns run against text that has already been HTML-escaped, so
// the script-block pattern only fires when raw tags survive escaping. The
// scheme patterns still match because escaping leaves them untouched.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)data:text/html`),
	regexp.MustCompile(`(?i)vbscript:`),
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// html.EscapeString renders quotes as &#34; and &#39;; those entities are
// rewritten to the digit-free forms so escaping never plants digit runs in
// otherwise number-free text.
var quoteEntities = strings.NewReplacer("&#34;", "&quot;", "&#39;", "&#x27;")

// Clean normalizes raw client input before any extraction runs on it:
// HTML-escapes markup characters, strips dangerous script payloads, and
// collapses runs of whitespace to single spaces. maxChars bounds the input
// length in characters; zero or negative disables the bound.
func Clean(text string, maxChars int) (string, error) {
	if text == "" {
		return "", ErrEmpty
	}
	if n := utf8.RuneCountInString(text); maxChars > 0 && n > maxChars {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrTooLarge, n, maxChars)
	}

	cleaned := quoteEntities.Replace(html.EscapeString(text))
	for _, p := range dangerousPatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned), nil
}
