package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	slugStripPattern    = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpacePattern    = regexp.MustCompile(`\s+`)
	slugHyphenPattern   = regexp.MustCompile(`-+`)
	discountCodePattern = regexp.MustCompile(`^[A-Za-z0-9-_]{3,50}$`)
)

var htmlEntities = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"&", "&amp;",
)

// SanitizeText strips HTML tags, entity-escapes the reserved characters,
// trims whitespace and caps the result at maxLength runes.
func SanitizeText(input string, maxLength int) string {
	s := htmlTagPattern.ReplaceAllString(input, "")
	s = htmlEntities.Replace(s)
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > maxLength {
		s = string(runes[:maxLength])
	}
	return s
}

// ValidateURL accepts http/https URLs with a non-empty hostname that does not
// point at localhost or the loopback address.
func ValidateURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	if strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1") {
		return false
	}
	return true
}

// ValidateDiscountCode checks the 3-50 char alphanumeric/hyphen/underscore format.
func ValidateDiscountCode(code string) bool {
	return discountCodePattern.MatchString(code)
}

// GenerateSlug lowercases the text, strips special characters, converts whitespace
// runs to single hyphens and trims leading/trailing hyphens.
func GenerateSlug(text string) string {
	s := strings.ToLower(text)
	s = slugStripPattern.ReplaceAllString(s, "")
	s = slugSpacePattern.ReplaceAllString(s, "-")
	s = slugHyphenPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
