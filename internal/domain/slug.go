package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug validation errors
var (
	ErrSlugTooShort           = errors.New("slug must be at least 3 characters")
	ErrSlugTooLong            = errors.New("slug must be at most 63 characters")
	ErrSlugInvalidChars       = errors.New("slug must contain only lowercase letters, numbers, and hyphens")
	ErrSlugInvalidStart       = errors.New("slug must start with a lowercase letter")
	ErrSlugInvalidEnd         = errors.New("slug must end with a lowercase letter or number")
	ErrSlugConsecutiveHyphens = errors.New("slug cannot contain consecutive hyphens")
)

// slugRegex validates a properly formatted slug:
// - Starts with lowercase letter
// - Ends with lowercase letter or digit
// - Contains only lowercase letters, digits, and hyphens
var slugRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)

// ValidateSlug validates a business slug according to the rules:
// - 3-63 characters
// - Lowercase alphanumeric + hyphens only
// - Must start with a lowercase letter
// - Must end with a lowercase letter or digit
// - No consecutive hyphens
func ValidateSlug(slug string) error {
	if len(slug) < 3 {
		return ErrSlugTooShort
	}
	if len(slug) > 63 {
		return ErrSlugTooLong
	}

	// Check for consecutive hyphens first
	if strings.Contains(slug, "--") {
		return ErrSlugConsecutiveHyphens
	}

	// Check if it matches the regex
	if !slugRegex.MatchString(slug) {
		// Provide more specific error messages
		firstChar := rune(slug[0])
		if !unicode.IsLower(firstChar) || !unicode.IsLetter(firstChar) {
			return ErrSlugInvalidStart
		}

		lastChar := rune(slug[len(slug)-1])
		if !unicode.IsLower(lastChar) && !unicode.IsDigit(lastChar) {
			return ErrSlugInvalidEnd
		}

		return ErrSlugInvalidChars
	}

	return nil
}

// foldAccents strips combining marks so "Panadería Ñuble" becomes "Panaderia Nuble".
// A chain carries buffers, so each call gets its own.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// GenerateSlug creates a URL-safe slug from a business or category name.
// Accents are folded to ASCII, anything outside [a-z0-9-] is dropped, hyphen
// runs are collapsed, the result starts with a letter and is cut to 63
// characters. Names that fold to one or two characters get a "-local" suffix.
func GenerateSlug(name string) string {
	folded, _, err := transform.String(foldAccents(), name)
	if err != nil {
		folded = name
	}

	slug := strings.ToLower(folded)
	slug = strings.NewReplacer(" ", "-", "_", "-", "/", "-", "&", "-y-").Replace(slug)

	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	slug = result.String()

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	// Must start with a letter
	slug = strings.TrimLeftFunc(slug, func(r rune) bool {
		return r < 'a' || r > 'z'
	})

	if len(slug) > 63 {
		slug = slug[:63]
	}
	slug = strings.TrimRight(slug, "-")

	if len(slug) > 0 && len(slug) < 3 {
		slug += "-local"
	}

	return slug
}
