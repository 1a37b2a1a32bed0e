package validation

import "regexp"

// Slug id rules:
// - Letters, digits, underscore, hyphen.
// - Length 1..64.
// - Excludes "/", ".", "%" and whitespace explicitly: the id is interpolated
//   as a path segment, so this is the primary defense against path traversal
//   ("../") reaching the URL.
//
// Examples valid: huellitas, pet-shop_23, A1
// Examples invalid: "", "../admin", "a/b", "a.b", 65+ chars.
var slugIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidNumericID returns true if the id can be used as a numeric path segment.
func ValidNumericID(id int64) bool {
	return id > 0
}

// ValidSlugID returns true if the provided slug id matches the allowed pattern.
func ValidSlugID(id string) bool {
	return slugIDRe.MatchString(id)
}
