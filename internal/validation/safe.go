// Package validation contiene los predicados de seguridad aplicados a strings
// no confiables (URLs de fotos, teléfonos, emails, links externos) antes de que
// el caller los interpole en un href/src o los muestre en consola.
//
// Contrato común: cada predicado es puro, total (nunca hace panic) y ante
// cualquier ambigüedad retorna false (fail closed).
package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// Phone rules:
// - Allowed chars: digits, "+", spaces, "-", "(", ")", ".".
// - Length 4..25, whole string anchored (no partial match).
//
// Examples valid: +57 300 123 4567, (601) 555-0199, 3001234567
// Examples invalid: "", "abc", "123", "tel:+57...", 26+ chars.
var phoneRe = regexp.MustCompile(`^[+0-9\s\-().]{4,25}$`)

// Email rules:
// - One run without whitespace/"@", then "@", then a domain run containing
//   at least one ".". No whitespace anywhere.
//
// Examples valid: a@b.c, vet@patitas.co
// Examples invalid: "", "not-an-email", "a@b", "a @b.c"
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsSafeImageURL decide si un string puede usarse como src de una imagen.
// Acepta paths relativos y blob: (previews locales); para todo lo demás
// exige URL absoluta http/https. data: y javascript: quedan excluidos.
func IsSafeImageURL(raw string) bool {
	if raw == "" {
		return false
	}
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") {
		return true
	}
	if strings.HasPrefix(raw, "blob:") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// IsSafeURL decide si un string puede usarse como href de un link externo
// (website, redes sociales). Más estricto que IsSafeImageURL: solo URLs
// absolutas http/https; paths relativos y blob: NO son links externos.
func IsSafeURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// IsSafePhone decide si un string puede usarse en un link tel:.
func IsSafePhone(raw string) bool {
	return phoneRe.MatchString(raw)
}

// IsSafeEmail decide si un string puede usarse en un link mailto:.
func IsSafeEmail(raw string) bool {
	return emailRe.MatchString(raw)
}
