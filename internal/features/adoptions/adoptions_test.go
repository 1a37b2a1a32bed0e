package adoptions

import "testing"

func TestSanitized_GatesPhoto(t *testing.T) {
	l := Listing{PetName: "Rocky", PhotoURL: "data:image/svg+xml,<svg onload=alert(1)>"}
	if got := l.Sanitized(); got.PhotoURL != "" {
		t.Fatalf("PhotoURL = %q, debe salir en blanco", got.PhotoURL)
	}

	ok := Listing{PhotoURL: "./rocky.jpg"}
	if got := ok.Sanitized(); got.PhotoURL != "./rocky.jpg" {
		t.Fatalf("PhotoURL = %q, las relativas pasan", got.PhotoURL)
	}
}
