package petshops

import "testing"

func TestSanitized_BlanksUnsafeFields(t *testing.T) {
	p := Petshop{
		Slug:     "mundo-animal",
		Phone:    "whatsapp: 300",
		Website:  "ftp://mundoanimal.co",
		PhotoURL: "https://cdn.mundoanimal.co/logo.png",
	}

	got := p.Sanitized()
	if got.Phone != "" {
		t.Fatalf("Phone = %q, debe salir en blanco", got.Phone)
	}
	if got.Website != "" {
		t.Fatalf("Website = %q, solo http/https pasan", got.Website)
	}
	if got.PhotoURL != "https://cdn.mundoanimal.co/logo.png" {
		t.Fatalf("PhotoURL = %q", got.PhotoURL)
	}
}
