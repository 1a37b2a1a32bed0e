// Package shelters implementa el directorio de refugios.
package shelters

import (
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

// Shelter es el record que entrega el backend en /shelters.
type Shelter struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Capacity    int    `json:"capacity"`
	Occupied    int    `json:"occupied"`
	DonationURL string `json:"donation_url,omitempty"`
}

// HasSpace indica si el refugio reporta cupos libres.
func (s Shelter) HasSpace() bool {
	return s.Capacity > s.Occupied
}

// Sanitized retorna una copia apta para render. El link de donar también se
// gatea: un refugio con donation_url javascript: no puede llegar a un href.
func (s Shelter) Sanitized() Shelter {
	if !validation.IsSafePhone(s.Phone) {
		s.Phone = ""
	}
	if !validation.IsSafeEmail(s.Email) {
		s.Email = ""
	}
	if !validation.IsSafeURL(s.Website) {
		s.Website = ""
	}
	if !validation.IsSafeImageURL(s.PhotoURL) {
		s.PhotoURL = ""
	}
	if !validation.IsSafeURL(s.DonationURL) {
		s.DonationURL = ""
	}
	return s
}

// NewStore crea el store de refugios keyed por id numérico.
func NewStore() *store.Store[Shelter, int64] {
	return store.New(func(s Shelter) int64 { return s.ID })
}
