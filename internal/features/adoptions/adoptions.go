// Package adoptions implementa los listados de adopción: directorio con
// filtros, detalle store-first, marcado de adoptado y el status poll
// best-effort que usa la UI para refrescar disponibilidad sin molestar
// al usuario si falla.
package adoptions

import (
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

// Status values que maneja el backend para un listado.
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusAdopted   = "adopted"
)

// Listing es el record que entrega el backend en /adoption-listings.
type Listing struct {
	ID        int64  `json:"id"`
	PetName   string `json:"pet_name"`
	Species   string `json:"species"` // dog | cat | ...
	Breed     string `json:"breed,omitempty"`
	AgeMonths int    `json:"age_months,omitempty"`
	City      string `json:"city,omitempty"`
	Status    string `json:"status"`
	ShelterID int64  `json:"shelter_id"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// Sanitized retorna una copia apta para render: la foto solo queda si pasa
// el predicado de imágenes (relativas y blob: incluidas).
func (l Listing) Sanitized() Listing {
	if !validation.IsSafeImageURL(l.PhotoURL) {
		l.PhotoURL = ""
	}
	return l
}

// NewStore crea el store de listados keyed por id numérico.
func NewStore() *store.Store[Listing, int64] {
	return store.New(func(l Listing) int64 { return l.ID })
}
