// Package donations implementa las donaciones a refugios: listado por
// refugio y creación (la donación nueva se antepone a la colección).
package donations

import "github.com/dropDatabas3/patitas/internal/store"

// Donation es el record que entrega el backend en /donations.
type Donation struct {
	ID          string `json:"id"` // uuid
	ShelterID   int64  `json:"shelter_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Donor       string `json:"donor,omitempty"`
	Message     string `json:"message,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// CreateInput es el body de POST /donations.
type CreateInput struct {
	ShelterID   int64  `json:"shelter_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency,omitempty"`
	Donor       string `json:"donor,omitempty"`
	Message     string `json:"message,omitempty"`
}

// NewStore crea el store de donaciones keyed por uuid.
func NewStore() *store.Store[Donation, string] {
	return store.New(func(d Donation) string { return d.ID })
}
