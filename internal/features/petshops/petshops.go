// Package petshops implementa el directorio de tiendas (endpoint /stores,
// ids tipo slug). El slug viaja como segmento de path, así que toda mutación
// lo valida contra el allow-list antes de armar la URL.
package petshops

import (
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

// Petshop es el record que entrega el backend en /stores.
type Petshop struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Plan     string `json:"plan"` // "" | free | pro | premium
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// IsFeatured indica si la tienda paga plan: el backend modela "no destacada"
// como plan "" o "free"; cualquier otro string de plan cuenta.
func (p Petshop) IsFeatured() bool {
	return p.Plan != "" && p.Plan != "free"
}

// Sanitized retorna una copia apta para render: teléfono, sitio y foto que
// no pasan los predicados de seguridad salen en blanco.
func (p Petshop) Sanitized() Petshop {
	if !validation.IsSafePhone(p.Phone) {
		p.Phone = ""
	}
	if !validation.IsSafeURL(p.Website) {
		p.Website = ""
	}
	if !validation.IsSafeImageURL(p.PhotoURL) {
		p.PhotoURL = ""
	}
	return p
}

// NewStore crea el store de tiendas keyed por slug.
func NewStore() *store.Store[Petshop, string] {
	return store.New(func(p Petshop) string { return p.Slug })
}
