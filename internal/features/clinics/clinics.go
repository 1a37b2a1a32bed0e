// Package clinics implementa el directorio de clínicas veterinarias:
// listado público con filtros, detalle store-first y el CRUD admin
// (update parcial, delete, verify).
package clinics

import (
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

// Clinic es el record que entrega el backend en /clinics.
type Clinic struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	City     string   `json:"city"`
	Address  string   `json:"address,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Email    string   `json:"email,omitempty"`
	Website  string   `json:"website,omitempty"`
	PhotoURL string   `json:"photo_url,omitempty"`
	Services []string `json:"services,omitempty"`
	Verified bool     `json:"verified"`
	Featured bool     `json:"featured"`
}

// Sanitized retorna una copia apta para render: contacto, sitio y foto que
// no pasan los predicados de seguridad salen en blanco.
func (c Clinic) Sanitized() Clinic {
	if !validation.IsSafePhone(c.Phone) {
		c.Phone = ""
	}
	if !validation.IsSafeEmail(c.Email) {
		c.Email = ""
	}
	if !validation.IsSafeURL(c.Website) {
		c.Website = ""
	}
	if !validation.IsSafeImageURL(c.PhotoURL) {
		c.PhotoURL = ""
	}
	return c
}

// NewStore crea el store de clínicas keyed por id numérico.
func NewStore() *store.Store[Clinic, int64] {
	return store.New(func(c Clinic) int64 { return c.ID })
}
