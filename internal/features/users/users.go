// Package users implementa la feature de usuarios del panel admin: listado
// con filtros, detalle con lookup store-first y las acciones de rol/plan
// (grant-pro, grant-admin, activate, ...) vía endpoints de acción explícita.
package users

import (
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

// User es el record que entrega el backend en /users.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"` // user | admin
	Plan      string `json:"plan"` // "" | free | pro
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at,omitempty"`
}

// IsPro indica si el usuario tiene plan pago. El backend modela "sin plan"
// como "" o "free"; cualquier otro plan cuenta como pago.
func (u User) IsPro() bool {
	return u.Plan != "" && u.Plan != "free"
}

// Sanitized retorna una copia apta para render: el contacto y el avatar que
// no pasan los predicados de seguridad salen en blanco. Quien muestra el
// record decide SOLO con el predicado, nunca inspeccionando el valor.
func (u User) Sanitized() User {
	if !validation.IsSafePhone(u.Phone) {
		u.Phone = ""
	}
	if !validation.IsSafeEmail(u.Email) {
		u.Email = ""
	}
	if !validation.IsSafeImageURL(u.AvatarURL) {
		u.AvatarURL = ""
	}
	return u
}

// NewStore crea el store de usuarios keyed por id numérico.
func NewStore() *store.Store[User, int64] {
	return store.New(func(u User) int64 { return u.ID })
}
