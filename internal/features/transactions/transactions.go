// Package transactions implementa el listado admin de transacciones.
// Solo lectura: los pagos se mutan desde el backend, acá solo se consultan.
package transactions

import "github.com/dropDatabas3/patitas/internal/store"

// Transaction es el record que entrega el backend en /transactions.
type Transaction struct {
	ID          string `json:"id"` // uuid
	UserID      int64  `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"` // pending | completed | refunded | failed
	Concept     string `json:"concept,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// NewStore crea el store de transacciones keyed por uuid.
func NewStore() *store.Store[Transaction, string] {
	return store.New(func(t Transaction) string { return t.ID })
}
