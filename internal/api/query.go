package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Query arma el query string de un listado a partir de los filtros presentes.
// Mantiene el orden de inserción (los filtros definidos primero se emiten
// primero) y omite por completo los valores vacíos: nunca se emite "key=".
type Query struct {
	keys []string
	vals map[string]string
}

// NewQuery crea un builder vacío.
func NewQuery() *Query {
	return &Query{vals: make(map[string]string)}
}

// Set agrega un filtro string. Valor vacío → se omite el filtro entero.
func (q *Query) Set(key, value string) *Query {
	if value == "" {
		return q
	}
	if _, dup := q.vals[key]; !dup {
		q.keys = append(q.keys, key)
	}
	q.vals[key] = value
	return q
}

// SetInt agrega un filtro numérico. Cero → se omite (no hay filtros con 0).
func (q *Query) SetInt(key string, value int64) *Query {
	if value == 0 {
		return q
	}
	return q.Set(key, strconv.FormatInt(value, 10))
}

// SetBool agrega un filtro booleano tri-estado: nil → omitido.
func (q *Query) SetBool(key string, value *bool) *Query {
	if value == nil {
		return q
	}
	return q.Set(key, strconv.FormatBool(*value))
}

// Encode serializa la query en orden de inserción con percent-encoding.
// Query vacía (o nil) → string vacío, sin "?".
func (q *Query) Encode() string {
	if q == nil || len(q.keys) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(q.vals[k]))
	}
	return sb.String()
}
