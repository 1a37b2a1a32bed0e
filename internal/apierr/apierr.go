// Package apierr define el error estándar producido por el transporte HTTP
// y la extracción de un mensaje legible para el usuario.
package apierr

import (
	"fmt"
	"net/http"
)

// FallbackMessage es el mensaje genérico cuando el error no trae nada usable.
const FallbackMessage = "Ocurrió un error inesperado. Inténtalo de nuevo."

// APIError es el error que lanza el transporte ante una respuesta no-2xx
// o un fallo de red. Data lleva el body JSON decodificado (si lo hubo).
type APIError struct {
	Status  int    `json:"-"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error implementa la interfaz error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status=%d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status=%d %s", e.Status, http.StatusText(e.Status))
}

// New crea un APIError con status y mensaje.
func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// Extract colapsa cualquier error en un único string para mostrar al usuario.
//
// Prioridad (gana el primer match):
//  1. APIError cuyo Data es un objeto con campo "error" → ese campo.
//  2. APIError cuyo Data es un string no vacío → ese string.
//  3. Cualquier error con mensaje no vacío → el mensaje.
//  4. FallbackMessage.
//
// Nunca hace panic: maneja nil, errores planos y APIError sin campos.
func Extract(err error) string {
	if err == nil {
		return FallbackMessage
	}
	if ae, ok := err.(*APIError); ok && ae != nil {
		switch d := ae.Data.(type) {
		case map[string]any:
			if v, ok := d["error"]; ok && v != nil {
				if s, ok := v.(string); ok {
					if s != "" {
						return s
					}
				} else {
					return fmt.Sprintf("%v", v)
				}
			}
		case string:
			if d != "" {
				return d
			}
		}
		if ae.Message != "" {
			return ae.Message
		}
		return FallbackMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
