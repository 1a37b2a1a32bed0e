// Package auth maneja el bearer token que el CLI envía al backend.
//
// El token se trata como opaco para efectos de autorización (el backend es
// quien valida firma y claims); acá solo se decodifica sin verificar para
// poder avisar al usuario cuando el token ya expiró, antes de gastar un
// request que va a fallar con 401.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo resume los claims útiles de un token de sesión.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

// Inspect decodifica el token SIN verificar la firma y extrae sub/exp.
// Un token que no parsea como JWT no es un error fatal: puede ser una API
// key opaca; en ese caso retorna nil sin error.
func Inspect(token string) (*TokenInfo, error) {
	if token == "" {
		return nil, fmt.Errorf("auth: token vacío")
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, nil
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = time.Now().After(exp.Time)
	}
	return info, nil
}
