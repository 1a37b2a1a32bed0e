package api

import (
	"bytes"
	"encoding/json"
)

// Meta es la metadata opcional de paginación que puede traer un envelope.
type Meta struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DecodeList normaliza la respuesta de un endpoint de listado.
//
// El backend responde una de dos formas:
//   - un array JSON pelado → se decodifica tal cual, Meta en cero.
//   - un objeto envelope → se decodifica obj[key]; key ausente o null degrada
//     a slice vacío, nunca a error ni a datos viejos.
//
// Las cuatro permutaciones (array|objeto) × (key presente|ausente) terminan
// en un estado definido.
func DecodeList[T any](raw []byte, key string) ([]T, Meta, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []T{}, Meta{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, Meta{}, err
		}
		if items == nil {
			items = []T{}
		}
		return items, Meta{}, nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, Meta{}, err
	}

	var meta Meta
	if v, ok := env["total"]; ok {
		_ = json.Unmarshal(v, &meta.Total)
	}
	if v, ok := env["page"]; ok {
		_ = json.Unmarshal(v, &meta.Page)
	}
	if v, ok := env["per_page"]; ok {
		_ = json.Unmarshal(v, &meta.PerPage)
	}

	rawItems, ok := env[key]
	if !ok || bytes.Equal(bytes.TrimSpace(rawItems), []byte("null")) {
		return []T{}, meta, nil
	}
	var items []T
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return nil, meta, err
	}
	if items == nil {
		items = []T{}
	}
	return items, meta, nil
}

// DecodeItem decodifica la respuesta de un endpoint singular (record pelado).
func DecodeItem[T any](raw []byte) (T, error) {
	var item T
	err := json.Unmarshal(raw, &item)
	return item, err
}
