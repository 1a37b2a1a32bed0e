package apierr

import (
	"errors"
	"testing"
)

func TestExtract_DataErrorField(t *testing.T) {
	err := &APIError{
		Status:  422,
		Data:    map[string]any{"error": "email ya registrado"},
		Message: "unprocessable",
	}
	if got := Extract(err); got != "email ya registrado" {
		t.Fatalf("got %q", got)
	}
}

func TestExtract_DataErrorFieldNonString(t *testing.T) {
	err := &APIError{Data: map[string]any{"error": float64(503)}}
	if got := Extract(err); got != "503" {
		t.Fatalf("got %q", got)
	}
}

func TestExtract_DataString(t *testing.T) {
	err := &APIError{Status: 500, Data: "servicio no disponible"}
	if got := Extract(err); got != "servicio no disponible" {
		t.Fatalf("got %q", got)
	}
}

func TestExtract_Message(t *testing.T) {
	if got := Extract(errors.New("Network error")); got != "Network error" {
		t.Fatalf("got %q", got)
	}
	err := &APIError{Status: 502, Message: "bad gateway"}
	if got := Extract(err); got != "bad gateway" {
		t.Fatalf("got %q", got)
	}
}

func TestExtract_Fallback(t *testing.T) {
	cases := []error{
		nil,
		&APIError{},
		&APIError{Data: map[string]any{"detail": "x"}},
		&APIError{Data: ""},
	}
	for _, err := range cases {
		if got := Extract(err); got != FallbackMessage {
			t.Fatalf("Extract(%v) = %q, want fallback", err, got)
		}
	}
}
