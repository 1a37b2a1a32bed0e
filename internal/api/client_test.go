package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dropDatabas3/patitas/internal/apierr"
)

func TestClient_GetSendsBearerAndAccept(t *testing.T) {
	var gotAuth, gotAccept, gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotURL = r.URL.String()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithToken("tok123"))
	if _, err := c.Get(context.Background(), "/clinics", NewQuery().Set("city", "Cali")); err != nil {
		t.Fatalf("err: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("accept = %q", gotAccept)
	}
	if gotURL != "/clinics?city=Cali" {
		t.Fatalf("url = %q", gotURL)
	}
}

func TestClient_Non2xxProducesAPIErrorWithData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"ciudad desconocida"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Get(context.Background(), "/clinics", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	ae, ok := err.(*apierr.APIError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if ae.Status != 422 {
		t.Fatalf("status = %d", ae.Status)
	}
	if got := apierr.Extract(ae); got != "ciudad desconocida" {
		t.Fatalf("extract = %q", got)
	}
}

func TestClient_Non2xxNonJSONBodyBecomesDataString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream caído"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Get(context.Background(), "/clinics", nil)
	ae, ok := err.(*apierr.APIError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if got := apierr.Extract(ae); got != "upstream caído" {
		t.Fatalf("extract = %q", got)
	}
}

func TestClient_PutSendsJSONBody(t *testing.T) {
	var gotCT string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		gotBody = make([]byte, r.ContentLength)
		r.Body.Read(gotBody)
		w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Put(context.Background(), "/clinics/1", map[string]any{"phone": "300"}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if gotCT != "application/json" {
		t.Fatalf("content-type = %q", gotCT)
	}
	if string(gotBody) != `{"phone":"300"}` {
		t.Fatalf("body = %s", gotBody)
	}
}
