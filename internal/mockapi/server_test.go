package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListUsers_EnvelopeAndBare(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/users")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var env struct {
		Users []json.RawMessage `json:"users"`
		Total int               `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	resp.Body.Close()
	if env.Total == 0 || len(env.Users) != env.Total {
		t.Fatalf("envelope: total=%d users=%d", env.Total, len(env.Users))
	}

	resp, err = http.Get(srv.URL + "/users?shape=bare")
	if err != nil {
		t.Fatalf("get bare: %v", err)
	}
	defer resp.Body.Close()
	var bare []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&bare); err != nil {
		t.Fatalf("decode bare array: %v", err)
	}
	if len(bare) != env.Total {
		t.Fatalf("bare: got %d, want %d", len(bare), env.Total)
	}
}

func TestPatchUser_GrantPro(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/users/2/grant-pro", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	defer resp.Body.Close()
	var u struct {
		Plan string `json:"plan"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if u.Plan != "pro" {
		t.Fatalf("plan = %q, want pro", u.Plan)
	}
}

func TestGetUser_NotFoundUsesErrorField(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/users/999")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected error field in body")
	}
}

func TestCreateDonation_PrependsWithUUID(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/donations", "application/json",
		strings.NewReader(`{"shelter_id":1,"amount_cents":100000,"donor":"Test"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var d struct {
		ID       string `json:"id"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(d.ID) != 36 {
		t.Fatalf("id = %q, want uuid", d.ID)
	}
	if d.Currency != "COP" {
		t.Fatalf("currency = %q, want COP default", d.Currency)
	}

	list, err := http.Get(srv.URL + "/donations?shape=bare")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer list.Body.Close()
	var items []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(list.Body).Decode(&items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if items[0].ID != d.ID {
		t.Fatal("created donation must be first in the list")
	}
}
