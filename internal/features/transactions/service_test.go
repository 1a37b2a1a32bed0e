package transactions

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dropDatabas3/patitas/internal/api"
)

type fakeDoer struct {
	lastURL string
	body    string
	status  int
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastURL = req.URL.String()
	status := f.status
	if status == 0 {
		status = 200
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     http.Header{},
	}, nil
}

func TestFetch_FilterOrderStable(t *testing.T) {
	d := &fakeDoer{body: `[]`}
	s := NewService(api.New("http://backend.test", api.WithDoer(d)))

	_, err := s.Fetch(context.Background(), Filters{Status: "completed", UserID: 9, From: "2026-01-01"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := "http://backend.test/transactions?status=completed&user_id=9&from=2026-01-01"
	if d.lastURL != want {
		t.Fatalf("url = %q, want %q", d.lastURL, want)
	}
}

func TestFetch_FailureKeepsPriorItems(t *testing.T) {
	d := &fakeDoer{body: `{"error":"rango de fechas inválido"}`, status: 422}
	s := NewService(api.New("http://backend.test", api.WithDoer(d)))
	s.Store().SetItems([]Transaction{{ID: "t-1"}})

	if _, err := s.Fetch(context.Background(), Filters{}); err == nil {
		t.Fatal("expected error")
	}
	if s.Err() != "rango de fechas inválido" {
		t.Fatalf("err slot = %q", s.Err())
	}
	if s.Store().Len() != 1 {
		t.Fatal("prior items lost")
	}
	if s.Store().Loading() {
		t.Fatal("loading must reset")
	}
}
