package petshops

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dropDatabas3/patitas/internal/api"
)

type fakeDoer struct {
	calls   int
	lastURL string
	respond func(req *http.Request) *http.Response
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.calls++
	f.lastURL = req.URL.String()
	return f.respond(req), nil
}

func jsonResp(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func newTestService(d *fakeDoer) *Service {
	return NewService(api.New("http://backend.test", api.WithDoer(d)))
}

func TestFetch_StoresEnvelopeKey(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response {
		return jsonResp(200, `{"stores":[{"slug":"huellitas","name":"Huellitas","plan":"premium"}]}`)
	}}
	s := newTestService(d)
	items, err := s.Fetch(context.Background(), Filters{})
	if err != nil || len(items) != 1 || items[0].Slug != "huellitas" {
		t.Fatalf("items=%+v err=%v", items, err)
	}
	if f := s.Featured(); len(f) != 1 {
		t.Fatalf("Featured() = %+v (plan premium cuenta como pago)", f)
	}
}

func TestFeatured_FreeAndEmptyPlanExcluded(t *testing.T) {
	s := newTestService(&fakeDoer{})
	s.Store().SetItems([]Petshop{
		{Slug: "a", Plan: ""},
		{Slug: "b", Plan: "free"},
		{Slug: "c", Plan: "pro"},
	})
	f := s.Featured()
	if len(f) != 1 || f[0].Slug != "c" {
		t.Fatalf("Featured() = %+v", f)
	}
}

func TestFetchBySlug_CacheHit(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response { return jsonResp(200, `{}`) }}
	s := newTestService(d)
	s.Store().SetItems([]Petshop{{Slug: "huellitas"}})

	p, err := s.FetchBySlug(context.Background(), "huellitas")
	if err != nil || p == nil || d.calls != 0 {
		t.Fatalf("p=%+v err=%v calls=%d", p, err, d.calls)
	}
}

func TestFetchBySlug_TraversalBlocked(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response { return jsonResp(200, `{}`) }}
	s := newTestService(d)

	for _, slug := range []string{"", "../admin", "a/b", "x%2e%2e"} {
		p, err := s.FetchBySlug(context.Background(), slug)
		if err == nil || p != nil {
			t.Fatalf("slug %q must fail", slug)
		}
		if s.Err() != errInvalidSlug {
			t.Fatalf("err slot = %q", s.Err())
		}
	}
	if d.calls != 0 {
		t.Fatalf("invalid slugs must produce zero HTTP calls, got %d", d.calls)
	}
}

func TestDeactivate_RemovesAndValidates(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response { return jsonResp(200, `{"message":"ok"}`) }}
	s := newTestService(d)
	s.Store().SetItems([]Petshop{{Slug: "huellitas"}, {Slug: "patas-arriba"}})

	if ok := s.Deactivate(context.Background(), "../huellitas"); ok || d.calls != 0 {
		t.Fatalf("traversal slug must not reach the network (calls=%d)", d.calls)
	}
	if ok := s.Deactivate(context.Background(), "huellitas"); !ok {
		t.Fatalf("deactivate failed: %s", s.Err())
	}
	if d.lastURL != "http://backend.test/stores/huellitas" {
		t.Fatalf("url = %q", d.lastURL)
	}
	if s.Store().Len() != 1 {
		t.Fatalf("items = %+v", s.Store().Items())
	}
}
