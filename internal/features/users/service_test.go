package users

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dropDatabas3/patitas/internal/api"
)

// fakeDoer cuenta llamadas y responde con un handler fijo. Permite verificar
// que los paths de cache hit / validación NO tocan la red.
type fakeDoer struct {
	calls   int
	lastURL string
	respond func(req *http.Request) *http.Response
	err     error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.calls++
	f.lastURL = req.URL.String()
	if f.err != nil {
		return nil, f.err
	}
	return f.respond(req), nil
}

func jsonResp(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestService(d *fakeDoer) *Service {
	return NewService(api.New("http://backend.test", api.WithDoer(d)))
}

func TestFetch_EnvelopeSuccess(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response {
		return jsonResp(200, `{"users":[{"id":1,"name":"Ana","plan":"pro","active":true}],"total":7}`)
	}}
	s := newTestService(d)

	items, err := s.Fetch(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Ana" {
		t.Fatalf("items = %+v", items)
	}
	if s.Store().Len() != 1 || s.Store().Total() != 7 {
		t.Fatalf("store len=%d total=%d", s.Store().Len(), s.Store().Total())
	}
	if s.Err() != "" {
		t.Fatalf("err slot = %q", s.Err())
	}
	if s.Store().Loading() {
		t.Fatal("loading must reset after success")
	}
	if d.lastURL != "http://backend.test/users" {
		t.Fatalf("url = %q (empty filters must not emit ?)", d.lastURL)
	}
}

func TestFetch_FiltersInQuery(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response { return jsonResp(200, `[]`) }}
	s := newTestService(d)
	tru := true
	s.Fetch(context.Background(), Filters{Query: "ana", Plan: "pro", Active: &tru})
	if d.lastURL != "http://backend.test/users?q=ana&plan=pro&active=true" {
		t.Fatalf("url = %q", d.lastURL)
	}
}

func TestFetch_FailureSurfacesAndResetsLoading(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response {
		return jsonResp(500, `{"error":"base de datos caída"}`)
	}}
	s := newTestService(d)
	s.Store().SetItems([]User{{ID: 9}}) // estado previo

	_, err := s.Fetch(context.Background(), Filters{})
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Err() != "base de datos caída" {
		t.Fatalf("err slot = %q", s.Err())
	}
	if s.Store().Loading() {
		t.Fatal("loading must reset after failure")
	}
	// el fallo no pisa la colección previa
	if s.Store().Len() != 1 {
		t.Fatalf("prior items lost: len=%d", s.Store().Len())
	}
}

func TestFetch_ErrorSlotClearedOnNextAttempt(t *testing.T) {
	fail := true
	d := &fakeDoer{respond: func(*http.Request) *http.Response {
		if fail {
			return jsonResp(500, `{"message":"Network error"}`)
		}
		return jsonResp(200, `{"users":[]}`)
	}}
	s := newTestService(d)

	s.Fetch(context.Background(), Filters{})
	if s.Err() != "Network error" {
		t.Fatalf("err slot = %q", s.Err())
	}
	fail = false
	s.Fetch(context.Background(), Filters{})
	if s.Err() != "" {
		t.Fatalf("stale error lingers: %q", s.Err())
	}
}

func TestFetchByID_StoreFirstCacheHitAvoidsNetwork(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response { return jsonResp(200, `{}`) }}
	s := newTestService(d)
	s.Store().SetItems([]User{{ID: 3, Name: "Caro"}})

	u, err := s.FetchByID(context.Background(), 3)
	if err != nil || u == nil || u.Name != "Caro" {
		t.Fatalf("u=%+v err=%v", u, err)
	}
	if d.calls != 0 {
		t.Fatalf("cache hit must not hit the transport: calls=%d", d.calls)
	}
	if sel := s.Store().Selected(); sel == nil || sel.ID != 3 {
		t.Fatalf("selected = %+v", sel)
	}
	if s.Store().Loading() {
		t.Fatal("cache hit must not flip loading")
	}
}

func TestFetchByID_MissFetchesAndSelects(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response {
		return jsonResp(200, `{"id":8,"name":"Luis"}`)
	}}
	s := newTestService(d)

	u, err := s.FetchByID(context.Background(), 8)
	if err != nil || u.Name != "Luis" {
		t.Fatalf("u=%+v err=%v", u, err)
	}
	if d.calls != 1 || d.lastURL != "http://backend.test/users/8" {
		t.Fatalf("calls=%d url=%q", d.calls, d.lastURL)
	}
	if s.Store().Selected() == nil {
		t.Fatal("selected not set")
	}
}

func TestFetchByID_FailureDoesNotSelect(t *testing.T) {
	d := &fakeDoer{err: errors.New("connection refused")}
	s := newTestService(d)

	u, err := s.FetchByID(context.Background(), 8)
	if err == nil || u != nil {
		t.Fatalf("u=%v err=%v", u, err)
	}
	if s.Store().Selected() != nil {
		t.Fatal("selected must stay absent on failure")
	}
	if s.Err() == "" {
		t.Fatal("failure must surface")
	}
	if s.Store().Loading() {
		t.Fatal("loading must reset")
	}
}

func TestGrantPro_InvalidIDBlocksNetwork(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response { return jsonResp(200, `{}`) }}
	s := newTestService(d)

	for _, id := range []int64{0, -1} {
		if ok := s.GrantPro(context.Background(), id); ok {
			t.Fatalf("id %d must fail", id)
		}
		if s.Err() != errInvalidID {
			t.Fatalf("err slot = %q", s.Err())
		}
	}
	if d.calls != 0 {
		t.Fatalf("invalid ids must produce zero HTTP calls, got %d", d.calls)
	}
}

func TestGrantPro_SuccessPatchesStore(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response {
		return jsonResp(200, `{"message":"ok"}`)
	}}
	s := newTestService(d)
	s.Store().SetItems([]User{{ID: 5, Plan: "free"}})

	if ok := s.GrantPro(context.Background(), 5); !ok {
		t.Fatalf("grant failed: %s", s.Err())
	}
	if d.lastURL != "http://backend.test/users/5/grant-pro" {
		t.Fatalf("url = %q", d.lastURL)
	}
	if got := s.Store().Items()[0].Plan; got != "pro" {
		t.Fatalf("plan = %q", got)
	}
	if pro := s.ProUsers(); len(pro) != 1 {
		t.Fatalf("ProUsers = %+v", pro)
	}
}

func TestSetPlan_SendsBody(t *testing.T) {
	var body []byte
	d := &fakeDoer{respond: func(r *http.Request) *http.Response {
		body, _ = io.ReadAll(r.Body)
		return jsonResp(200, `{}`)
	}}
	s := newTestService(d)

	if ok := s.SetPlan(context.Background(), 2, "pro"); !ok {
		t.Fatalf("err: %s", s.Err())
	}
	if string(body) != `{"plan":"pro"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestDeactivate_ServerFailureSurfaces(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response {
		return jsonResp(403, `{"error":"no autorizado"}`)
	}}
	s := newTestService(d)
	s.Store().SetItems([]User{{ID: 5, Active: true}})

	if ok := s.Deactivate(context.Background(), 5); ok {
		t.Fatal("expected failure")
	}
	if s.Err() != "no autorizado" {
		t.Fatalf("err slot = %q", s.Err())
	}
	if !s.Store().Items()[0].Active {
		t.Fatal("failed action must not patch the store")
	}
}

func TestExtractFallbackOnOpaqueFailure(t *testing.T) {
	d := &fakeDoer{respond: func(*http.Request) *http.Response { return jsonResp(500, ``) }}
	s := newTestService(d)
	s.Fetch(context.Background(), Filters{})
	// body vacío: el transporte setea Message=StatusText y Extract lo usa
	if s.Err() != http.StatusText(500) {
		t.Fatalf("err slot = %q", s.Err())
	}
}

func TestClearResetsCollectionNotLoading(t *testing.T) {
	d := &fakeDoer{}
	s := newTestService(d)
	s.Store().SetItems([]User{{ID: 1}})
	s.Store().SetLoading(true)
	s.Clear()
	if s.Store().HasItems() {
		t.Fatal("items not cleared")
	}
	if !s.Store().Loading() {
		t.Fatal("Clear must not touch loading")
	}
}
