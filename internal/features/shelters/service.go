package shelters

import (
	"context"
	"fmt"
	"sync"

	"github.com/dropDatabas3/patitas/internal/api"
	"github.com/dropDatabas3/patitas/internal/apierr"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
	"github.com/dropDatabas3/patitas/internal/store"
)

// Service orquesta las llamadas HTTP de refugios y sincroniza el store.
type Service struct {
	api   *api.Client
	store *store.Store[Shelter, int64]

	mu  sync.Mutex
	err string
}

func NewService(c *api.Client) *Service {
	return &Service{api: c, store: NewStore()}
}

func (s *Service) Store() *store.Store[Shelter, int64] { return s.store }

func (s *Service) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Service) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

func (s *Service) clearErr() { s.setErr("") }

// Fetch trae el directorio de refugios, opcionalmente por ciudad. Surfaced.
func (s *Service) Fetch(ctx context.Context, city string) ([]Shelter, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("shelters"), logger.Op("Fetch"))

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	raw, err := s.api.Get(ctx, "/shelters", api.NewQuery().Set("city", city))
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("fetch failed", logger.Err(err))
		return nil, err
	}
	items, meta, err := api.DecodeList[Shelter](raw, "shelters")
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetItems(items)
	s.store.SetTotal(meta.Total)
	return items, nil
}

// FetchByID resuelve el detalle con lookup store-first.
func (s *Service) FetchByID(ctx context.Context, id int64) (*Shelter, error) {
	if sh, ok := s.store.FindByID(id); ok {
		s.store.SetSelected(sh)
		return sh, nil
	}

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	raw, err := s.api.Get(ctx, fmt.Sprintf("/shelters/%d", id), nil)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	sh, err := api.DecodeItem[Shelter](raw)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetSelected(&sh)
	return &sh, nil
}

// WithSpace retorna los refugios con cupos libres.
func (s *Service) WithSpace() []Shelter {
	return s.store.Filter(Shelter.HasSpace)
}
