package petshops

import (
	"context"
	"sync"

	"github.com/dropDatabas3/patitas/internal/api"
	"github.com/dropDatabas3/patitas/internal/apierr"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

const errInvalidSlug = "Slug de tienda inválido."

// Filters del listado de tiendas.
type Filters struct {
	City string
	Plan string
}

// Service orquesta las llamadas HTTP de tiendas y sincroniza el store.
type Service struct {
	api   *api.Client
	store *store.Store[Petshop, string]

	mu  sync.Mutex
	err string
}

func NewService(c *api.Client) *Service {
	return &Service{api: c, store: NewStore()}
}

func (s *Service) Store() *store.Store[Petshop, string] { return s.store }

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

// Fetch trae el directorio de tiendas. Surfaced.
func (s *Service) Fetch(ctx context.Context, f Filters) ([]Petshop, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("petshops"), logger.Op("Fetch"))

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	q := api.NewQuery().Set("city", f.City).Set("plan", f.Plan)
	raw, err := s.api.Get(ctx, "/stores", q)
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("fetch failed", logger.Err(err))
		return nil, err
	}
	items, meta, err := api.DecodeList[Petshop](raw, "stores")
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetItems(items)
	s.store.SetTotal(meta.Total)
	return items, nil
}

// FetchBySlug resuelve el detalle con lookup store-first. El slug se valida
// también acá porque termina interpolado en el path.
func (s *Service) FetchBySlug(ctx context.Context, slug string) (*Petshop, error) {
	if p, ok := s.store.FindByID(slug); ok {
		s.store.SetSelected(p)
		return p, nil
	}

	if !validation.ValidSlugID(slug) {
		s.setErr(errInvalidSlug)
		return nil, apierr.New(0, errInvalidSlug)
	}

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	raw, err := s.api.Get(ctx, "/stores/"+slug, nil)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	p, err := api.DecodeItem[Petshop](raw)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetSelected(&p)
	return &p, nil
}

// Deactivate da de baja la tienda. DELETE /stores/{slug}.
func (s *Service) Deactivate(ctx context.Context, slug string) bool {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("petshops"), logger.Op("Deactivate"), logger.Slug(slug))

	if !validation.ValidSlugID(slug) {
		s.setErr(errInvalidSlug)
		return false
	}
	s.clearErr()

	if _, err := s.api.Delete(ctx, "/stores/"+slug); err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("deactivate failed", logger.Err(err))
		return false
	}
	s.store.Remove(slug)
	log.Info("petshop deactivated")
	return true
}

// Featured retorna las tiendas con plan pago.
func (s *Service) Featured() []Petshop {
	return s.store.Filter(Petshop.IsFeatured)
}
