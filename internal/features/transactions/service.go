package transactions

import (
	"context"
	"sync"

	"github.com/dropDatabas3/patitas/internal/api"
	"github.com/dropDatabas3/patitas/internal/apierr"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
	"github.com/dropDatabas3/patitas/internal/store"
)

// Filters del listado de transacciones. From/To en formato YYYY-MM-DD.
type Filters struct {
	Status string
	UserID int64
	From   string
	To     string
}

// Service orquesta las llamadas HTTP de transacciones y sincroniza el store.
type Service struct {
	api   *api.Client
	store *store.Store[Transaction, string]

	mu  sync.Mutex
	err string
}

func NewService(c *api.Client) *Service {
	return &Service{api: c, store: NewStore()}
}

func (s *Service) Store() *store.Store[Transaction, string] { return s.store }

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

// Fetch trae las transacciones con filtros. Surfaced.
func (s *Service) Fetch(ctx context.Context, f Filters) ([]Transaction, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("transactions"), logger.Op("Fetch"))

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	q := api.NewQuery().
		Set("status", f.Status).
		SetInt("user_id", f.UserID).
		Set("from", f.From).
		Set("to", f.To)

	raw, err := s.api.Get(ctx, "/transactions", q)
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("fetch failed", logger.Err(err))
		return nil, err
	}
	items, meta, err := api.DecodeList[Transaction](raw, "transactions")
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetItems(items)
	s.store.SetTotal(meta.Total)
	log.Debug("transactions fetched", logger.Count(len(items)))
	return items, nil
}

// Clear resetea el store. Las transacciones son data del usuario admin;
// se limpian al cerrar sesión igual que los usuarios.
func (s *Service) Clear() {
	s.store.ClearAll()
}
