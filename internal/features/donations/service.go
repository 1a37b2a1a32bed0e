package donations

import (
	"context"
	"sync"

	"github.com/dropDatabas3/patitas/internal/api"
	"github.com/dropDatabas3/patitas/internal/apierr"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

const (
	errInvalidShelter = "ID de refugio inválido."
	errInvalidAmount  = "Monto de donación inválido."
)

// Service orquesta las llamadas HTTP de donaciones y sincroniza el store.
type Service struct {
	api   *api.Client
	store *store.Store[Donation, string]

	mu  sync.Mutex
	err string
}

func NewService(c *api.Client) *Service {
	return &Service{api: c, store: NewStore()}
}

func (s *Service) Store() *store.Store[Donation, string] { return s.store }

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

// Fetch trae las donaciones, opcionalmente filtradas por refugio. Surfaced.
func (s *Service) Fetch(ctx context.Context, shelterID int64) ([]Donation, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("donations"), logger.Op("Fetch"))

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	q := api.NewQuery().SetInt("shelter_id", shelterID)
	raw, err := s.api.Get(ctx, "/donations", q)
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("fetch failed", logger.Err(err))
		return nil, err
	}
	items, meta, err := api.DecodeList[Donation](raw, "donations")
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetItems(items)
	s.store.SetTotal(meta.Total)
	return items, nil
}

// Create registra una donación y la antepone a la colección (newest-first).
// Valida refugio y monto antes de tocar la red. Toggle de loading: el form
// de donar muestra spinner mientras confirma.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Donation, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("donations"), logger.Op("Create"), logger.ID(in.ShelterID))

	if !validation.ValidNumericID(in.ShelterID) {
		s.setErr(errInvalidShelter)
		return nil, apierr.New(0, errInvalidShelter)
	}
	if in.AmountCents <= 0 {
		s.setErr(errInvalidAmount)
		return nil, apierr.New(0, errInvalidAmount)
	}
	s.clearErr()
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	raw, err := s.api.Post(ctx, "/donations", in)
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("create failed", logger.Err(err))
		return nil, err
	}
	d, err := api.DecodeItem[Donation](raw)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.AddItem(d)
	log.Info("donation created", logger.String("donation_id", d.ID))
	return &d, nil
}
