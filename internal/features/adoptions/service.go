package adoptions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dropDatabas3/patitas/internal/api"
	"github.com/dropDatabas3/patitas/internal/apierr"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

const errInvalidID = "ID de listado inválido."

// statusPollTTL acota la frecuencia real de los polls de disponibilidad.
const statusPollTTL = 30 * time.Second

// Filters del directorio de adopciones.
type Filters struct {
	Species string
	City    string
	Status  string
}

// Service orquesta las llamadas HTTP de adopciones y sincroniza el store.
type Service struct {
	api   *api.Client
	store *store.Store[Listing, int64]

	mu  sync.Mutex
	err string
}

func NewService(c *api.Client) *Service {
	return &Service{api: c, store: NewStore()}
}

func (s *Service) Store() *store.Store[Listing, int64] { return s.store }

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

// Fetch trae el directorio de adopciones. Surfaced.
func (s *Service) Fetch(ctx context.Context, f Filters) ([]Listing, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("adoptions"), logger.Op("Fetch"))

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	q := api.NewQuery().
		Set("species", f.Species).
		Set("city", f.City).
		Set("status", f.Status)

	raw, err := s.api.Get(ctx, "/adoption-listings", q)
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("fetch failed", logger.Err(err))
		return nil, err
	}
	items, meta, err := api.DecodeList[Listing](raw, "adoption_listings")
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetItems(items)
	s.store.SetTotal(meta.Total)
	log.Debug("listings fetched", logger.Count(len(items)))
	return items, nil
}

// FetchByID resuelve el detalle con lookup store-first.
func (s *Service) FetchByID(ctx context.Context, id int64) (*Listing, error) {
	if l, ok := s.store.FindByID(id); ok {
		s.store.SetSelected(l)
		return l, nil
	}

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	raw, err := s.api.Get(ctx, fmt.Sprintf("/adoption-listings/%d", id), nil)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	l, err := api.DecodeItem[Listing](raw)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetSelected(&l)
	return &l, nil
}

// MarkAdopted cierra el listado. PATCH /adoption-listings/{id}/adopt.
func (s *Service) MarkAdopted(ctx context.Context, id int64) bool {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("adoptions"), logger.Op("MarkAdopted"), logger.ID(id))

	if !validation.ValidNumericID(id) {
		s.setErr(errInvalidID)
		return false
	}
	s.clearErr()

	if _, err := s.api.Patch(ctx, fmt.Sprintf("/adoption-listings/%d/adopt", id), nil); err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("mark adopted failed", logger.Err(err))
		return false
	}
	s.store.Patch(id, func(l *Listing) { l.Status = StatusAdopted })
	log.Info("listing adopted")
	return true
}

// PollStatus consulta el status actual de un listado. Acción SILENT:
// es un poll best-effort de la UI; cualquier fallo se traga, el error slot
// queda intacto y el estado previo se preserva. Retorna "" si no se pudo.
// La respuesta va cacheada con TTL para no martillar el backend.
func (s *Service) PollStatus(ctx context.Context, id int64) string {
	if !validation.ValidNumericID(id) {
		return ""
	}

	raw, err := s.api.GetCached(ctx, fmt.Sprintf("/adoption-listings/%d/status", id), nil, statusPollTTL)
	if err != nil {
		logger.From(ctx).Debug("status poll failed", logger.ID(id), logger.Err(err))
		return ""
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Status != "" {
		s.store.Patch(id, func(l *Listing) { l.Status = body.Status })
	}
	return body.Status
}

// Available retorna los listados disponibles (status == "available").
func (s *Service) Available() []Listing {
	return s.store.Filter(func(l Listing) bool { return l.Status == StatusAvailable })
}
