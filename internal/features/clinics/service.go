package clinics

import (
	"context"
	"fmt"
	"sync"

	"github.com/dropDatabas3/patitas/internal/api"
	"github.com/dropDatabas3/patitas/internal/apierr"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
	"github.com/dropDatabas3/patitas/internal/store"
	"github.com/dropDatabas3/patitas/internal/validation"
)

const errInvalidID = "ID de clínica inválido."

// Filters del listado de clínicas.
type Filters struct {
	City     string
	Service  string
	Verified *bool
}

// UpdateInput lleva solo los campos a cambiar (update parcial, PUT).
type UpdateInput struct {
	Name     *string   `json:"name,omitempty"`
	City     *string   `json:"city,omitempty"`
	Address  *string   `json:"address,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Website  *string   `json:"website,omitempty"`
	PhotoURL *string   `json:"photo_url,omitempty"`
	Services *[]string `json:"services,omitempty"`
}

// Service orquesta las llamadas HTTP de clínicas y sincroniza el store.
type Service struct {
	api   *api.Client
	store *store.Store[Clinic, int64]

	mu  sync.Mutex
	err string
}

// NewService crea el service de clínicas.
func NewService(c *api.Client) *Service {
	return &Service{api: c, store: NewStore()}
}

// Store expone el store de la feature.
func (s *Service) Store() *store.Store[Clinic, int64] { return s.store }

// Err retorna el mensaje de error pendiente, o "" si no hay.
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

// Fetch trae el directorio de clínicas. Surfaced.
func (s *Service) Fetch(ctx context.Context, f Filters) ([]Clinic, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("clinics"), logger.Op("Fetch"))

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	q := api.NewQuery().
		Set("city", f.City).
		Set("service", f.Service).
		SetBool("verified", f.Verified)

	raw, err := s.api.Get(ctx, "/clinics", q)
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("fetch failed", logger.Err(err))
		return nil, err
	}
	items, meta, err := api.DecodeList[Clinic](raw, "clinics")
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetItems(items)
	s.store.SetTotal(meta.Total)
	log.Debug("clinics fetched", logger.Count(len(items)))
	return items, nil
}

// FetchByID resuelve el detalle con lookup store-first.
func (s *Service) FetchByID(ctx context.Context, id int64) (*Clinic, error) {
	if c, ok := s.store.FindByID(id); ok {
		s.store.SetSelected(c)
		return c, nil
	}

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	raw, err := s.api.Get(ctx, fmt.Sprintf("/clinics/%d", id), nil)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	c, err := api.DecodeItem[Clinic](raw)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetSelected(&c)
	return &c, nil
}

// Update hace el update parcial de una clínica. Toggle de loading alrededor
// de la llamada: la UI de edición muestra spinner mientras guarda.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Clinic, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("clinics"), logger.Op("Update"), logger.ID(id))

	if !validation.ValidNumericID(id) {
		s.setErr(errInvalidID)
		return nil, fmt.Errorf("clinics: %s", errInvalidID)
	}
	s.clearErr()
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	raw, err := s.api.Put(ctx, fmt.Sprintf("/clinics/%d", id), in)
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("update failed", logger.Err(err))
		return nil, err
	}
	updated, err := api.DecodeItem[Clinic](raw)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.Patch(id, func(c *Clinic) { *c = updated })
	log.Info("clinic updated")
	return &updated, nil
}

// Delete elimina la clínica y la saca de la colección.
func (s *Service) Delete(ctx context.Context, id int64) bool {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("clinics"), logger.Op("Delete"), logger.ID(id))

	if !validation.ValidNumericID(id) {
		s.setErr(errInvalidID)
		return false
	}
	s.clearErr()
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	if _, err := s.api.Delete(ctx, fmt.Sprintf("/clinics/%d", id)); err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("delete failed", logger.Err(err))
		return false
	}
	s.store.Remove(id)
	log.Info("clinic deleted")
	return true
}

// Verify marca la clínica como verificada. PATCH /clinics/{id}/verify.
// Sin toggle de loading: es un check instantáneo en la tabla del admin.
func (s *Service) Verify(ctx context.Context, id int64) bool {
	if !validation.ValidNumericID(id) {
		s.setErr(errInvalidID)
		return false
	}
	s.clearErr()

	if _, err := s.api.Patch(ctx, fmt.Sprintf("/clinics/%d/verify", id), nil); err != nil {
		s.setErr(apierr.Extract(err))
		return false
	}
	s.store.Patch(id, func(c *Clinic) { c.Verified = true })
	return true
}

// Verified retorna las clínicas verificadas.
func (s *Service) Verified() []Clinic {
	return s.store.Filter(func(c Clinic) bool { return c.Verified })
}

// Featured retorna las clínicas destacadas (flag booleano del backend).
func (s *Service) Featured() []Clinic {
	return s.store.Filter(func(c Clinic) bool { return c.Featured })
}

// Nota: no hay Clear() atado a logout. El directorio de clínicas es data
// pública no ligada al usuario; sobrevive el fin de sesión a propósito.
