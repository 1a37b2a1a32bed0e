package users

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

const errInvalidID = "ID de usuario inválido."

// Filters son los filtros client-side/server-side del listado de usuarios.
// Los campos vacíos se omiten del query string.
type Filters struct {
	Query  string
	Role   string
	Plan   string
	Active *bool
}

// Service orquesta las llamadas HTTP de usuarios y sincroniza el store.
// Dueño del error slot de la feature: cada acción lo limpia al entrar y solo
// las acciones "surfaced" lo setean al fallar.
type Service struct {
	api   *api.Client
	store *store.Store[User, int64]

	mu  sync.Mutex
	err string
}

// NewService crea el service de usuarios sobre el client HTTP compartido.
func NewService(c *api.Client) *Service {
	return &Service{api: c, store: NewStore()}
}

// Store expone el store de la feature (lectura para los consumidores).
func (s *Service) Store() *store.Store[User, int64] { return s.store }

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

// Fetch trae el listado de usuarios y reemplaza la colección del store.
// Acción surfaced: el fallo queda en el error slot.
func (s *Service) Fetch(ctx context.Context, f Filters) ([]User, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("users"), logger.Op("Fetch"))

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	q := api.NewQuery().
		Set("q", f.Query).
		Set("role", f.Role).
		Set("plan", f.Plan).
		SetBool("active", f.Active)

	raw, err := s.api.Get(ctx, "/users", q)
	if err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("fetch failed", logger.Err(err))
		return nil, err
	}
	items, meta, err := api.DecodeList[User](raw, "users")
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetItems(items)
	s.store.SetTotal(meta.Total)
	log.Debug("users fetched", logger.Count(len(items)))
	return items, nil
}

// FetchByID resuelve el detalle de un usuario. Primero busca en la colección
// ya cargada (cache hit: selecciona y retorna sin tocar loading ni red);
// solo en miss va al endpoint singular.
func (s *Service) FetchByID(ctx context.Context, id int64) (*User, error) {
	if u, ok := s.store.FindByID(id); ok {
		s.store.SetSelected(u)
		return u, nil
	}

	s.store.SetLoading(true)
	s.clearErr()
	defer s.store.SetLoading(false)

	raw, err := s.api.Get(ctx, fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	u, err := api.DecodeItem[User](raw)
	if err != nil {
		s.setErr(apierr.Extract(err))
		return nil, err
	}
	s.store.SetSelected(&u)
	return &u, nil
}

// GrantPro marca al usuario como pro. PATCH /users/{id}/grant-pro.
func (s *Service) GrantPro(ctx context.Context, id int64) bool {
	return s.patchAction(ctx, id, "grant-pro", nil, func(u *User) { u.Plan = "pro" })
}

// RevokePro regresa al usuario a plan free. PATCH /users/{id}/revoke-pro.
func (s *Service) RevokePro(ctx context.Context, id int64) bool {
	return s.patchAction(ctx, id, "revoke-pro", nil, func(u *User) { u.Plan = "free" })
}

// GrantAdmin otorga rol admin. PATCH /users/{id}/grant-admin.
func (s *Service) GrantAdmin(ctx context.Context, id int64) bool {
	return s.patchAction(ctx, id, "grant-admin", nil, func(u *User) { u.Role = "admin" })
}

// RevokeAdmin quita el rol admin. PATCH /users/{id}/revoke-admin.
func (s *Service) RevokeAdmin(ctx context.Context, id int64) bool {
	return s.patchAction(ctx, id, "revoke-admin", nil, func(u *User) { u.Role = "user" })
}

// Activate habilita la cuenta. PATCH /users/{id}/activate.
func (s *Service) Activate(ctx context.Context, id int64) bool {
	return s.patchAction(ctx, id, "activate", nil, func(u *User) { u.Active = true })
}

// Deactivate deshabilita la cuenta. PATCH /users/{id}/deactivate.
func (s *Service) Deactivate(ctx context.Context, id int64) bool {
	return s.patchAction(ctx, id, "deactivate", nil, func(u *User) { u.Active = false })
}

// SetPlan setea un plan arbitrario. PATCH /users/{id}/plan con body {plan}.
func (s *Service) SetPlan(ctx context.Context, id int64, plan string) bool {
	return s.patchAction(ctx, id, "plan", map[string]any{"plan": plan}, func(u *User) { u.Plan = plan })
}

// patchAction es el wrapper común de las acciones de mutación: valida el id
// ANTES de construir el path, limpia el slot, llama y aplica el patch local.
// No toca el flag de loading (toggles de rol/plan son instantáneos en la UI).
func (s *Service) patchAction(ctx context.Context, id int64, action string, body any, apply func(*User)) bool {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Feature("users"), logger.Op(action), logger.UserID(id))

	if !validation.ValidNumericID(id) {
		s.setErr(errInvalidID)
		return false
	}
	s.clearErr()

	if _, err := s.api.Patch(ctx, fmt.Sprintf("/users/%d/%s", id, action), body); err != nil {
		s.setErr(apierr.Extract(err))
		log.Error("action failed", logger.Err(err))
		return false
	}
	s.store.Patch(id, apply)
	log.Info("user updated")
	return true
}

// ProUsers retorna los usuarios con plan pago.
func (s *Service) ProUsers() []User {
	return s.store.Filter(User.IsPro)
}

// ActiveUsers retorna los usuarios habilitados.
func (s *Service) ActiveUsers() []User {
	return s.store.Filter(func(u User) bool { return u.Active })
}

// Clear resetea colección y selección. Atado al fin de sesión (logout):
// los datos de usuarios no deben sobrevivir a la sesión del admin.
func (s *Service) Clear() {
	s.store.ClearAll()
}
