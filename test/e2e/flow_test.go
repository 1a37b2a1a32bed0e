// Flujo completo del panel admin contra el mock backend: directorio,
// detalle store-first, acciones de mutación, validación de ids, donaciones
// y la política surfaced/silent de errores.
package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/patitas/internal/api"
	"github.com/dropDatabas3/patitas/internal/cache"
	"github.com/dropDatabas3/patitas/internal/features/adoptions"
	"github.com/dropDatabas3/patitas/internal/features/clinics"
	"github.com/dropDatabas3/patitas/internal/features/donations"
	"github.com/dropDatabas3/patitas/internal/features/petshops"
	"github.com/dropDatabas3/patitas/internal/features/users"
	"github.com/dropDatabas3/patitas/internal/mockapi"
)

// countingHandler cuenta los hits HTTP para poder afirmar "no hubo request".
type countingHandler struct {
	hits int64
	next http.Handler
}

func (c *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&c.hits, 1)
	c.next.ServeHTTP(w, r)
}

func (c *countingHandler) count() int64 { return atomic.LoadInt64(&c.hits) }

func Test_Flow_AdminPanel(t *testing.T) {
	ctx := context.Background()

	counter := &countingHandler{next: mockapi.New().Handler()}
	srv := httptest.NewServer(counter)
	defer srv.Close()

	cl := api.New(srv.URL, api.WithCache(cache.NewMemory(time.Minute)))

	usersSvc := users.NewService(cl)
	clinicsSvc := clinics.NewService(cl)
	storesSvc := petshops.NewService(cl)
	adoptionsSvc := adoptions.NewService(cl)
	donationsSvc := donations.NewService(cl)

	// 1) Listado de usuarios con envelope {users, total}
	items, err := usersSvc.Fetch(ctx, users.Filters{})
	require.NoError(t, err)
	require.Len(t, items, 4)
	require.Equal(t, 4, usersSvc.Store().Total())

	// 2) Detalle store-first: el get del usuario 2 no pega a la red
	before := counter.count()
	u, err := usersSvc.FetchByID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Mateo Guzmán", u.Name)
	require.Equal(t, before, counter.count(), "el lookup debe salir del store")

	// 3) Acción grant-pro: el store refleja el cambio sin refetch del listado
	require.True(t, usersSvc.GrantPro(ctx, 2))
	require.Empty(t, usersSvc.Err())
	u2, ok := usersSvc.Store().FindByID(2)
	require.True(t, ok)
	require.True(t, u2.IsPro())

	// 4) Id inválido: se corta local, sin request y con mensaje propio
	before = counter.count()
	require.False(t, usersSvc.GrantPro(ctx, -1))
	require.Equal(t, "ID de usuario inválido.", usersSvc.Err())
	require.Equal(t, before, counter.count())

	// 5) Error del backend surfaced: acción sobre un usuario inexistente
	require.False(t, usersSvc.Deactivate(ctx, 999))
	require.Equal(t, "usuario no encontrado", usersSvc.Err())

	// 6) Clínicas: verify es acción explícita y patchea el store
	_, err = clinicsSvc.Fetch(ctx, clinics.Filters{})
	require.NoError(t, err)
	require.True(t, clinicsSvc.Verify(ctx, 3))
	c3, ok := clinicsSvc.Store().FindByID(3)
	require.True(t, ok)
	require.True(t, c3.Verified)

	// 7) Tiendas: slug con traversal se bloquea antes de armar la URL
	_, err = storesSvc.Fetch(ctx, petshops.Filters{})
	require.NoError(t, err)
	before = counter.count()
	_, err = storesSvc.FetchBySlug(ctx, "../admin")
	require.Error(t, err)
	require.Equal(t, "Slug de tienda inválido.", storesSvc.Err())
	require.Equal(t, before, counter.count(), "un slug inválido jamás viaja como path")

	// 8) Donaciones: creación válida se antepone; inválida se corta local
	d, err := donationsSvc.Create(ctx, donations.CreateInput{ShelterID: 1, AmountCents: 250000, Donor: "Valentina"})
	require.NoError(t, err)
	require.NotEmpty(t, d.ID)
	first, ok := donationsSvc.Store().FindByID(d.ID)
	require.True(t, ok)
	require.Equal(t, int64(250000), first.AmountCents)

	before = counter.count()
	_, err = donationsSvc.Create(ctx, donations.CreateInput{ShelterID: 1, AmountCents: 0})
	require.Error(t, err)
	require.Equal(t, "Monto de donación inválido.", donationsSvc.Err())
	require.Equal(t, before, counter.count())

	// 9) Poll silencioso de adopciones: éxito actualiza, fallo no ensucia nada
	_, err = adoptionsSvc.Fetch(ctx, adoptions.Filters{})
	require.NoError(t, err)
	require.Equal(t, adoptions.StatusAvailable, adoptionsSvc.PollStatus(ctx, 1))

	require.Equal(t, "", adoptionsSvc.PollStatus(ctx, 999))
	require.Empty(t, adoptionsSvc.Err(), "el poll best-effort nunca toca el error slot")
}

// El backend puede responder el envelope y luego rechazar: la colección
// previa se preserva y el error slot trae el message del rechazo.
func Test_Flow_FailureKeepsCollection(t *testing.T) {
	ctx := context.Background()

	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if fail.Load() {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"Network error"}`))
			return
		}
		_, _ = w.Write([]byte(`{"clinics":[{"id":1,"name":"San Roque","city":"Bogotá"}],"total":7}`))
	}))
	defer srv.Close()

	svc := clinics.NewService(api.New(srv.URL))

	items, err := svc.Fetch(ctx, clinics.Filters{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 7, svc.Store().Total())

	fail.Store(true)
	_, err = svc.Fetch(ctx, clinics.Filters{})
	require.Error(t, err)
	require.Equal(t, "Network error", svc.Err())
	require.Equal(t, 1, svc.Store().Len(), "el fetch fallido no pisa la colección")
	require.False(t, svc.Store().Loading())
}
