// Package mockapi implementa un backend falso del marketplace para desarrollo
// local y tests e2e. Sirve los mismos endpoints y envelopes que el backend
// real; con ?shape=bare responde el array pelado en vez del envelope, para
// ejercitar ambas formas de normalización.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dropDatabas3/patitas/internal/features/adoptions"
	"github.com/dropDatabas3/patitas/internal/features/clinics"
	"github.com/dropDatabas3/patitas/internal/features/donations"
	"github.com/dropDatabas3/patitas/internal/features/petshops"
	"github.com/dropDatabas3/patitas/internal/features/shelters"
	"github.com/dropDatabas3/patitas/internal/features/transactions"
	"github.com/dropDatabas3/patitas/internal/features/users"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
)

// Server mantiene la data en memoria. Un mutex alcanza: es un mock.
type Server struct {
	mu           sync.Mutex
	users        []users.User
	clinics      []clinics.Clinic
	shelters     []shelters.Shelter
	stores       []petshops.Petshop
	listings     []adoptions.Listing
	donations    []donations.Donation
	transactions []transactions.Transaction
}

// New crea el server con la data seed de desarrollo.
func New() *Server {
	s := &Server{}
	s.seed()
	return s
}

// Handler arma el router chi con todos los endpoints del marketplace.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Get("/{id}", s.getUser)
		r.Patch("/{id}/{action}", s.patchUser)
	})

	r.Route("/clinics", func(r chi.Router) {
		r.Get("/", s.listClinics)
		r.Get("/{id}", s.getClinic)
		r.Put("/{id}", s.updateClinic)
		r.Delete("/{id}", s.deleteClinic)
		r.Patch("/{id}/verify", s.verifyClinic)
	})

	r.Route("/shelters", func(r chi.Router) {
		r.Get("/", s.listShelters)
		r.Get("/{id}", s.getShelter)
	})

	r.Route("/stores", func(r chi.Router) {
		r.Get("/", s.listStores)
		r.Get("/{slug}", s.getStore)
		r.Delete("/{slug}", s.deleteStore)
	})

	r.Route("/adoption-listings", func(r chi.Router) {
		r.Get("/", s.listListings)
		r.Get("/{id}", s.getListing)
		r.Get("/{id}/status", s.listingStatus)
		r.Patch("/{id}/adopt", s.adoptListing)
	})

	r.Route("/donations", func(r chi.Router) {
		r.Get("/", s.listDonations)
		r.Post("/", s.createDonation)
	})

	r.Get("/transactions", s.listTransactions)

	return r
}

// ───────────────────────── helpers ─────────────────────────

// requestLog loguea cada request en formato printf (es un mock, alcanza).
func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.S().Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeList responde el envelope {key: items, total} o, con ?shape=bare,
// el array pelado.
func writeList[T any](w http.ResponseWriter, r *http.Request, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	if r.URL.Query().Get("shape") == "bare" {
		writeJSON(w, http.StatusOK, items)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{key: items, "total": len(items)})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ───────────────────────── users ─────────────────────────

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	var out []users.User
	for _, u := range s.users {
		if v := q.Get("role"); v != "" && u.Role != v {
			continue
		}
		if v := q.Get("plan"); v != "" && u.Plan != v {
			continue
		}
		if v := q.Get("active"); v != "" && strconv.FormatBool(u.Active) != v {
			continue
		}
		if v := q.Get("q"); v != "" && !containsFold(u.Name, v) && !containsFold(u.Email, v) {
			continue
		}
		out = append(out, u)
	}
	writeList(w, r, "users", out)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeErr(w, http.StatusNotFound, "usuario no encontrado")
}

func (s *Server) patchUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	action := chi.URLParam(r, "action")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		switch action {
		case "grant-pro":
			u.Plan = "pro"
		case "revoke-pro":
			u.Plan = "free"
		case "grant-admin":
			u.Role = "admin"
		case "revoke-admin":
			u.Role = "user"
		case "activate":
			u.Active = true
		case "deactivate":
			u.Active = false
		case "plan":
			var body struct {
				Plan string `json:"plan"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Plan == "" {
				writeErr(w, http.StatusBadRequest, "plan requerido")
				return
			}
			u.Plan = body.Plan
		default:
			writeErr(w, http.StatusNotFound, "acción desconocida")
			return
		}
		writeJSON(w, http.StatusOK, u)
		return
	}
	writeErr(w, http.StatusNotFound, "usuario no encontrado")
}

// ───────────────────────── clinics ─────────────────────────

func (s *Server) listClinics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	var out []clinics.Clinic
	for _, c := range s.clinics {
		if v := q.Get("city"); v != "" && c.City != v {
			continue
		}
		if v := q.Get("verified"); v != "" && strconv.FormatBool(c.Verified) != v {
			continue
		}
		if v := q.Get("service"); v != "" && !containsStr(c.Services, v) {
			continue
		}
		out = append(out, c)
	}
	writeList(w, r, "clinics", out)
}

func (s *Server) getClinic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clinics {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeErr(w, http.StatusNotFound, "clínica no encontrada")
}

func (s *Server) updateClinic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	var in clinics.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clinics {
		if s.clinics[i].ID != id {
			continue
		}
		c := &s.clinics[i]
		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.City != nil {
			c.City = *in.City
		}
		if in.Address != nil {
			c.Address = *in.Address
		}
		if in.Phone != nil {
			c.Phone = *in.Phone
		}
		if in.Email != nil {
			c.Email = *in.Email
		}
		if in.Website != nil {
			c.Website = *in.Website
		}
		if in.PhotoURL != nil {
			c.PhotoURL = *in.PhotoURL
		}
		if in.Services != nil {
			c.Services = *in.Services
		}
		writeJSON(w, http.StatusOK, c)
		return
	}
	writeErr(w, http.StatusNotFound, "clínica no encontrada")
}

func (s *Server) deleteClinic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clinics {
		if s.clinics[i].ID == id {
			s.clinics = append(s.clinics[:i], s.clinics[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "clínica eliminada"})
			return
		}
	}
	writeErr(w, http.StatusNotFound, "clínica no encontrada")
}

func (s *Server) verifyClinic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clinics {
		if s.clinics[i].ID == id {
			s.clinics[i].Verified = true
			writeJSON(w, http.StatusOK, s.clinics[i])
			return
		}
	}
	writeErr(w, http.StatusNotFound, "clínica no encontrada")
}

// ───────────────────────── shelters ─────────────────────────

func (s *Server) listShelters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	city := r.URL.Query().Get("city")
	var out []shelters.Shelter
	for _, sh := range s.shelters {
		if city != "" && sh.City != city {
			continue
		}
		out = append(out, sh)
	}
	writeList(w, r, "shelters", out)
}

func (s *Server) getShelter(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shelters {
		if sh.ID == id {
			writeJSON(w, http.StatusOK, sh)
			return
		}
	}
	writeErr(w, http.StatusNotFound, "refugio no encontrado")
}

// ───────────────────────── stores ─────────────────────────

func (s *Server) listStores(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	var out []petshops.Petshop
	for _, p := range s.stores {
		if v := q.Get("city"); v != "" && p.City != v {
			continue
		}
		if v := q.Get("plan"); v != "" && p.Plan != v {
			continue
		}
		out = append(out, p)
	}
	writeList(w, r, "stores", out)
}

func (s *Server) getStore(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.stores {
		if p.Slug == slug {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeErr(w, http.StatusNotFound, "tienda no encontrada")
}

func (s *Server) deleteStore(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.stores {
		if s.stores[i].Slug == slug {
			s.stores = append(s.stores[:i], s.stores[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "tienda dada de baja"})
			return
		}
	}
	writeErr(w, http.StatusNotFound, "tienda no encontrada")
}

// ───────────────────────── adoption listings ─────────────────────────

func (s *Server) listListings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	var out []adoptions.Listing
	for _, l := range s.listings {
		if v := q.Get("species"); v != "" && l.Species != v {
			continue
		}
		if v := q.Get("city"); v != "" && l.City != v {
			continue
		}
		if v := q.Get("status"); v != "" && l.Status != v {
			continue
		}
		out = append(out, l)
	}
	writeList(w, r, "adoption_listings", out)
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID == id {
			writeJSON(w, http.StatusOK, l)
			return
		}
	}
	writeErr(w, http.StatusNotFound, "listado no encontrado")
}

func (s *Server) listingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID == id {
			writeJSON(w, http.StatusOK, map[string]string{"status": l.Status})
			return
		}
	}
	writeErr(w, http.StatusNotFound, "listado no encontrado")
}

func (s *Server) adoptListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "id inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings {
		if s.listings[i].ID == id {
			s.listings[i].Status = adoptions.StatusAdopted
			writeJSON(w, http.StatusOK, s.listings[i])
			return
		}
	}
	writeErr(w, http.StatusNotFound, "listado no encontrado")
}

// ───────────────────────── donations ─────────────────────────

func (s *Server) listDonations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shelterID int64
	if v := r.URL.Query().Get("shelter_id"); v != "" {
		shelterID, _ = strconv.ParseInt(v, 10, 64)
	}
	var out []donations.Donation
	for _, d := range s.donations {
		if shelterID != 0 && d.ShelterID != shelterID {
			continue
		}
		out = append(out, d)
	}
	writeList(w, r, "donations", out)
}

func (s *Server) createDonation(w http.ResponseWriter, r *http.Request) {
	var in donations.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if in.ShelterID <= 0 || in.AmountCents <= 0 {
		writeErr(w, http.StatusUnprocessableEntity, "refugio y monto son requeridos")
		return
	}
	if in.Currency == "" {
		in.Currency = "COP"
	}

	d := donations.Donation{
		ID:          uuid.NewString(),
		ShelterID:   in.ShelterID,
		AmountCents: in.AmountCents,
		Currency:    in.Currency,
		Donor:       in.Donor,
		Message:     in.Message,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.donations = append([]donations.Donation{d}, s.donations...)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, d)
}

// ───────────────────────── transactions ─────────────────────────

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	var userID int64
	if v := q.Get("user_id"); v != "" {
		userID, _ = strconv.ParseInt(v, 10, 64)
	}
	var out []transactions.Transaction
	for _, tx := range s.transactions {
		if v := q.Get("status"); v != "" && tx.Status != v {
			continue
		}
		if userID != 0 && tx.UserID != userID {
			continue
		}
		if v := q.Get("from"); v != "" && tx.CreatedAt < v {
			continue
		}
		if v := q.Get("to"); v != "" && tx.CreatedAt > v+"T23:59:59Z" {
			continue
		}
		out = append(out, tx)
	}
	writeList(w, r, "transactions", out)
}
