package mockapi

import (
	"strings"

	"github.com/dropDatabas3/patitas/internal/features/adoptions"
	"github.com/dropDatabas3/patitas/internal/features/clinics"
	"github.com/dropDatabas3/patitas/internal/features/donations"
	"github.com/dropDatabas3/patitas/internal/features/petshops"
	"github.com/dropDatabas3/patitas/internal/features/shelters"
	"github.com/dropDatabas3/patitas/internal/features/transactions"
	"github.com/dropDatabas3/patitas/internal/features/users"
)

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func containsStr(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

// seed carga la data de desarrollo. IDs fijos para que los tests e2e y los
// ejemplos del CLI sean reproducibles.
func (s *Server) seed() {
	s.users = []users.User{
		{ID: 1, Name: "Valentina Ríos", Email: "valen@patitas.dev", Role: "admin", Plan: "pro", Active: true, CreatedAt: "2025-11-02T10:00:00Z"},
		{ID: 2, Name: "Mateo Guzmán", Email: "mateo@patitas.dev", Role: "user", Plan: "free", Active: true, CreatedAt: "2026-01-15T08:30:00Z"},
		{ID: 3, Name: "Sara Holguín", Email: "sara@patitas.dev", Role: "user", Plan: "", Active: false, CreatedAt: "2026-02-20T14:45:00Z"},
		{ID: 4, Name: "Julián Pardo", Email: "julian@patitas.dev", Role: "user", Plan: "pro", Active: true, CreatedAt: "2026-03-08T09:12:00Z"},
	}

	s.clinics = []clinics.Clinic{
		{ID: 1, Name: "Veterinaria San Roque", City: "Bogotá", Address: "Cra 15 #82-30", Phone: "+57 601 555 0101", Email: "contacto@sanroque.co", Services: []string{"consulta", "cirugía", "vacunación"}, Verified: true, Featured: true},
		{ID: 2, Name: "Clínica Animalia", City: "Medellín", Address: "Cl 10 #43-12", Phone: "+57 604 555 0202", Services: []string{"consulta", "urgencias"}, Verified: true},
		{ID: 3, Name: "PetCare Norte", City: "Bogotá", Phone: "+57 601 555 0303", Services: []string{"consulta"}, Verified: false},
	}

	s.shelters = []shelters.Shelter{
		{ID: 1, Name: "Huellas de Amor", City: "Bogotá", Phone: "+57 601 555 0404", Capacity: 40, Occupied: 33, DonationURL: "https://donar.huellas.co"},
		{ID: 2, Name: "Patas Callejeras", City: "Cali", Capacity: 25, Occupied: 25},
		{ID: 3, Name: "Refugio La Manada", City: "Medellín", Capacity: 60, Occupied: 41},
	}

	s.stores = []petshops.Petshop{
		{Slug: "mundo-animal", Name: "Mundo Animal", City: "Bogotá", Plan: "premium", Website: "https://mundoanimal.co"},
		{Slug: "croquetas-y-mas", Name: "Croquetas y Más", City: "Medellín", Plan: "free"},
		{Slug: "pet-planet", Name: "Pet Planet", City: "Bogotá", Plan: "pro"},
	}

	s.listings = []adoptions.Listing{
		{ID: 1, PetName: "Rocky", Species: "dog", Breed: "criollo", AgeMonths: 18, City: "Bogotá", Status: adoptions.StatusAvailable, ShelterID: 1},
		{ID: 2, PetName: "Misu", Species: "cat", AgeMonths: 7, City: "Cali", Status: adoptions.StatusPending, ShelterID: 2},
		{ID: 3, PetName: "Luna", Species: "dog", Breed: "labrador", AgeMonths: 36, City: "Medellín", Status: adoptions.StatusAdopted, ShelterID: 3},
	}

	s.donations = []donations.Donation{
		{ID: "0f8fad5b-d9cb-469f-a165-70867728950e", ShelterID: 1, AmountCents: 5000000, Currency: "COP", Donor: "Anónimo", CreatedAt: "2026-07-01T12:00:00Z"},
		{ID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", ShelterID: 2, AmountCents: 1500000, Currency: "COP", Donor: "Mateo Guzmán", Message: "Para Misu", CreatedAt: "2026-07-15T16:20:00Z"},
	}

	s.transactions = []transactions.Transaction{
		{ID: "9b2d7a10-31c4-4c2e-b61e-0d6f4a1c2b3d", UserID: 1, AmountCents: 2990000, Currency: "COP", Status: "completed", Concept: "plan pro anual", CreatedAt: "2026-01-10T09:00:00Z"},
		{ID: "4e1f3c22-8a5b-4d7e-9c0a-1b2c3d4e5f6a", UserID: 4, AmountCents: 299000, Currency: "COP", Status: "completed", Concept: "plan pro mensual", CreatedAt: "2026-06-01T10:30:00Z"},
		{ID: "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d", UserID: 2, AmountCents: 299000, Currency: "COP", Status: "failed", Concept: "plan pro mensual", CreatedAt: "2026-06-02T11:00:00Z"},
	}
}
