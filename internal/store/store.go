// Package store provee el estado en memoria de una feature: la colección
// traída del backend, el item seleccionado y el flag de loading.
//
// El store no hace I/O: lo mutan exclusivamente las acciones del service de
// su feature. Las escrituras son last-write-wins, sin merge; una respuesta
// vieja que llega tarde puede pisar estado más fresco (limitación aceptada,
// no se agregan guards de generación de request).
package store

import "sync"

// Store mantiene el estado de una feature para records de tipo T con id K.
// idOf extrae el id de un record; se fija al construir el store.
type Store[T any, K comparable] struct {
	mu       sync.RWMutex
	items    []T
	selected *T
	loading  bool
	total    int
	idOf     func(T) K
}

// New crea un store vacío para records de tipo T.
func New[T any, K comparable](idOf func(T) K) *Store[T, K] {
	return &Store[T, K]{idOf: idOf}
}

// SetItems reemplaza la colección completa preservando el orden del caller.
// No valida ni dedup-ea: el backend es la fuente de verdad.
func (s *Store[T, K]) SetItems(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

// AddItem antepone un record (semántica newest-first). No toca los demás.
func (s *Store[T, K]) AddItem(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T{item}, s.items...)
}

// SetSelected reemplaza el item seleccionado. Independiente de la colección.
func (s *Store[T, K]) SetSelected(item *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = item
}

// ClearSelected limpia la selección sin tocar la colección.
func (s *Store[T, K]) ClearSelected() {
	s.SetSelected(nil)
}

// SetLoading setea el flag de loading (boolean, last-write-wins).
func (s *Store[T, K]) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// Loading retorna el flag de loading.
func (s *Store[T, K]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetTotal guarda el total reportado por el envelope de paginación.
func (s *Store[T, K]) SetTotal(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
}

// Total retorna el total reportado por el backend (0 si no hubo envelope).
func (s *Store[T, K]) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// ClearAll resetea colección y selección. NO resetea loading: ese flag es
// del request que esté corriendo, no de los datos.
func (s *Store[T, K]) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.selected = nil
	s.total = 0
}

// Items retorna una copia de la colección.
func (s *Store[T, K]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Selected retorna el item seleccionado o nil.
func (s *Store[T, K]) Selected() *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Len retorna el tamaño de la colección.
func (s *Store[T, K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// HasItems indica si hay al menos un record.
func (s *Store[T, K]) HasItems() bool {
	return s.Len() > 0
}

// FindByID busca un record por id en la colección (cache lookup store-first).
// Retorna una copia; el hit no toca loading ni selección.
func (s *Store[T, K]) FindByID(id K) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			item := s.items[i]
			return &item, true
		}
	}
	return nil, false
}

// Filter retorna los records que cumplen el predicado, en orden.
func (s *Store[T, K]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, it := range s.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Patch aplica fn sobre el record con ese id, in place. Retorna false si
// el id no está en la colección.
func (s *Store[T, K]) Patch(id K, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			fn(&s.items[i])
			if s.selected != nil && s.idOf(*s.selected) == id {
				fn(s.selected)
			}
			return true
		}
	}
	return false
}

// Remove saca el record con ese id de la colección. Limpia la selección
// si apuntaba a ese mismo id.
func (s *Store[T, K]) Remove(id K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if s.selected != nil && s.idOf(*s.selected) == id {
				s.selected = nil
			}
			return true
		}
	}
	return false
}
