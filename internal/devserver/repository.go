package devserver

import (
	"strings"
	"sync"

	"github.com/five82/petgallery/internal/petstore"
)

// Repository is an in-memory pet table. Ids are assigned in increasing order
// and never reused.
type Repository struct {
	mu     sync.RWMutex
	order  []int64
	pets   map[int64]petstore.Pet
	nextID int64
}

// NewRepository returns a repository holding seed, with fresh ids assigned.
func NewRepository(seed ...petstore.Pet) *Repository {
	r := &Repository{pets: make(map[int64]petstore.Pet)}
	for _, p := range seed {
		r.Create(p)
	}
	return r
}

// List returns every pet in insertion order.
func (r *Repository) List() []petstore.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]petstore.Pet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.pets[id].Clone())
	}
	return out
}

// Get returns the pet stored under id.
func (r *Repository) Get(id int64) (petstore.Pet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pets[id]
	return p.Clone(), ok
}

// Create stores p under the next id, ignoring any id p carries.
func (r *Repository) Create(p petstore.Pet) petstore.Pet {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := normalize(p).WithID(r.nextID)
	r.pets[r.nextID] = stored
	r.order = append(r.order, r.nextID)
	return stored.Clone()
}

// Update overwrites every field of the pet stored under id.
func (r *Repository) Update(id int64, p petstore.Pet) (petstore.Pet, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[id]; !ok {
		return petstore.Pet{}, false
	}
	stored := normalize(p).WithID(id)
	r.pets[id] = stored
	return stored.Clone(), true
}

// Delete removes the pet stored under id.
func (r *Repository) Delete(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[id]; !ok {
		return false
	}
	delete(r.pets, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len reports how many pets are stored.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func normalize(p petstore.Pet) petstore.Pet {
	p.Name = strings.TrimSpace(p.Name)
	p.Species = strings.TrimSpace(p.Species)
	if p.Price < 0 {
		p.Price = 0
	}
	return p
}
