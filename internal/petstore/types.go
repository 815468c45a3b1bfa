package petstore

import (
	"fmt"
	"strings"
)

// Pet mirrors the record exchanged with the pet backend.
type Pet struct {
	ID          *int64  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Species     string  `json:"species"`
	Breed       string  `json:"breed"`
	Gender      string  `json:"gender"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// HasID reports whether the backend has assigned an id to the record.
func (p Pet) HasID() bool {
	return p.ID != nil
}

// IDValue returns the assigned id, or zero when absent.
func (p Pet) IDValue() int64 {
	if p.ID == nil {
		return 0
	}
	return *p.ID
}

// WithID returns a copy of p carrying id.
func (p Pet) WithID(id int64) Pet {
	p.ID = &id
	return p
}

// WithoutID returns a copy of p with the id cleared, as sent on create.
func (p Pet) WithoutID() Pet {
	p.ID = nil
	return p
}

// Clone returns a deep copy so callers can edit it without touching the
// original's id pointer.
func (p Pet) Clone() Pet {
	if p.ID != nil {
		id := *p.ID
		p.ID = &id
	}
	return p
}

// PriceLabel formats the price the way cards display it.
func (p Pet) PriceLabel() string {
	return fmt.Sprintf("$%.2f", p.Price)
}

// Subtitle renders "species (breed)".
func (p Pet) Subtitle() string {
	return fmt.Sprintf("%s (%s)", strings.TrimSpace(p.Species), strings.TrimSpace(p.Breed))
}

// ID is a convenience for building id pointers in literals.
func ID(v int64) *int64 {
	return &v
}
