package gallery

import (
	"math"
	"strconv"
	"strings"

	"github.com/five82/petgallery/internal/petstore"
)

// Field names an editable Pet attribute.
type Field string

const (
	FieldName        Field = "name"
	FieldSpecies     Field = "species"
	FieldBreed       Field = "breed"
	FieldGender      Field = "gender"
	FieldImage       Field = "image"
	FieldPrice       Field = "price"
	FieldDescription Field = "description"
)

// Fields lists the form fields in display order.
var Fields = []Field{
	FieldName,
	FieldSpecies,
	FieldBreed,
	FieldGender,
	FieldImage,
	FieldPrice,
	FieldDescription,
}

// Label returns the form label for f.
func (f Field) Label() string {
	switch f {
	case FieldImage:
		return "Image URL"
	default:
		s := string(f)
		if s == "" {
			return ""
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// Required reports whether f gates submission of a new pet.
func (f Field) Required() bool {
	return f == FieldName || f == FieldSpecies
}

// ParsePrice converts form text to a price: empty or unparsable input is 0
// and negative values clamp to 0.
func ParsePrice(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// SetField writes value into the matching attribute of p.
func SetField(p *petstore.Pet, f Field, value string) {
	switch f {
	case FieldName:
		p.Name = value
	case FieldSpecies:
		p.Species = value
	case FieldBreed:
		p.Breed = value
	case FieldGender:
		p.Gender = value
	case FieldImage:
		p.Image = strings.TrimSpace(value)
	case FieldPrice:
		p.Price = ParsePrice(value)
	case FieldDescription:
		p.Description = value
	}
}

// FieldValue renders the attribute of p for a text input. A zero price
// renders empty so the placeholder shows through.
func FieldValue(p petstore.Pet, f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldSpecies:
		return p.Species
	case FieldBreed:
		return p.Breed
	case FieldGender:
		return p.Gender
	case FieldImage:
		return p.Image
	case FieldPrice:
		if p.Price == 0 {
			return ""
		}
		return strconv.FormatFloat(p.Price, 'f', -1, 64)
	case FieldDescription:
		return p.Description
	}
	return ""
}
