package gallery

import (
	"testing"

	"github.com/five82/petgallery/internal/petstore"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"12.5", 12.5},
		{" 20 ", 20},
		{"-3", 0},
		{"NaN", 0},
		{"Inf", 0},
	}
	for _, tc := range cases {
		if got := ParsePrice(tc.in); got != tc.want {
			t.Fatalf("ParsePrice(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSetFieldAndFieldValueRoundTrip(t *testing.T) {
	var p petstore.Pet
	for _, f := range Fields {
		SetField(&p, f, "1.5")
	}
	for _, f := range Fields {
		if got := FieldValue(p, f); got != "1.5" {
			t.Fatalf("FieldValue(%s) = %q, want 1.5", f, got)
		}
	}

	if got := FieldValue(petstore.Pet{}, FieldPrice); got != "" {
		t.Fatalf("zero price renders %q, want empty", got)
	}
}

func TestFieldLabels(t *testing.T) {
	if FieldImage.Label() != "Image URL" || FieldName.Label() != "Name" {
		t.Fatalf("unexpected labels %q %q", FieldImage.Label(), FieldName.Label())
	}
	if !FieldName.Required() || !FieldSpecies.Required() || FieldBreed.Required() {
		t.Fatalf("required fields are name and species only")
	}
}
