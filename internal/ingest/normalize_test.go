package ingest

import (
	"testing"

	"github.com/rmartinez-edu/enrollcast/internal/models"
)

func TestNormalizeProgram(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"derecho", "Derecho"},
		{"  derecho  ", "Derecho"},
		{"ingeniería   civil", "Ingeniería Civil"},
		{"admon de empresas", "Administración De Empresas"},
		{"Admón. de empresas", "Administración De Empresas"},
		{"mkt digital", "Marketing Digital"},
		{"MBA ejecutivo", "MBA Ejecutivo"},
		{"", ""},
		{"   ", ""},
		{models.AllPrograms, models.AllPrograms},
	}
	for _, c := range cases {
		if got := NormalizeProgram(c.in); got != c.want {
			t.Errorf("NormalizeProgram(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// normalizar dos veces debe dar lo mismo que una
func TestNormalizeProgramIdempotent(t *testing.T) {
	inputs := []string{
		"derecho", "admon", "ing civil", "MBA Ejecutivo",
		"psico organizacional", models.AllPrograms, "Economía",
	}
	for _, in := range inputs {
		once := NormalizeProgram(in)
		twice := NormalizeProgram(once)
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}
