package ingest

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rmartinez-edu/enrollcast/internal/models"
)

// Diccionario de abreviaturas frecuentes en los archivos de origen.
// La clave se compara palabra por palabra, sin distinguir mayúsculas.
var programSynonyms = map[string]string{
	"admon":  "Administración",
	"admón":  "Administración",
	"adm":    "Administración",
	"ing":    "Ingeniería",
	"lic":    "Licenciatura",
	"mkt":    "Marketing",
	"psico":  "Psicología",
	"eco":    "Economía",
	"com":    "Comunicación",
	"empr":   "Empresas",
	"maestr": "Maestría",
}

// NoLower conserva siglas como MBA o TOEFL al capitalizar.
var titleCaser = cases.Title(language.Spanish, cases.NoLower)

// NormalizeProgram lleva el nombre de programa a su forma canónica:
// recorta y colapsa espacios, capitaliza cada palabra y expande
// abreviaturas de palabra completa. El centinela de marca completa pasa
// sin tocar. Devuelve "" cuando la entrada no contiene nada útil; la
// fila correspondiente se descarta. Es idempotente: las expansiones
// producen palabras que ya son puntos fijos de la función.
func NormalizeProgram(raw string) string {
	if raw == models.AllPrograms {
		return raw
	}
	words := strings.Fields(raw)
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		if full, ok := programSynonyms[strings.ToLower(strings.TrimSuffix(w, "."))]; ok {
			words[i] = full
			continue
		}
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}
