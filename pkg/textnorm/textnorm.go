// Package textnorm normaliza textos en español para búsquedas: sin tildes y sin mayúsculas,
// de modo que "logistica" encuentre "Logística".
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold quita diacríticos, pliega mayúsculas y recorta espacios.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(cases.Fold().String(out))
}

// Contains informa si needle aparece en haystack ignorando tildes y mayúsculas.
// Un needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}

// Upper devuelve el texto en mayúsculas sin espacios en los extremos (tokens de rol, estados).
func Upper(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}
