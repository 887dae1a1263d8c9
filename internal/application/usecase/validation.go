package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/vivienda-api/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// violations acumula mensajes de validación para reportarlos todos juntos.
type violations []string

func (v *violations) add(msg string) {
	*v = append(*v, msg)
}

func (v *violations) addAll(msgs []string) {
	*v = append(*v, msgs...)
}

// err devuelve nil si no hay mensajes.
func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return domain.NewValidationError(v...)
}

// clean recorta espacios y normaliza a NFC para contar caracteres de forma estable.
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

// checkLength valida longitud mínima y, si max > 0, máxima.
func checkLength(s string, min, max int, tooShort, tooLong string) []string {
	n := length(s)
	switch {
	case n < min:
		return []string{tooShort}
	case max > 0 && n > max:
		return []string{tooLong}
	}
	return nil
}

func oneOfMessage(prefix string, values []string) string {
	return prefix + strings.Join(values, ", ")
}
