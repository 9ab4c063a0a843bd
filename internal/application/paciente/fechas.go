package paciente

import (
	"time"

	"github.com/clinident/clinident-api/internal/domain"
)

// Zona horaria de referencia del consultorio. Todas las fechas de nacimiento
// se normalizan a medianoche en esta zona para evitar corrimientos de un día.
var zonaReferencia = cargarZona()

func cargarZona() *time.Location {
	loc, err := time.LoadLocation("America/Caracas")
	if err != nil {
		return time.UTC
	}
	return loc
}

// NormalizarFechaNacimiento parsea YYYY-MM-DD, descarta la componente horaria
// y rechaza fechas futuras.
func NormalizarFechaNacimiento(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, zonaReferencia)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	fecha := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, zonaReferencia)
	hoy := time.Now().In(zonaReferencia)
	hoy = time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, zonaReferencia)
	if fecha.After(hoy) {
		return time.Time{}, domain.ErrInvalidInput
	}
	return fecha, nil
}

// CalcularEdad devuelve los años cumplidos a la fecha `en`.
func CalcularEdad(nacimiento, en time.Time) int {
	edad := en.Year() - nacimiento.Year()
	aniversario := time.Date(en.Year(), nacimiento.Month(), nacimiento.Day(), 0, 0, 0, 0, en.Location())
	if en.Before(aniversario) {
		edad--
	}
	if edad < 0 {
		return 0
	}
	return edad
}
