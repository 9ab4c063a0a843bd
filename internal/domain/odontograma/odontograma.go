// Package odontograma contiene la lógica pura del odontograma: construcción,
// fusión de ediciones sobre el estado base y saneamiento de estados.
package odontograma

import (
	"sort"

	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
)

// Completo devuelve un odontograma de 32 piezas, todas en estado Sano.
func Completo() []entity.Diente {
	chart := make([]entity.Diente, entity.TotalDientes)
	for i := range chart {
		chart[i] = entity.Diente{Numero: i + 1, Estado: entity.EstadoSano}
	}
	return chart
}

// Merge fusiona ediciones sobre un odontograma base. El base se interpreta como
// mapa diente→estado (las piezas ausentes valen Sano); cada edición sobreescribe
// la pieza correspondiente. El resultado contiene la unión de piezas de ambas
// entradas, ordenada por número y sin duplicados. Dentro de edits gana la última
// entrada para una misma pieza (last-write-wins en orden de entrada).
// Números de diente fuera de 1..32 son entrada inválida.
func Merge(base, edits []entity.Diente) ([]entity.Diente, error) {
	estados := make(map[int]string, entity.TotalDientes)
	for _, d := range base {
		if d.Numero < 1 || d.Numero > entity.TotalDientes {
			return nil, domain.ErrInvalidInput
		}
		estados[d.Numero] = d.Estado
	}
	for _, d := range edits {
		if d.Numero < 1 || d.Numero > entity.TotalDientes {
			return nil, domain.ErrInvalidInput
		}
		estados[d.Numero] = d.Estado
	}

	numeros := make([]int, 0, len(estados))
	for n := range estados {
		numeros = append(numeros, n)
	}
	sort.Ints(numeros)

	out := make([]entity.Diente, 0, len(numeros))
	for _, n := range numeros {
		out = append(out, entity.Diente{Numero: n, Estado: estados[n]})
	}
	return out, nil
}

// Sanitize coerce a Sano todo estado fuera del vocabulario clínico. Política
// deliberada de escritura tolerante: un valor corrupto no rechaza la petición
// completa. Idempotente.
func Sanitize(chart []entity.Diente) []entity.Diente {
	out := make([]entity.Diente, len(chart))
	for i, d := range chart {
		if !entity.EstadoValido(d.Estado) {
			d.Estado = entity.EstadoSano
		}
		out[i] = d
	}
	return out
}

// Normalizar completa un odontograma posiblemente disperso a las 32 piezas,
// rellenando las ausentes con Sano. Equivale a Merge(Completo(), chart).
func Normalizar(chart []entity.Diente) ([]entity.Diente, error) {
	return Merge(Completo(), chart)
}
