package dto

import (
	"time"

	"github.com/jhoicas/petmaison-api/internal/domain"
)

// DateLayout formato de fechas en query params.
const DateLayout = "2006-01-02"

// ParseDateRange convierte from/to (YYYY-MM-DD, ambos inclusivos y opcionales) en un rango [start, end)
// en la zona horaria dada. Un extremo vacío queda en nil.
func ParseDateRange(from, to string, loc *time.Location) (start, end *time.Time, err error) {
	if loc == nil {
		loc = time.Local
	}
	if from != "" {
		t, perr := time.ParseInLocation(DateLayout, from, loc)
		if perr != nil {
			return nil, nil, domain.Invalid("from", "formato esperado YYYY-MM-DD")
		}
		start = &t
	}
	if to != "" {
		t, perr := time.ParseInLocation(DateLayout, to, loc)
		if perr != nil {
			return nil, nil, domain.Invalid("to", "formato esperado YYYY-MM-DD")
		}
		next := t.AddDate(0, 0, 1)
		end = &next
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, domain.Invalid("to", "debe ser igual o posterior a from")
	}
	return start, end, nil
}
