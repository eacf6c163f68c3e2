package comment

import (
	"fmt"
	"time"
)

// UnknownDate is shown in place of a missing or unparsable timestamp.
const UnknownDate = "Fecha desconocida"

// FormatDate renders t as dd/mm/yyyy, hh:mm in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return UnknownDate
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("02/01/2006, 15:04")
}

// CountLabel returns the list heading for n comments.
func CountLabel(n int) string {
	switch {
	case n <= 0:
		return "No hay comentarios aún"
	case n == 1:
		return "1 comentario"
	default:
		return fmt.Sprintf("%d comentarios", n)
	}
}
