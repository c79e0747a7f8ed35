// Package export renders the activity collection as CSV.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"activities/internal/models"
)

// Filename is the name offered to clients downloading the export.
const Filename = "atividades.csv"

// ContentType of the export.
const ContentType = "text/csv; charset=utf-8"

// Header lists the exported columns in order.
var Header = []string{"Nome", "Responsável", "Data", "Descrição", "Participantes"}

// WriteCSV writes one header row and one row per activity. Every field is quoted and
// embedded quotes are doubled; participants are joined with ";". Dates are printed as
// the calendar day in loc, which must be the zone the dates were entered in. A nil
// loc means UTC.
func WriteCSV(w io.Writer, activities []models.Activity, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	bw := bufio.NewWriter(w)

	if err := writeRow(bw, Header); err != nil {
		return err
	}
	for _, a := range activities {
		row := []string{
			a.Nome,
			a.Responsavel,
			a.Data.In(loc).Format("2006-01-02"),
			a.Descricao,
			strings.Join(a.Participantes, ";"),
		}
		if err := writeRow(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
