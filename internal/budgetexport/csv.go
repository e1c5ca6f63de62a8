package budgetexport

import (
	"encoding/csv"
	"io"

	"tripwise/internal/domain"
)

// BOM makes Excel on Windows read the CSV as UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the daily breakdown followed by a totals row.
func WriteCSV(w io.Writer, rec *domain.BudgetRecord) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(dailyColumns); err != nil {
		return err
	}
	for _, d := range rec.DailyBreakdown {
		if err := cw.Write(dailyRow(d)); err != nil {
			return err
		}
	}
	total := make([]string, len(dailyColumns))
	total[0] = "Total"
	total[len(total)-1] = rec.DailyTotal().StringFixed(2)
	if err := cw.Write(total); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
