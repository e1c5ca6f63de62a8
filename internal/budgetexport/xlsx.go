package budgetexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"tripwise/internal/domain"
)

const (
	summarySheet = "Summary"
	dailySheet   = "Daily"
)

// WriteXLSX writes a workbook with a Summary sheet and a Daily sheet.
func WriteXLSX(w io.Writer, est *domain.BudgetEstimate, rec *domain.BudgetRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return fmt.Errorf("creating daily sheet: %w", err)
	}

	if err := writeSummary(f, est, rec); err != nil {
		return err
	}
	if err := writeDaily(f, rec); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, est *domain.BudgetEstimate, rec *domain.BudgetRecord) error {
	rows := [][]interface{}{
		{"Template", est.TemplateID},
		{"Estimated at", est.EstimatedAt.UTC().Format("2006-01-02 15:04 MST")},
		{"Model", est.Model},
		{"Currency", rec.Currency},
		{"Budget level", rec.BudgetLevel},
		{"Total per person", rec.TotalBudgetPerPerson},
		{},
		{"Category", "Amount"},
	}
	for _, k := range orderedBuckets(rec.Breakdown) {
		rows = append(rows, []interface{}{titleCase(k), rec.Breakdown[k]})
	}
	rows = append(rows, []interface{}{"Breakdown total", rec.BreakdownTotal().InexactFloat64()})

	if len(rec.BudgetTips) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"Tips"})
		for _, tip := range rec.BudgetTips {
			rows = append(rows, []interface{}{"", tip})
		}
	}
	if rec.Disclaimer != "" {
		rows = append(rows, []interface{}{}, []interface{}{"Disclaimer", rec.Disclaimer})
	}
	return setRows(f, summarySheet, rows)
}

func writeDaily(f *excelize.File, rec *domain.BudgetRecord) error {
	header := make([]interface{}, len(dailyColumns))
	for i, c := range dailyColumns {
		header[i] = c
	}
	rows := [][]interface{}{header}
	for _, d := range rec.DailyBreakdown {
		rows = append(rows, []interface{}{d.Day, d.Date, d.Accommodation, d.Food, d.Transportation, d.Activities, d.Total})
	}
	rows = append(rows, []interface{}{"Total", "", "", "", "", "", rec.DailyTotal().InexactFloat64()})
	return setRows(f, dailySheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
