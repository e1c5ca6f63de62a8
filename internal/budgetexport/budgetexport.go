// Package budgetexport renders a persisted budget estimate as a spreadsheet.
package budgetexport

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tripwise/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// ParseFormat maps a query value to a Format, defaulting to xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// bucketOrder fixes the row order of the known breakdown buckets; unknown ones follow alphabetically.
var bucketOrder = []string{"flights", "accommodation", "food", "transportation", "activities", "miscellaneous"}

// dailyColumns is the header row of the daily breakdown.
var dailyColumns = []string{"Day", "Date", "Accommodation", "Food", "Transportation", "Activities", "Total"}

// Decode reads the typed view of an estimate's record.
func Decode(est *domain.BudgetEstimate) (*domain.BudgetRecord, error) {
	var rec domain.BudgetRecord
	if err := json.Unmarshal(est.Record, &rec); err != nil {
		return nil, fmt.Errorf("decoding budget record: %w", err)
	}
	return &rec, nil
}

func orderedBuckets(breakdown map[string]float64) []string {
	known := make(map[string]bool, len(bucketOrder))
	var keys []string
	for _, k := range bucketOrder {
		known[k] = true
		if _, ok := breakdown[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range breakdown {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func dailyRow(d domain.DailyCost) []string {
	return []string{
		fmt.Sprintf("%d", d.Day),
		d.Date,
		formatMoney(d.Accommodation),
		formatMoney(d.Food),
		formatMoney(d.Transportation),
		formatMoney(d.Activities),
		formatMoney(d.Total),
	}
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a trip topic for use in Content-Disposition.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "budget"
	}
	return s
}

// BuildFilename returns {topic}_budget_{YYYY-MM-DD}.{ext}.
func BuildFilename(topic string, f Format, now time.Time) string {
	return fmt.Sprintf("%s_budget_%s.%s", SanitizeFilename(topic), now.Format("2006-01-02"), f)
}
