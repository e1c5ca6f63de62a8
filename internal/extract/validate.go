package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ReceiptRequiredFields must be truthy in every receipt record.
var ReceiptRequiredFields = []string{"vendor", "amount", "currency"}

// BudgetRequiredFields is intentionally empty: a budget record only has to parse.
var BudgetRequiredFields []string

// Receipt categories accepted from the model.
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryAccommodation = "accommodation"
	CategoryActivities    = "activities"
	CategoryShopping      = "shopping"
	CategoryOther         = "other"
)

// ReceiptCategories is the fixed category enumeration, in prompt order.
var ReceiptCategories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryAccommodation,
	CategoryActivities,
	CategoryShopping,
	CategoryOther,
}

// ValidCategory reports whether c is one of ReceiptCategories.
func ValidCategory(c string) bool {
	for _, k := range ReceiptCategories {
		if c == k {
			return true
		}
	}
	return false
}

// ValidationError lists required fields that were absent or falsy.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ValidateRequired fails when any field is missing or falsy. Falsy follows
// loose truthiness: nil, false, 0 and "" all fail, so a genuine zero amount
// is rejected too. Objects and arrays are truthy even when empty.
func ValidateRequired(rec Record, fields []string) error {
	var missing []string
	for _, f := range fields {
		v, ok := rec[f]
		if !ok || !truthy(v) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return t != ""
	default:
		return true
	}
}
