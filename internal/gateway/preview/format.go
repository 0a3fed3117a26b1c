package preview

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// absentValue is what display widgets render when no value resolved at all.
const absentValue = "--"

// printer renders locale-aware numbers. The fleet UI is pt-BR.
var printer = message.NewPrinter(language.BrazilianPortuguese)

// formatValue renders a resolved value per the item's display_format and
// appends the unit when it is not already part of the formatted string.
func formatValue(v any, format, unit string) string {
	if v == nil {
		return absentValue
	}

	var formatted string

	if f, ok := asFloat(v); ok {
		switch format {
		case "percentage":
			formatted = plainNumber(f) + "%"
		case "decimal":
			formatted = strconv.FormatFloat(f, 'f', 1, 64)
		case "integer":
			formatted = strconv.Itoa(int(math.Round(f)))
		case "currency":
			formatted = printer.Sprint(currency.Symbol(currency.BRL.Amount(f)))
		default:
			formatted = printer.Sprint(number.Decimal(f))
		}
	} else {
		// Non-numeric values pass through untouched regardless of format.
		formatted = fmt.Sprintf("%v", v)
	}

	if unit != "" && !strings.Contains(formatted, unit) {
		formatted += " " + unit
	}

	return formatted
}

// plainNumber renders a float without separators, dropping a trailing ".0".
func plainNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
