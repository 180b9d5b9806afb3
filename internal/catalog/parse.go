package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// leadingFloat matches the numeric prefix a lenient float parse accepts,
// e.g. "4.80 zł/km" -> "4.80".
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber parses a mandatory numeric field (weight, rate). Commas are
// read as decimal points. Anything unparsable yields 0, never an error, and
// negative values are clamped to 0.
func ParseNumber(value any) float64 {
	if value == nil {
		return 0
	}
	if f, ok := asFloat(value); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return max(f, 0)
	}

	s := strings.Replace(fmt.Sprint(value), ",", ".", 1)
	f, ok := parseLeadingFloat(s)
	if !ok || math.IsInf(f, 0) {
		return 0
	}
	return max(f, 0)
}

// ParseCurrency parses an optional service price. Empty input and "-" mean
// "not applicable" and yield nil, as does any unparsable input; nil and 0
// are different things (not applicable vs. free).
func ParseCurrency(value any) *float64 {
	if value == nil {
		return nil
	}
	if f, ok := asFloat(value); ok {
		if math.IsNaN(f) {
			return nil
		}
		return &f
	}

	s, ok := value.(string)
	if !ok {
		return nil
	}
	s = strings.ReplaceAll(s, "zł", "")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.Replace(s, ",", ".", 1)
	if s == "" || s == "-" {
		return nil
	}

	f, ok := parseLeadingFloat(s)
	if !ok {
		return nil
	}
	return &f
}

func parseLeadingFloat(s string) (float64, bool) {
	match := leadingFloat.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// Editable common fields.
const (
	FieldType   = "type"
	FieldModel  = "model"
	FieldWeight = "weight"
	FieldRate   = "rate"
)

// ApplyEdit applies a single manual field edit. Text fields are trimmed,
// numeric fields go through ParseNumber and service prices through
// ParseCurrency. A service key the machine's variant does not have is
// rejected with ErrUnknownField.
func ApplyEdit(m *Machine, field string, raw any) error {
	switch field {
	case FieldType:
		m.Type = strings.TrimSpace(fmt.Sprint(nilToEmpty(raw)))
	case FieldModel:
		m.Model = strings.TrimSpace(fmt.Sprint(nilToEmpty(raw)))
	case FieldWeight:
		m.Weight = ParseNumber(raw)
	case FieldRate:
		m.Rate = ParseNumber(raw)
	default:
		if m.Services == nil || !m.Services.SetPrice(ServiceKey(field), ParseCurrency(raw)) {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}

func nilToEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
