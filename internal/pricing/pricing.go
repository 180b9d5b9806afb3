package pricing

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/agrokalk/internal/catalog"
)

var (
	// ErrInvalidDistance is returned for a non-numeric or negative distance.
	ErrInvalidDistance = errors.New("distance must be a non-negative number")
	// ErrNoSelection is returned when calculating without any resolved machine.
	ErrNoSelection = errors.New("no machine or service selected")
)

// UserMessage returns the message shown to the user for a validation error.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDistance):
		return "Odległość musi być liczbą dodatnią."
	case errors.Is(err, ErrNoSelection):
		return "Proszę wybrać maszynę lub usługę."
	}
	return err.Error()
}

// ParseDistance parses the round-trip distance in km. Empty input means 0.
func ParseDistance(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, ErrInvalidDistance
	}
	return d, nil
}

// Breakdown is the computed price of a selection.
type Breakdown struct {
	// TransportApplies is false when only services are selected; Transport
	// is then zero and not meant to be shown.
	TransportApplies bool
	Transport        decimal.Decimal
	Additional       decimal.Decimal
	Total            decimal.Decimal
}

// Aggregate prices a selection. Transport is the governing machine's rate
// times distance; additional cost sums every checked line, looked up in
// machines. Lines whose machine is gone or whose price is nil are skipped.
func Aggregate(gov *catalog.Machine, distance float64, state ServiceSelection, machines []catalog.Machine) Breakdown {
	var b Breakdown

	if gov != nil {
		b.TransportApplies = true
		b.Transport = decimal.NewFromFloat(gov.Rate).Mul(decimal.NewFromFloat(distance))
	}

	byID := make(map[int64]catalog.Machine, len(machines))
	for _, m := range machines {
		byID[m.ID] = m
	}

	b.Additional = decimal.Zero
	for _, ref := range state.Checked() {
		m, ok := byID[ref.MachineID]
		if !ok {
			continue
		}
		price := m.Price(ref.Key)
		if price == nil {
			continue
		}
		b.Additional = b.Additional.Add(decimal.NewFromFloat(*price))
	}

	b.Total = b.Transport.Add(b.Additional)
	return b
}

// Quote validates the inputs and prices the selection. It refuses an empty
// selection and an invalid distance.
func Quote(sel Selection, rawDistance string, state ServiceSelection, machines []catalog.Machine) (Breakdown, error) {
	if sel.Empty() {
		return Breakdown{}, ErrNoSelection
	}
	distance, err := ParseDistance(rawDistance)
	if err != nil {
		return Breakdown{}, err
	}
	return Aggregate(sel.Governing, distance, state, machines), nil
}
