package pricing

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/agrokalk/internal/catalog"
)

func equalAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func arion400() catalog.Machine {
	return catalog.Machine{
		ID: 1, Type: "CIĄGNIK", Model: "Arion 400", Weight: 4800, Rate: 4.80,
		Services: &catalog.ClaasServices{
			Review0:       catalog.Price(1280),
			Commissioning: catalog.Price(256),
			Review100:     catalog.Price(3293.53),
		},
	}
}

func loaderService() catalog.Machine {
	return catalog.Machine{
		ID: 20, Type: catalog.ServiceType, Model: "Montaż ładowacza",
		Services: &catalog.ClaasServices{Commissioning: catalog.Price(7680)},
	}
}

func TestQuote_TractorWithMandatoryServices(t *testing.T) {
	machines := []catalog.Machine{arion400()}
	sel := Resolve([]Entry{{Type: "CIĄGNIK", MachineID: "1"}}, machines)

	b, err := Quote(sel, "200", Seed(sel), machines)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if !b.TransportApplies {
		t.Fatalf("expected transport to apply")
	}
	equalAmount(t, "transport", b.Transport, "960.00")
	equalAmount(t, "additional", b.Additional, "1536.00")
	equalAmount(t, "total", b.Total, "2496.00")
}

func TestQuote_ServiceOnly(t *testing.T) {
	machines := []catalog.Machine{loaderService()}
	sel := Resolve([]Entry{{Type: catalog.ServiceType, MachineID: "20"}}, machines)

	b, err := Quote(sel, "", Seed(sel), machines)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if b.TransportApplies {
		t.Fatalf("transport should not apply to a service-only selection")
	}
	equalAmount(t, "transport", b.Transport, "0")
	equalAmount(t, "additional", b.Additional, "7680.00")
	equalAmount(t, "total", b.Total, "7680.00")
}

func TestQuote_RejectsEmptySelection(t *testing.T) {
	machines := []catalog.Machine{arion400()}
	sel := Resolve([]Entry{{Type: "CIĄGNIK"}}, machines)

	if _, err := Quote(sel, "100", Seed(sel), machines); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestQuote_RejectsInvalidDistance(t *testing.T) {
	machines := []catalog.Machine{arion400()}
	sel := Resolve([]Entry{{MachineID: "1"}}, machines)

	for _, raw := range []string{"-1", "abc", "NaN"} {
		if _, err := Quote(sel, raw, Seed(sel), machines); !errors.Is(err, ErrInvalidDistance) {
			t.Fatalf("distance %q: expected ErrInvalidDistance, got %v", raw, err)
		}
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "", want: 0},
		{raw: "   ", want: 0},
		{raw: "0", want: 0},
		{raw: "200", want: 200},
		{raw: "12.5", want: 12.5},
		{raw: "-0.1", wantErr: true},
		{raw: "12,5", wantErr: true},
		{raw: "far", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDistance(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDistance) {
				t.Fatalf("ParseDistance(%q) error = %v, want ErrInvalidDistance", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDistance(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDistance(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestAggregate_IsIdempotent(t *testing.T) {
	machines := []catalog.Machine{arion400(), loaderService()}
	sel := Resolve([]Entry{{MachineID: "1"}, {MachineID: "20"}}, machines)
	state := Seed(sel)
	state.Toggle(machines[0], catalog.Review100)

	first := Aggregate(sel.Governing, 150, state, machines)
	second := Aggregate(sel.Governing, 150, state, machines)

	if !first.Total.Equal(second.Total) || !first.Transport.Equal(second.Transport) || !first.Additional.Equal(second.Additional) {
		t.Fatalf("aggregate differs between calls: %+v vs %+v", first, second)
	}
	// 4.8*150 + 1280 + 256 + 3293.53 + 7680
	equalAmount(t, "total", first.Total, "13229.53")
}

func TestAggregate_SkipsMissingMachinesAndNullPrices(t *testing.T) {
	machines := []catalog.Machine{arion400()}
	state := ServiceSelection{
		{MachineID: 1, Key: catalog.Review0}:    true,
		{MachineID: 1, Key: catalog.Assembly}:   true, // nil price
		{MachineID: 1, Key: catalog.Review250}:  true, // not a CLAAS field
		{MachineID: 99, Key: catalog.Review0}:   true, // gone from the catalog
		{MachineID: 1, Key: catalog.Review1000}: false,
	}

	b := Aggregate(nil, 500, state, machines)

	if b.TransportApplies {
		t.Fatalf("transport should not apply without a governing machine")
	}
	equalAmount(t, "additional", b.Additional, "1280")
	equalAmount(t, "total", b.Total, "1280")
}

func TestFormatPLN(t *testing.T) {
	got := FormatPLN(decimal.RequireFromString("960"))
	if !strings.Contains(got, "960,00") || !strings.HasSuffix(got, "zł") {
		t.Fatalf("FormatPLN(960) = %q, want 960,00 zł", got)
	}
	if got := FormatRate(4.8); got != "4,80" {
		t.Fatalf("FormatRate(4.8) = %q, want 4,80", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(ErrInvalidDistance); got != "Odległość musi być liczbą dodatnią." {
		t.Fatalf("UserMessage(ErrInvalidDistance) = %q", got)
	}
	if got := UserMessage(ErrNoSelection); got != "Proszę wybrać maszynę lub usługę." {
		t.Fatalf("UserMessage(ErrNoSelection) = %q", got)
	}
}
