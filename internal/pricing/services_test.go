package pricing

import (
	"testing"

	"github.com/Simplici0/agrokalk/internal/catalog"
)

func TestIsMandatory(t *testing.T) {
	tests := []struct {
		producer  catalog.Producer
		key       catalog.ServiceKey
		isService bool
		want      bool
	}{
		{catalog.ProducerClaas, catalog.Review0, false, true},
		{catalog.ProducerClaas, catalog.Assembly, false, true},
		{catalog.ProducerClaas, catalog.Commissioning, false, true},
		{catalog.ProducerClaas, catalog.Review100, false, false},
		{catalog.ProducerClaas, catalog.Review500, false, false},
		{catalog.ProducerClaas, catalog.Review1000, false, false},
		{catalog.ProducerClaas, catalog.Commissioning, true, true},
		{catalog.ProducerClaas, catalog.Review0, true, false},
		{catalog.ProducerClaas, catalog.Assembly, true, false},
		{catalog.ProducerBobcat, catalog.Review0, false, true},
		{catalog.ProducerBobcat, catalog.Assembly, false, false},
		{catalog.ProducerBobcat, catalog.Review50, false, false},
		{catalog.ProducerBobcat, catalog.Review100, false, false},
		{catalog.ProducerBobcat, catalog.Review250, false, false},
		{catalog.ProducerBobcat, catalog.Review500, false, false},
		{catalog.ProducerBobcat, catalog.Review1000, false, false},
		{catalog.ProducerBobcat, catalog.Review0, true, false},
		{catalog.Producer("DEERE"), catalog.Review0, false, false},
	}

	for _, tt := range tests {
		name := string(tt.producer) + "/" + string(tt.key)
		if tt.isService {
			name += "/service"
		}
		t.Run(name, func(t *testing.T) {
			if got := IsMandatory(tt.producer, tt.key, tt.isService); got != tt.want {
				t.Fatalf("IsMandatory = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeed_ClaasMachineChecksReviewAssemblyCommissioning(t *testing.T) {
	m := catalog.Machine{ID: 7, Type: "KOMBAJN", Model: "Trion", Rate: 8, Services: &catalog.ClaasServices{
		Review0:       catalog.Price(4100),
		Assembly:      catalog.Price(900),
		Commissioning: catalog.Price(1280),
		Review100:     catalog.Price(2917.83),
		Review500:     catalog.Price(7373.61),
	}}

	state := Seed(Resolve([]Entry{{MachineID: "7"}}, []catalog.Machine{m}))

	want := map[catalog.ServiceKey]bool{
		catalog.Review0:       true,
		catalog.Assembly:      true,
		catalog.Commissioning: true,
		catalog.Review100:     false,
		catalog.Review500:     false,
	}
	assertSeed(t, state, 7, want)
}

func TestSeed_BobcatMachineChecksOnlyReview0(t *testing.T) {
	// E27: review0, review50, review250, review500 and review1000 are priced.
	var e27 catalog.Machine
	for _, m := range catalog.Defaults() {
		if m.ID == 103 {
			e27 = m
		}
	}

	state := Seed(Resolve([]Entry{{MachineID: "103"}}, []catalog.Machine{e27}))

	want := map[catalog.ServiceKey]bool{
		catalog.Review0:    true,
		catalog.Review50:   false,
		catalog.Review250:  false,
		catalog.Review500:  false,
		catalog.Review1000: false,
	}
	assertSeed(t, state, 103, want)

	checked := state.Checked()
	if len(checked) != 1 || checked[0] != (ServiceRef{MachineID: 103, Key: catalog.Review0}) {
		t.Fatalf("checked = %v, want only 103-review0", checked)
	}
}

func assertSeed(t *testing.T, state ServiceSelection, id int64, want map[catalog.ServiceKey]bool) {
	t.Helper()
	if len(state) != len(want) {
		t.Fatalf("seeded %d lines, want %d: %v", len(state), len(want), state)
	}
	for key, on := range want {
		got, ok := state[ServiceRef{MachineID: id, Key: key}]
		if !ok {
			t.Fatalf("line %s missing from seed", key)
		}
		if got != on {
			t.Fatalf("line %s checked=%v, want %v", key, got, on)
		}
	}
}
