package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Simplici0/agrokalk/internal/catalog"
)

// IsMandatory reports whether an applicable service line is always included
// and locked against deselection.
//
//	CLAAS machine:  review0, assembly, commissioning
//	BOBCAT machine: review0
//	CLAAS service:  commissioning (the service's own price)
func IsMandatory(producer catalog.Producer, key catalog.ServiceKey, isService bool) bool {
	switch producer {
	case catalog.ProducerClaas:
		if isService {
			return key == catalog.Commissioning
		}
		return key == catalog.Review0 || key == catalog.Assembly || key == catalog.Commissioning
	case catalog.ProducerBobcat:
		return !isService && key == catalog.Review0
	}
	return false
}

// ServiceRef addresses one service line of one machine.
type ServiceRef struct {
	MachineID int64
	Key       catalog.ServiceKey
}

// String encodes the ref as "<machineId>-<key>".
func (r ServiceRef) String() string {
	return strconv.FormatInt(r.MachineID, 10) + "-" + string(r.Key)
}

// ParseServiceRef decodes the "<machineId>-<key>" form.
func ParseServiceRef(raw string) (ServiceRef, error) {
	idPart, key, ok := strings.Cut(raw, "-")
	if !ok || key == "" {
		return ServiceRef{}, fmt.Errorf("invalid service ref %q", raw)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return ServiceRef{}, fmt.Errorf("invalid service ref %q: %w", raw, err)
	}
	return ServiceRef{MachineID: id, Key: catalog.ServiceKey(key)}, nil
}

// ServiceSelection tracks which applicable service lines are included.
type ServiceSelection map[ServiceRef]bool

// Seed builds the initial checkbox state for a selection: every applicable
// line is present, checked iff mandatory.
func Seed(sel Selection) ServiceSelection {
	state := make(ServiceSelection)
	for _, m := range sel.Machines {
		for _, o := range Offers(m) {
			state[ServiceRef{MachineID: m.ID, Key: o.Key}] = o.Mandatory
		}
	}
	return state
}

// Toggle flips an optional line of m. Mandatory and non-applicable lines
// are left alone; the return value reports whether anything changed.
func (s ServiceSelection) Toggle(m catalog.Machine, key catalog.ServiceKey) bool {
	if m.Price(key) == nil {
		return false
	}
	if IsMandatory(m.Producer(), key, m.IsService()) {
		return false
	}
	ref := ServiceRef{MachineID: m.ID, Key: key}
	s[ref] = !s[ref]
	return true
}

// Checked returns the included refs sorted by machine id and key.
func (s ServiceSelection) Checked() []ServiceRef {
	var refs []ServiceRef
	for ref, on := range s {
		if on {
			refs = append(refs, ref)
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].MachineID != refs[j].MachineID {
			return refs[i].MachineID < refs[j].MachineID
		}
		return refs[i].Key < refs[j].Key
	})
	return refs
}

// Clone copies the state.
func (s ServiceSelection) Clone() ServiceSelection {
	out := make(ServiceSelection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Offer is one displayable service line of a machine.
type Offer struct {
	Key       catalog.ServiceKey `json:"key"`
	Label     string             `json:"label"`
	Price     float64            `json:"price"`
	Mandatory bool               `json:"mandatory"`
}

// Offers lists the applicable service lines of m in display order.
func Offers(m catalog.Machine) []Offer {
	if m.Services == nil {
		return nil
	}
	var offers []Offer
	for _, key := range m.Services.Keys() {
		price := m.Price(key)
		if price == nil {
			continue
		}
		offers = append(offers, Offer{
			Key:       key,
			Label:     catalog.Label(m, key),
			Price:     *price,
			Mandatory: IsMandatory(m.Producer(), key, m.IsService()),
		})
	}
	return offers
}
