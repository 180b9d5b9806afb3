package pricing

import (
	"strconv"
	"strings"

	"github.com/Simplici0/agrokalk/internal/catalog"
)

// Entry is one in-progress pick: a type choice and the chosen machine id
// (empty until a model is picked).
type Entry struct {
	Type      string `json:"type"`
	MachineID string `json:"machine_id"`
}

// Selection is the resolved form of a list of entries.
type Selection struct {
	// Machines are the resolved records in entry order.
	Machines      []catalog.Machine
	Services      []catalog.Machine
	Transportable []catalog.Machine
	// Governing is the transportable machine whose rate prices transport,
	// or nil when only services are selected.
	Governing *catalog.Machine
}

// HasService reports whether any service record is selected.
func (s Selection) HasService() bool { return len(s.Services) > 0 }

// HasTransportable reports whether any transportable machine is selected.
func (s Selection) HasTransportable() bool { return len(s.Transportable) > 0 }

// Empty reports whether nothing resolved.
func (s Selection) Empty() bool { return len(s.Machines) == 0 }

// IDs returns the resolved machine ids in entry order.
func (s Selection) IDs() []int64 {
	ids := make([]int64, len(s.Machines))
	for i, m := range s.Machines {
		ids[i] = m.ID
	}
	return ids
}

// Resolve looks every entry up in machines. Entries without a machine id or
// with an unknown id are dropped; an incomplete pick is not an error.
func Resolve(entries []Entry, machines []catalog.Machine) Selection {
	byID := make(map[int64]catalog.Machine, len(machines))
	for _, m := range machines {
		byID[m.ID] = m
	}

	var sel Selection
	for _, e := range entries {
		id, err := strconv.ParseInt(strings.TrimSpace(e.MachineID), 10, 64)
		if err != nil {
			continue
		}
		m, ok := byID[id]
		if !ok {
			continue
		}
		sel.Machines = append(sel.Machines, m)
		if m.IsService() {
			sel.Services = append(sel.Services, m)
		} else {
			sel.Transportable = append(sel.Transportable, m)
		}
	}

	sel.Governing = governing(sel.Transportable)
	return sel
}

// governing picks the machine with the strictly highest rate; on a tie the
// first one encountered wins.
func governing(transportable []catalog.Machine) *catalog.Machine {
	if len(transportable) == 0 {
		return nil
	}
	best := transportable[0]
	for _, m := range transportable[1:] {
		if m.Rate > best.Rate {
			best = m
		}
	}
	return &best
}
