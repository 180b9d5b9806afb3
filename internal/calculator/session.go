// Package calculator holds the state of one quoting session: the chosen
// producer, the list of machine picks, the distance and the service
// checkboxes.
package calculator

import (
	"errors"
	"slices"

	"github.com/Simplici0/agrokalk/internal/catalog"
	"github.com/Simplici0/agrokalk/internal/pricing"
)

var (
	ErrNoProducer   = errors.New("no producer selected")
	ErrUnknownEntry = errors.New("unknown entry")
)

// Entry is one machine pick with its session-local id.
type Entry struct {
	ID int `json:"id"`
	pricing.Entry
}

// MachineOffers groups the applicable service lines of one selected machine
// with their current checkbox state.
type MachineOffers struct {
	Machine catalog.Machine `json:"machine"`
	Lines   []Line          `json:"lines"`
}

// Line is an offer and whether it is included.
type Line struct {
	pricing.Offer
	Ref     string `json:"ref"`
	Checked bool   `json:"checked"`
}

// Session is not safe for concurrent use.
type Session struct {
	machines []catalog.Machine
	producer catalog.Producer

	entries  []Entry
	nextID   int
	distance string

	resolved []int64
	services pricing.ServiceSelection
	result   *pricing.Breakdown
}

// NewSession starts a session over a catalog snapshot with no producer.
func NewSession(machines []catalog.Machine) *Session {
	s := &Session{machines: catalog.CloneAll(machines)}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.nextID = 0
	s.entries = nil
	s.distance = ""
	s.resolved = nil
	s.services = make(pricing.ServiceSelection)
	s.result = nil
	s.AddEntry()
}

// SelectProducer resets the session and starts quoting for p.
func (s *Session) SelectProducer(p catalog.Producer) error {
	if _, err := catalog.ParseProducer(string(p)); err != nil {
		return err
	}
	s.reset()
	s.producer = p
	return nil
}

// ChangeProducer returns to producer selection, discarding all state.
func (s *Session) ChangeProducer() {
	s.producer = ""
	s.reset()
}

// Producer returns the current producer, empty before SelectProducer.
func (s *Session) Producer() catalog.Producer { return s.producer }

// Types lists the distinct machine types of the producer in catalog order.
func (s *Session) Types() []string {
	var types []string
	for _, m := range s.machines {
		if m.Producer() != s.producer || slices.Contains(types, m.Type) {
			continue
		}
		types = append(types, m.Type)
	}
	return types
}

// Models lists the producer's machines of the given type.
func (s *Session) Models(typ string) []catalog.Machine {
	var out []catalog.Machine
	for _, m := range s.machines {
		if m.Producer() == s.producer && m.Type == typ {
			out = append(out, m.Clone())
		}
	}
	return out
}

// Entries returns a copy of the current picks.
func (s *Session) Entries() []Entry {
	return slices.Clone(s.entries)
}

// AddEntry appends an empty pick and returns its id.
func (s *Session) AddEntry() int {
	s.nextID++
	s.entries = append(s.entries, Entry{ID: s.nextID})
	return s.nextID
}

// RemoveEntry drops a pick. The last remaining pick is never removed; the
// return value reports whether anything was removed.
func (s *Session) RemoveEntry(id int) bool {
	if len(s.entries) <= 1 {
		return false
	}
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	s.refresh()
	return true
}

// SetEntryType changes the type of a pick and clears its machine.
func (s *Session) SetEntryType(id int, typ string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrUnknownEntry
	}
	s.entries[i].Type = typ
	s.entries[i].MachineID = ""
	s.refresh()
	return nil
}

// SetEntryMachine sets the machine id of a pick.
func (s *Session) SetEntryMachine(id int, machineID string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrUnknownEntry
	}
	s.entries[i].MachineID = machineID
	s.refresh()
	return nil
}

func (s *Session) indexOf(id int) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
}

// refresh reseeds the service state and clears the result when the set of
// resolved machines changed. Order and repeats of picks do not count.
func (s *Session) refresh() {
	ids := idSet(s.Selection().IDs())
	if slices.Equal(ids, s.resolved) {
		return
	}
	s.resolved = ids
	s.services = pricing.Seed(s.Selection())
	s.result = nil
}

func idSet(ids []int64) []int64 {
	slices.Sort(ids)
	return slices.Compact(ids)
}

// SetDistance stores the raw distance; it is validated by Calculate.
func (s *Session) SetDistance(raw string) {
	s.distance = raw
}

// Distance returns the raw distance.
func (s *Session) Distance() string { return s.distance }

// ToggleService flips an optional service line of a selected machine.
func (s *Session) ToggleService(machineID int64, key catalog.ServiceKey) bool {
	m, ok := s.selected(machineID)
	if !ok {
		return false
	}
	return s.services.Toggle(m, key)
}

// SetService includes or excludes an optional service line. Mandatory lines
// keep their state.
func (s *Session) SetService(machineID int64, key catalog.ServiceKey, on bool) bool {
	m, ok := s.selected(machineID)
	if !ok {
		return false
	}
	if s.services[pricing.ServiceRef{MachineID: machineID, Key: key}] == on {
		return false
	}
	return s.services.Toggle(m, key)
}

func (s *Session) selected(machineID int64) (catalog.Machine, bool) {
	return catalog.Find(s.Selection().Machines, machineID)
}

// Selection resolves the current picks against the producer's machines.
func (s *Session) Selection() pricing.Selection {
	var own []catalog.Machine
	for _, m := range s.machines {
		if m.Producer() == s.producer {
			own = append(own, m)
		}
	}
	return pricing.Resolve(pricingEntries(s.entries), own)
}

func pricingEntries(entries []Entry) []pricing.Entry {
	out := make([]pricing.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Entry
	}
	return out
}

// Services lists the offers of every selected machine in entry order.
func (s *Session) Services() []MachineOffers {
	var out []MachineOffers
	for _, m := range s.Selection().Machines {
		mo := MachineOffers{Machine: m}
		for _, o := range pricing.Offers(m) {
			ref := pricing.ServiceRef{MachineID: m.ID, Key: o.Key}
			mo.Lines = append(mo.Lines, Line{Offer: o, Ref: ref.String(), Checked: s.services[ref]})
		}
		out = append(out, mo)
	}
	return out
}

// Calculate prices the session. Any previous result is discarded first, so
// a failed calculation leaves no result behind.
func (s *Session) Calculate() (pricing.Breakdown, error) {
	s.result = nil
	if s.producer == "" {
		return pricing.Breakdown{}, ErrNoProducer
	}
	b, err := pricing.Quote(s.Selection(), s.distance, s.services, s.machines)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	s.result = &b
	return b, nil
}

// Result returns the last successful calculation, or nil when the inputs
// changed since.
func (s *Session) Result() *pricing.Breakdown {
	if s.result == nil {
		return nil
	}
	b := *s.result
	return &b
}
