package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Producer tags the manufacturer a machine record belongs to.
type Producer string

const (
	ProducerClaas  Producer = "CLAAS"
	ProducerBobcat Producer = "BOBCAT"
)

// Producers lists the known producers in display order.
var Producers = []Producer{ProducerClaas, ProducerBobcat}

// ParseProducer validates a producer tag.
func ParseProducer(raw string) (Producer, error) {
	switch p := Producer(strings.ToUpper(strings.TrimSpace(raw))); p {
	case ProducerClaas, ProducerBobcat:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProducer, raw)
	}
}

// ServiceType is the type sentinel marking a record as a billable service
// rather than a transportable machine.
const ServiceType = "USŁUGI"

// ServiceKey names an optional service-price field.
type ServiceKey string

const (
	Review0       ServiceKey = "review0"
	Review50      ServiceKey = "review50"
	Review100     ServiceKey = "review100"
	Review250     ServiceKey = "review250"
	Review500     ServiceKey = "review500"
	Review1000    ServiceKey = "review1000"
	Assembly      ServiceKey = "assembly"
	Commissioning ServiceKey = "commissioning"
)

var (
	ErrUnknownProducer = errors.New("unknown producer")
	ErrUnknownField    = errors.New("unknown field")
)

// Services holds the producer-specific optional prices of a machine.
// It is implemented only by *ClaasServices and *BobcatServices.
type Services interface {
	Producer() Producer
	// Keys returns the service keys of the variant in display order.
	Keys() []ServiceKey
	// Price returns the price stored under key. ok is false when the
	// variant has no such field.
	Price(key ServiceKey) (price *float64, ok bool)
	// SetPrice stores price under key and reports whether the variant
	// has such a field.
	SetPrice(key ServiceKey, price *float64) bool
	clone() Services
	sealed()
}

// ClaasServices are the optional prices of a CLAAS record.
type ClaasServices struct {
	Review0       *float64
	Assembly      *float64
	Commissioning *float64
	Review100     *float64
	Review500     *float64
	Review1000    *float64
}

var claasKeys = []ServiceKey{Review0, Assembly, Commissioning, Review100, Review500, Review1000}

func (s *ClaasServices) Producer() Producer { return ProducerClaas }

func (s *ClaasServices) Keys() []ServiceKey { return append([]ServiceKey(nil), claasKeys...) }

func (s *ClaasServices) field(key ServiceKey) **float64 {
	switch key {
	case Review0:
		return &s.Review0
	case Assembly:
		return &s.Assembly
	case Commissioning:
		return &s.Commissioning
	case Review100:
		return &s.Review100
	case Review500:
		return &s.Review500
	case Review1000:
		return &s.Review1000
	}
	return nil
}

func (s *ClaasServices) Price(key ServiceKey) (*float64, bool) {
	f := s.field(key)
	if f == nil {
		return nil, false
	}
	return *f, true
}

func (s *ClaasServices) SetPrice(key ServiceKey, price *float64) bool {
	f := s.field(key)
	if f == nil {
		return false
	}
	*f = copyPrice(price)
	return true
}

func (s *ClaasServices) clone() Services {
	return &ClaasServices{
		Review0:       copyPrice(s.Review0),
		Assembly:      copyPrice(s.Assembly),
		Commissioning: copyPrice(s.Commissioning),
		Review100:     copyPrice(s.Review100),
		Review500:     copyPrice(s.Review500),
		Review1000:    copyPrice(s.Review1000),
	}
}

func (s *ClaasServices) sealed() {}

// BobcatServices are the optional prices of a BOBCAT record.
type BobcatServices struct {
	Review0    *float64
	Assembly   *float64
	Review50   *float64
	Review100  *float64
	Review250  *float64
	Review500  *float64
	Review1000 *float64
}

var bobcatKeys = []ServiceKey{Review0, Assembly, Review50, Review100, Review250, Review500, Review1000}

func (s *BobcatServices) Producer() Producer { return ProducerBobcat }

func (s *BobcatServices) Keys() []ServiceKey { return append([]ServiceKey(nil), bobcatKeys...) }

func (s *BobcatServices) field(key ServiceKey) **float64 {
	switch key {
	case Review0:
		return &s.Review0
	case Assembly:
		return &s.Assembly
	case Review50:
		return &s.Review50
	case Review100:
		return &s.Review100
	case Review250:
		return &s.Review250
	case Review500:
		return &s.Review500
	case Review1000:
		return &s.Review1000
	}
	return nil
}

func (s *BobcatServices) Price(key ServiceKey) (*float64, bool) {
	f := s.field(key)
	if f == nil {
		return nil, false
	}
	return *f, true
}

func (s *BobcatServices) SetPrice(key ServiceKey, price *float64) bool {
	f := s.field(key)
	if f == nil {
		return false
	}
	*f = copyPrice(price)
	return true
}

func (s *BobcatServices) clone() Services {
	return &BobcatServices{
		Review0:    copyPrice(s.Review0),
		Assembly:   copyPrice(s.Assembly),
		Review50:   copyPrice(s.Review50),
		Review100:  copyPrice(s.Review100),
		Review250:  copyPrice(s.Review250),
		Review500:  copyPrice(s.Review500),
		Review1000: copyPrice(s.Review1000),
	}
}

func (s *BobcatServices) sealed() {}

// NewServices returns an empty service set for producer.
func NewServices(producer Producer) (Services, error) {
	switch producer {
	case ProducerClaas:
		return &ClaasServices{}, nil
	case ProducerBobcat:
		return &BobcatServices{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProducer, producer)
	}
}

// Machine is a catalog record: either a transportable machine or, when Type
// is ServiceType, a billable service.
type Machine struct {
	ID       int64
	Type     string
	Model    string
	Weight   float64 // kg
	Rate     float64 // zł per km
	Services Services
}

// Name is the display name derived from type and model.
func (m Machine) Name() string {
	return strings.TrimSpace(m.Type + " " + m.Model)
}

// Producer returns the producer of the record's service variant.
func (m Machine) Producer() Producer {
	if m.Services == nil {
		return ""
	}
	return m.Services.Producer()
}

// IsService reports whether the record is a service line item.
func (m Machine) IsService() bool {
	return m.Type == ServiceType
}

// Price returns the applicable price for key, or nil when the service does
// not apply to the machine.
func (m Machine) Price(key ServiceKey) *float64 {
	if m.Services == nil {
		return nil
	}
	p, _ := m.Services.Price(key)
	return p
}

// Clone returns a deep copy of the record.
func (m Machine) Clone() Machine {
	if m.Services != nil {
		m.Services = m.Services.clone()
	}
	return m
}

// CloneAll deep-copies a slice of records.
func CloneAll(machines []Machine) []Machine {
	out := make([]Machine, len(machines))
	for i, m := range machines {
		out[i] = m.Clone()
	}
	return out
}

// Find returns the record with id.
func Find(machines []Machine, id int64) (Machine, bool) {
	for _, m := range machines {
		if m.ID == id {
			return m, true
		}
	}
	return Machine{}, false
}

type wireCommon struct {
	ID       int64    `json:"id"`
	Producer Producer `json:"producer"`
	Type     string   `json:"type"`
	Model    string   `json:"model"`
	Name     string   `json:"name"`
	Weight   float64  `json:"weight"`
	Rate     float64  `json:"rate"`
}

type wireClaas struct {
	wireCommon
	Review0       *float64 `json:"review0"`
	Assembly      *float64 `json:"assembly"`
	Commissioning *float64 `json:"commissioning"`
	Review100     *float64 `json:"review100"`
	Review500     *float64 `json:"review500"`
	Review1000    *float64 `json:"review1000"`
}

type wireBobcat struct {
	wireCommon
	Review0    *float64 `json:"review0"`
	Assembly   *float64 `json:"assembly"`
	Review50   *float64 `json:"review50"`
	Review100  *float64 `json:"review100"`
	Review250  *float64 `json:"review250"`
	Review500  *float64 `json:"review500"`
	Review1000 *float64 `json:"review1000"`
}

// MarshalJSON writes the flat record shape used by the persisted catalog
// and the HTTP API.
func (m Machine) MarshalJSON() ([]byte, error) {
	common := wireCommon{
		ID:       m.ID,
		Producer: m.Producer(),
		Type:     m.Type,
		Model:    m.Model,
		Name:     m.Name(),
		Weight:   m.Weight,
		Rate:     m.Rate,
	}
	switch s := m.Services.(type) {
	case *ClaasServices:
		return json.Marshal(wireClaas{
			wireCommon:    common,
			Review0:       s.Review0,
			Assembly:      s.Assembly,
			Commissioning: s.Commissioning,
			Review100:     s.Review100,
			Review500:     s.Review500,
			Review1000:    s.Review1000,
		})
	case *BobcatServices:
		return json.Marshal(wireBobcat{
			wireCommon: common,
			Review0:    s.Review0,
			Assembly:   s.Assembly,
			Review50:   s.Review50,
			Review100:  s.Review100,
			Review250:  s.Review250,
			Review500:  s.Review500,
			Review1000: s.Review1000,
		})
	default:
		return nil, fmt.Errorf("machine %d: %w", m.ID, ErrUnknownProducer)
	}
}

// UnmarshalJSON decodes the flat record shape, dispatching on producer.
// The incoming name is ignored.
func (m *Machine) UnmarshalJSON(data []byte) error {
	var common wireCommon
	if err := json.Unmarshal(data, &common); err != nil {
		return err
	}

	out := Machine{
		ID:     common.ID,
		Type:   common.Type,
		Model:  common.Model,
		Weight: common.Weight,
		Rate:   common.Rate,
	}

	switch common.Producer {
	case ProducerClaas:
		var w wireClaas
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		out.Services = &ClaasServices{
			Review0:       w.Review0,
			Assembly:      w.Assembly,
			Commissioning: w.Commissioning,
			Review100:     w.Review100,
			Review500:     w.Review500,
			Review1000:    w.Review1000,
		}
	case ProducerBobcat:
		var w wireBobcat
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		out.Services = &BobcatServices{
			Review0:    w.Review0,
			Assembly:   w.Assembly,
			Review50:   w.Review50,
			Review100:  w.Review100,
			Review250:  w.Review250,
			Review500:  w.Review500,
			Review1000: w.Review1000,
		}
	default:
		return fmt.Errorf("machine %d: %w: %q", common.ID, ErrUnknownProducer, common.Producer)
	}

	*m = out
	return nil
}

func copyPrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Price returns a pointer to v, for building records in code.
func Price(v float64) *float64 {
	return &v
}
