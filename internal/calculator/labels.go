package calculator

import "github.com/Simplici0/agrokalk/internal/catalog"

// Labels are the summary captions, which depend on whether the selection
// holds machines, services or both.
type Labels struct {
	Action        string `json:"action"`
	Services      string `json:"services"`
	Transport     string `json:"transport,omitempty"`
	Additional    string `json:"additional"`
	Total         string `json:"total"`
	ShowTransport bool   `json:"show_transport"`
}

// Labels returns the captions for the current selection.
func (s *Session) Labels() Labels {
	sel := s.Selection()
	return LabelsFor(sel.HasTransportable(), sel.HasService())
}

// LabelsFor builds the captions from the selection's composition.
func LabelsFor(transportable, service bool) Labels {
	l := Labels{Action: "OBLICZ KOSZTY"}
	if service && !transportable {
		l.Action = "Oblicz koszt usługi"
	}

	if !transportable {
		l.Services = "Koszty usług:"
		l.Additional = "Całkowity koszt usług:"
		l.Total = "Całkowity koszt usługi:"
		return l
	}

	l.ShowTransport = true
	l.Services = "Koszty dodatkowe i usługi:"
	l.Transport = "Koszt transportu:"
	l.Additional = "Suma kosztów dodatkowych:"
	if service {
		l.Additional = "Suma kosztów dodatkowych i usług:"
	}
	l.Total = "Całkowity koszt końcowy:"
	return l
}

// ModelLabel is the caption of an entry's second picker.
func ModelLabel(typ string) string {
	if typ == catalog.ServiceType {
		return "Usługa"
	}
	return "Model maszyny"
}
