package catalog

var claasLabels = map[ServiceKey]string{
	Review0:       `Przegląd "0"`,
	Assembly:      "Składanie",
	Commissioning: "Uruchomienie",
	Review100:     "Przegląd po 100 mtg",
	Review500:     "Przegląd po 500 mtg",
	Review1000:    "Przegląd po 1000 mtg",
}

var bobcatLabels = map[ServiceKey]string{
	Review0:    `Przegląd "0"`,
	Assembly:   "Składanie",
	Review50:   "Przegląd po 50 mtg",
	Review100:  "Przegląd po 100 mtg",
	Review250:  "Przegląd po 250 mtg",
	Review500:  "Przegląd po 500 mtg",
	Review1000: "Przegląd po 1000 mtg",
}

// Label returns the display label of a service line. The commissioning slot
// of a service record carries the service's own price, so it is labelled
// with the record's model.
func Label(m Machine, key ServiceKey) string {
	if m.IsService() && key == Commissioning {
		return m.Model
	}
	switch m.Services.(type) {
	case *ClaasServices:
		return claasLabels[key]
	case *BobcatServices:
		return bobcatLabels[key]
	}
	return string(key)
}
