package catalog

// SchemaVersion tags the bundled default catalog. Bump it whenever the
// defaults change so that stale persisted catalogs are discarded.
const SchemaVersion = "1.4"

// Defaults returns a fresh copy of the bundled catalog.
func Defaults() []Machine {
	return []Machine{
		{ID: 1, Type: "CIĄGNIK", Model: "Arion 400", Weight: 4800, Rate: 4.80,
			Services: &ClaasServices{Review0: Price(1280.00), Assembly: nil, Commissioning: Price(256.00), Review100: Price(3293.53), Review500: Price(3477.12), Review1000: Price(7494.62)}},
		{ID: 2, Type: "CIĄGNIK", Model: "Arion 600", Weight: 5800, Rate: 5.60,
			Services: &ClaasServices{Review0: Price(1280.00), Assembly: nil, Commissioning: Price(256.00), Review100: Price(4155.68), Review500: Price(5365.00), Review1000: Price(6987.58)}},
		{ID: 3, Type: "CIĄGNIK", Model: "Axion 800", Weight: 8900, Rate: 6.80,
			Services: &ClaasServices{Review0: Price(1280.00), Assembly: nil, Commissioning: Price(256.00), Review100: Price(4155.68), Review500: Price(5365.00), Review1000: Price(6987.58)}},
		{ID: 4, Type: "CIĄGNIK", Model: "Axion 900", Weight: 14500, Rate: 6.80,
			Services: &ClaasServices{Review0: Price(1280.00), Assembly: nil, Commissioning: Price(256.00), Review100: Price(5550.00), Review500: Price(11700.00), Review1000: Price(8850.00)}},
		{ID: 5, Type: "CIĄGNIK", Model: "Xerion", Weight: 18000, Rate: 8.00,
			Services: &ClaasServices{Review0: Price(1280.00), Assembly: nil, Commissioning: Price(256.00), Review100: Price(2800.00), Review500: Price(8200.00), Review1000: Price(16300.00)}},
		{ID: 6, Type: "KOMBAJN", Model: "Evion", Weight: 12500, Rate: 8.00,
			Services: &ClaasServices{Review0: Price(4100.00), Assembly: nil, Commissioning: Price(1280.00), Review100: Price(2053.83), Review500: Price(5707.15), Review1000: Price(10828.21)}},
		{ID: 7, Type: "KOMBAJN", Model: "Trion", Weight: 18000, Rate: 8.00,
			Services: &ClaasServices{Review0: Price(4100.00), Assembly: nil, Commissioning: Price(1280.00), Review100: Price(2917.83), Review500: Price(7373.61), Review1000: Price(11822.65)}},
		{ID: 8, Type: "KOMBAJN", Model: "Lexion", Weight: 22300, Rate: 8.00,
			Services: &ClaasServices{Review0: Price(4100.00), Assembly: nil, Commissioning: Price(1280.00), Review100: Price(2773.83), Review500: Price(13772.46), Review1000: Price(16218.14)}},
		{ID: 9, Type: "SIECZKARNIA", Model: "Jaguar 800/900", Weight: 17000, Rate: 8.00,
			Services: &ClaasServices{Review0: Price(4100.00), Assembly: nil, Commissioning: Price(1280.00), Review100: Price(2917.83), Review500: Price(7373.61), Review1000: Price(11822.65)}},
		{ID: 10, Type: "KOSIARKA", Model: "Kosiarki czołowe", Weight: 1300, Rate: 4.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(1000.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 11, Type: "KOSIARKA", Model: "Kosiarki czołowe z kondycjonerem", Weight: 1600, Rate: 4.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(1400.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 12, Type: "KOSIARKA", Model: "Kosiarki tylne", Weight: 1000, Rate: 4.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(1200.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 13, Type: "KOSIARKA", Model: "Kosiarki tylne z kondycjonerem", Weight: 1200, Rate: 4.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(1600.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 14, Type: "KOSIARKA", Model: "Zestaw kosiarek", Weight: 4500, Rate: 6.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(3600.00), Commissioning: Price(512.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 15, Type: "ZGRABIARKA", Model: "Jednokaruzelowe", Weight: 1400, Rate: 6.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(1000.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 16, Type: "ZGRABIARKA", Model: "Dwukaruzelowe", Weight: 2900, Rate: 6.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(1800.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 17, Type: "ZGRABIARKA", Model: "Czterokaruzelowe", Weight: 6400, Rate: 6.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(3330.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 18, Type: "PRZETRZĄSACZ", Model: "Do 7 m.", Weight: 800, Rate: 6.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(1660.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 19, Type: "PRZETRZĄSACZ", Model: "Powyżej 7 m.", Weight: 1100, Rate: 6.80,
			Services: &ClaasServices{Review0: nil, Assembly: Price(2300.00), Commissioning: Price(256.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 20, Type: "USŁUGI", Model: "Montaż ładowacza", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(7680.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 21, Type: "USŁUGI", Model: "Montaż TUZ", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(4480.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 22, Type: "USŁUGI", Model: "Montaż WOM", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(4489.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 23, Type: "USŁUGI", Model: "Montaż kamer", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(1024.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 24, Type: "USŁUGI", Model: "CEMIS - konfiguracja", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(1024.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 25, Type: "USŁUGI", Model: "Gąsiennice", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(512.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 26, Type: "MASZYNY UŻYWANE", Model: "Weryfikacja ciągnika", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(1536.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 27, Type: "MASZYNY UŻYWANE", Model: "Przegląd mały", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(1024.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 28, Type: "MASZYNY UŻYWANE", Model: "Przegląd duży", Weight: 0, Rate: 0,
			Services: &ClaasServices{Review0: nil, Assembly: nil, Commissioning: Price(2048.00), Review100: nil, Review500: nil, Review1000: nil}},
		{ID: 101, Type: "ŁADOWARKA", Model: "Wszystkie modele", Weight: 8200, Rate: 6.80,
			Services: &BobcatServices{Review0: Price(750.00), Assembly: nil, Review50: nil, Review100: Price(2810.00), Review250: nil, Review500: Price(3780.00), Review1000: Price(6620.00)}},
		{ID: 102, Type: "MINIKOPARKA", Model: "E19", Weight: 1800, Rate: 6.80,
			Services: &BobcatServices{Review0: Price(500.00), Assembly: nil, Review50: nil, Review100: Price(1190.00), Review250: nil, Review500: Price(1890.00), Review1000: Price(3030.00)}},
		{ID: 103, Type: "MINIKOPARKA", Model: "E27", Weight: 2700, Rate: 6.80,
			Services: &BobcatServices{Review0: Price(500.00), Assembly: nil, Review50: Price(1390.00), Review100: nil, Review250: Price(1290.00), Review500: Price(1690.00), Review1000: Price(2830.00)}},
	}
}
