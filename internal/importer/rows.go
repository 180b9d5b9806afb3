// Package importer turns spreadsheet rows into machine records and merges
// them into the catalog, replacing one producer at a time.
package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Simplici0/agrokalk/internal/catalog"
)

// Column headers recognized in import sheets.
const (
	ColType          = "TYP"
	ColModel         = "MODEL"
	ColWeight        = "WAGA (kg)"
	ColRate          = "STAWKA"
	ColReview0       = `PRZEGLĄD "0"`
	ColAssembly      = "SKŁADANIE"
	ColCommissioning = "URUCHOMIENIE"
	ColReview50      = "PRZEGLĄD PO 50 mtg"
	ColReview100     = "PRZEGLĄD PO 100 mtg"
	ColReview250     = "PRZEGLĄD PO 250 mtg"
	ColReview500     = "PRZEGLĄD PO 500 mtg"
	ColReview1000    = "PRZEGLĄD PO 1000 mtg"
)

// missingText replaces an absent type or model.
const missingText = "Brak danych"

var (
	ErrNoHeader = errors.New("sheet has no header row")
	ErrNoRows   = errors.New("sheet has no data rows")
)

// priceColumns maps each producer's service keys to their column headers.
var priceColumns = map[catalog.Producer]map[catalog.ServiceKey]string{
	catalog.ProducerClaas: {
		catalog.Review0:       ColReview0,
		catalog.Assembly:      ColAssembly,
		catalog.Commissioning: ColCommissioning,
		catalog.Review100:     ColReview100,
		catalog.Review500:     ColReview500,
		catalog.Review1000:    ColReview1000,
	},
	catalog.ProducerBobcat: {
		catalog.Review0:    ColReview0,
		catalog.Assembly:   ColAssembly,
		catalog.Review50:   ColReview50,
		catalog.Review100:  ColReview100,
		catalog.Review250:  ColReview250,
		catalog.Review500:  ColReview500,
		catalog.Review1000: ColReview1000,
	},
}

// Row is one data row keyed by header text. Empty cells are absent.
type Row map[string]any

// RowsFromValues converts a grid whose first row is the header. Blank rows
// are skipped and cells beyond the header are ignored.
func RowsFromValues(values [][]any) ([]Row, error) {
	if len(values) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(values[0]))
	hasHeader := false
	for i, cell := range values[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(cell))
		if header[i] != "" {
			hasHeader = true
		}
	}
	if !hasHeader {
		return nil, ErrNoHeader
	}

	var rows []Row
	for _, line := range values[1:] {
		row := make(Row)
		for i, cell := range line {
			if i >= len(header) || header[i] == "" || blank(cell) {
				continue
			}
			row[header[i]] = cell
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func blank(cell any) bool {
	if cell == nil {
		return true
	}
	s, ok := cell.(string)
	return ok && strings.TrimSpace(s) == ""
}

// BuildRecords maps rows to machine records of producer. Ids are the
// clock's milliseconds plus the row index. Missing columns never fail a
// row: numbers default to 0 and prices to not applicable.
func BuildRecords(producer catalog.Producer, rows []Row, now time.Time) ([]catalog.Machine, error) {
	columns, ok := priceColumns[producer]
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownProducer, producer)
	}

	base := now.UnixMilli()
	out := make([]catalog.Machine, 0, len(rows))
	for i, row := range rows {
		services, err := catalog.NewServices(producer)
		if err != nil {
			return nil, err
		}
		for key, col := range columns {
			services.SetPrice(key, catalog.ParseCurrency(row[col]))
		}

		out = append(out, catalog.Machine{
			ID:       base + int64(i),
			Type:     text(row[ColType]),
			Model:    text(row[ColModel]),
			Weight:   catalog.ParseNumber(row[ColWeight]),
			Rate:     catalog.ParseNumber(row[ColRate]),
			Services: services,
		})
	}
	return out, nil
}

func text(v any) string {
	if v == nil {
		return missingText
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return missingText
	}
	return s
}
