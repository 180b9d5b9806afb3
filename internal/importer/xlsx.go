package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// MaxUploadSize bounds an uploaded workbook.
const MaxUploadSize = 10 << 20

// ReadXLSX reads the first sheet of a workbook as rows. Cells are read
// without their number format, so a styled 4800 arrives as "4800" rather
// than "4,800.00".
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	values := make([][]any, len(grid))
	for i, line := range grid {
		values[i] = make([]any, len(line))
		for j, cell := range line {
			values[i][j] = cell
		}
	}
	return RowsFromValues(values)
}
