package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the watched workbook. The first row of the active
// sheet is the header; rows where every cell is empty are skipped.
type ExcelReader struct {
	Path string
}

func NewExcelReader(path string) *ExcelReader {
	return &ExcelReader{Path: path}
}

func (r *ExcelReader) Read() ([]Row, error) {
	f, err := excelize.OpenFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := rows[0]
	var content []Row
	for _, cells := range rows[1:] {
		row := Row{}
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		if row.Empty() {
			continue
		}
		content = append(content, row)
	}
	return content, nil
}
