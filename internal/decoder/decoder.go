package decoder

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"go-import-pipeline/internal/model"
	"go-import-pipeline/pkg/utils"
)

// ------------------- Tabular decoding -------------------

// Decode reads a CSV or XLSX file into a Sheet for the given entity. For
// workbooks the sheet is chosen by keyword match against sheet names,
// falling back to the first sheet.
func Decode(path string, entity model.Entity) (*model.Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &model.DecodeError{Path: path, Err: err}
	}
	defer file.Close()
	return DecodeReader(file, filepath.Ext(path), entity)
}

// DecodeReader decodes tabular data from a reader. ext selects the format
// (".csv", ".xlsx" or ".xls").
func DecodeReader(r io.Reader, ext string, entity model.Entity) (*model.Sheet, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		return decodeCSV(r)
	case ".xlsx", ".xls":
		return decodeWorkbook(r, entity.SheetKeywords)
	default:
		return nil, &model.DecodeError{Path: ext, Err: fmt.Errorf("unsupported file type %q", ext)}
	}
}

func decodeCSV(r io.Reader) (*model.Sheet, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err != nil {
		return nil, &model.DecodeError{Path: "csv", Err: fmt.Errorf("read header: %w", err)}
	}
	columns := cleanHeaders(headers)

	sheet := &model.Sheet{Name: "csv", Columns: columns}
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &model.DecodeError{Path: "csv", Err: err}
		}
		sheet.Rows = append(sheet.Rows, rowFromCells(columns, record))
	}

	if len(sheet.Rows) == 0 {
		return nil, &model.NoDataError{Sheet: sheet.Name}
	}
	fmt.Printf("📄 CSV decoded: %d rows, %d columns\n", len(sheet.Rows), len(columns))
	return sheet, nil
}

func decodeWorkbook(r io.Reader, keywords []string) (*model.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &model.DecodeError{Path: "xlsx", Err: err}
	}
	defer f.Close()

	name := pickSheet(f.GetSheetList(), keywords)
	cells, err := f.GetRows(name)
	if err != nil {
		return nil, &model.DecodeError{Path: name, Err: err}
	}
	if len(cells) < 2 {
		return nil, &model.NoDataError{Sheet: name}
	}

	columns := cleanHeaders(cells[0])
	sheet := &model.Sheet{Name: name, Columns: columns}
	for _, record := range cells[1:] {
		sheet.Rows = append(sheet.Rows, rowFromCells(columns, record))
	}
	fmt.Printf("📄 Sheet %q decoded: %d rows, %d columns\n", name, len(sheet.Rows), len(columns))
	return sheet, nil
}

// pickSheet returns the first sheet whose name contains one of the entity
// keywords, case-insensitively, else the first sheet.
func pickSheet(names []string, keywords []string) string {
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return name
			}
		}
	}
	return names[0]
}

// cleanHeaders trims whitespace and strips stray quotes from column names.
func cleanHeaders(headers []string) []string {
	columns := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		columns[i] = strings.ReplaceAll(h, `"`, "")
	}
	return columns
}

// rowFromCells zips headers with record cells, parsing each cell into its
// most specific scalar. Short records leave trailing columns absent.
func rowFromCells(columns []string, record []string) model.SourceRow {
	row := make(model.SourceRow, len(columns))
	for i, col := range columns {
		if col == "" || i >= len(record) {
			continue
		}
		row[col] = utils.ParseValue(record[i])
	}
	return row
}
