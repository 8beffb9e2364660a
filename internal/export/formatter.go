// Package export turns a selection of products into spreadsheet files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultTimezone = "America/New_York"
	sheetName       = "Products"
	bom             = "\ufeff"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv; charset=utf-8"
}

type Formatter struct {
	loc *time.Location
}

// NewFormatter renders timestamps in loc, or in US Eastern when loc is nil.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = mustLoad(DefaultTimezone)
	}

	return &Formatter{loc: loc}
}

// NewFormatterForZone is NewFormatter with the zone given by IANA name.
func NewFormatterForZone(name string) (*Formatter, error) {
	if strings.TrimSpace(name) == "" {
		return NewFormatter(nil), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, appErrors.ValidationError("Unknown timezone").WithDetail(name).WithError(err)
	}

	return NewFormatter(loc), nil
}

func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Export renders the selection in the requested format.
func (f *Formatter) Export(format Format, products []*models.Product, ids, columns []string) ([]byte, error) {
	switch format {
	case FormatCSV, "":
		return f.ExportSelected(products, ids, columns)
	case FormatXLSX:
		return f.ExportSelectedXLSX(products, ids, columns)
	}

	return nil, appErrors.ValidationError("Unsupported export format").WithDetail(string(format))
}

// ExportSelected writes the selected products as UTF-8 CSV with a byte order
// mark and a header row of column labels.
func (f *Formatter) ExportSelected(products []*models.Product, ids, columns []string) ([]byte, error) {
	cols, rows, err := f.prepare(products, ids, columns)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(bom)

	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}

	if err := w.Write(header); err != nil {
		return nil, appErrors.InternalError("Failed to write export").WithError(err)
	}

	for _, p := range rows {
		record := make([]string, len(cols))
		for i, c := range cols {
			v := c.value(p, f.loc)
			if v != "" {
				v = c.textPrefix + v
			}
			record[i] = v
		}

		if err := w.Write(record); err != nil {
			return nil, appErrors.InternalError("Failed to write export").WithError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, appErrors.InternalError("Failed to write export").WithError(err)
	}

	return buf.Bytes(), nil
}

// ExportSelectedXLSX writes the selection to a single-sheet workbook. Cells
// are stored as text, so exp_date needs no protective prefix.
func (f *Formatter) ExportSelectedXLSX(products []*models.Product, ids, columns []string) ([]byte, error) {
	cols, rows, err := f.prepare(products, ids, columns)
	if err != nil {
		return nil, err
	}

	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, appErrors.InternalError("Failed to build workbook").WithError(err)
	}

	headerStyle, err := book.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, appErrors.InternalError("Failed to build workbook").WithError(err)
	}

	for i, c := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := book.SetCellStr(sheetName, cell, c.Label); err != nil {
			return nil, appErrors.InternalError("Failed to build workbook").WithError(err)
		}
		_ = book.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = book.SetColWidth(sheetName, colName, colName, 20)
	}

	for r, p := range rows {
		for i, c := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := book.SetCellStr(sheetName, cell, c.value(p, f.loc)); err != nil {
				return nil, appErrors.InternalError("Failed to build workbook").WithError(err)
			}
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, appErrors.InternalError("Failed to build workbook").WithError(err)
	}

	return buf.Bytes(), nil
}

// prepare resolves the columns and picks the selected products in
// collection order.
func (f *Formatter) prepare(products []*models.Product, ids, columns []string) ([]Column, []*models.Product, error) {
	cols, err := ResolveColumns(columns)
	if err != nil {
		return nil, nil, err
	}

	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[strings.TrimSpace(id)] = true
	}

	rows := make([]*models.Product, 0, len(ids))
	for _, p := range products {
		if p != nil && selected[p.IDString()] {
			rows = append(rows, p)
		}
	}

	if len(rows) == 0 {
		return nil, nil, appErrors.ValidationError("No products selected for export")
	}

	return cols, rows, nil
}

// Filename is the download name for an export taken at t.
func Filename(format Format, t time.Time) string {
	if format == "" {
		format = FormatCSV
	}

	return fmt.Sprintf("products_export_%s.%s", t.Format("2006-01-02"), format)
}

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}

	return loc
}
