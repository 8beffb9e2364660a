package service

import (
	"bytes"
	"context"
	"encoding/csv"
	stdErrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nppdeals/inventory-platform/internal/api/middleware"
	"github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	repository "github.com/nppdeals/inventory-platform/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ImportService loads products from an uploaded spreadsheet.
type ImportService interface {
	Import(ctx context.Context, filename string, file io.Reader) (*models.ImportSummary, error)
}

type importService struct {
	products ProductService
	repo     repository.ProductRepository
	loc      *time.Location
}

// NewImportService reads zone-less dates in the file as wall time in loc,
// which is the zone exports are written in.
func NewImportService(products ProductService, repo repository.ProductRepository, loc *time.Location) ImportService {
	if loc == nil {
		loc = time.UTC
	}

	return &importService{products: products, repo: repo, loc: loc}
}

// headerKeys maps lower-cased column headers onto field keys. Both the
// export labels and the raw keys are accepted, plus headers used by the
// older upload sheets.
var headerKeys = func() map[string]string {
	m := map[string]string{
		"product id":  "id",
		"product_id":  "id",
		"image":       "image_url",
		"lead time":   "lead_time",
		"expiration":  "exp_date",
		"offer":       "offer_date",
		"outofstock":  "out_of_stock",
		"vendor name": "vendor",
	}

	for _, f := range models.ProductFields {
		m[strings.ToLower(f.Label)] = f.Key
		m[f.Key] = f.Key
	}

	return m
}()

type sheetRow struct {
	number int
	cells  map[string]string
}

func (s *importService) Import(ctx context.Context, filename string, file io.Reader) (*models.ImportSummary, error) {

	logger := middleware.LoggerFromContext(ctx)

	var (
		rows []sheetRow
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseCSV(file)
	case ".xlsx":
		rows, err = parseXLSX(file)
	default:
		return nil, errors.ValidationError("Unsupported file type").WithDetail("Upload a .csv or .xlsx file")
	}

	if err != nil {
		return nil, errors.BadRequestError("Failed to read spreadsheet").WithError(err)
	}

	summary := &models.ImportSummary{}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome, err := s.importRow(ctx, row)
		if err != nil {
			summary.Errors = append(summary.Errors, models.ImportError{Row: row.number, Message: err.Error()})
			continue
		}

		switch outcome {
		case rowInserted:
			summary.Inserted++
		case rowUpdated:
			summary.Updated++
		default:
			summary.Skipped++
		}
	}

	logger.Info("Spreadsheet imported",
		"file", filename,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors))

	return summary, nil
}

type rowOutcome int

const (
	rowSkipped rowOutcome = iota
	rowInserted
	rowUpdated
)

// importRow updates the product matched by ID, then by ASIN, or inserts a
// new one. Blank cells leave the stored value alone.
func (s *importService) importRow(ctx context.Context, row sheetRow) (rowOutcome, error) {

	var id int64
	values := models.ProductPatch{}

	for header, cell := range row.cells {
		key, ok := headerKeys[header]
		if !ok || cell == "" {
			continue
		}

		if key == "id" {
			n, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return rowSkipped, fmt.Errorf("ID %q is not a number", cell)
			}
			id = n
			continue
		}

		v, err := s.cellValue(key, cell)
		if err != nil {
			return rowSkipped, fmt.Errorf("%s: %w", header, err)
		}
		values[key] = v
	}

	if len(values) == 0 {
		return rowSkipped, nil
	}

	patch, err := values.Normalize()
	if err != nil {
		return rowSkipped, err
	}

	existing, err := s.match(ctx, id, patch)
	if err != nil {
		return rowSkipped, err
	}

	if existing != nil {
		if _, err := s.products.PatchProduct(ctx, existing.ID, patch); err != nil {
			return rowSkipped, err
		}

		return rowUpdated, nil
	}

	if _, hasTitle := patch["title"]; !hasTitle {
		if _, hasASIN := patch["asin"]; !hasASIN {
			return rowSkipped, nil
		}
	}

	product := &models.Product{}
	patch.ApplyTo(product)

	if _, err := s.products.CreateProduct(ctx, product); err != nil {
		return rowSkipped, err
	}

	return rowInserted, nil
}

func (s *importService) match(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {

	if id > 0 {
		p, err := s.products.GetProductByID(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}

	asin, _ := patch["asin"].(string)
	if asin == "" {
		return nil, nil
	}

	p, err := s.repo.FindByASIN(ctx, asin)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}

		return nil, errors.DatabaseError("Failed to look up ASIN").WithError(err)
	}

	return p, nil
}

// cellValue converts spreadsheet text into a value Normalize accepts.
func (s *importService) cellValue(key, cell string) (any, error) {
	spec, _ := models.LookupField(key)

	switch spec.Kind {
	case models.FieldBool:
		return parseFlag(cell)
	case models.FieldTimestamp:
		return models.ParseTimestampIn(cell, s.loc)
	case models.FieldTextList:
		parts := strings.Split(cell, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}

		return out, nil
	}

	if key == "exp_date" {
		return strings.TrimPrefix(cell, "'"), nil
	}

	return cell, nil
}

func parseFlag(cell string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "yes", "y", "1", "x":
		return true, nil
	case "false", "no", "n", "0":
		return false, nil
	}

	return false, fmt.Errorf("expected yes or no, got %q", cell)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseCSV(file io.Reader) ([]sheetRow, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var rows []sheetRow
	line := 1

	for {
		record, err := reader.Read()
		if stdErrors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line, err)
		}

		rows = append(rows, sheetRow{number: line, cells: zipRow(headers, record)})
	}

	return rows, nil
}

func parseXLSX(file io.Reader) ([]sheetRow, error) {
	book, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	sheet := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, "Products") {
			sheet = name
			break
		}
	}

	records, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	rows := make([]sheetRow, 0, len(records)-1)
	for i, record := range records[1:] {
		rows = append(rows, sheetRow{number: i + 2, cells: zipRow(records[0], record)})
	}

	return rows, nil
}

func zipRow(headers, record []string) map[string]string {
	cells := make(map[string]string, len(headers))
	for i, value := range record {
		if i < len(headers) {
			header := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(headers[i])), " *")
			cells[header] = strings.TrimSpace(value)
		}
	}

	return cells
}
