package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/export"
)

type ExportRequest struct {
	IDs     []string      `json:"ids" validate:"required,min=1"`
	Columns []string      `json:"columns"`
	Format  export.Format `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService interface {
	Export(ctx context.Context, userID uuid.UUID, req *ExportRequest) (*ExportFile, error)
}

type exportService struct {
	products ProductService
	prefs    PreferencesService
	now      func() time.Time
}

func NewExportService(products ProductService, prefs PreferencesService) ExportService {
	return &exportService{products: products, prefs: prefs, now: time.Now}
}

// Export renders the selection. Without explicit columns the user's visible
// columns are used; timestamps follow the user's display zone.
func (s *exportService) Export(ctx context.Context, userID uuid.UUID, req *ExportRequest) (*ExportFile, error) {

	prefs, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	columns := req.Columns
	if len(columns) == 0 {
		columns = prefs.VisibleColumns(export.ColumnKeys())
	}

	formatter, err := export.NewFormatterForZone(prefs.Timezone)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = export.FormatCSV
	}

	data, err := formatter.Export(format, products, req.IDs, columns)
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Filename:    export.Filename(format, s.now().In(formatter.Location())),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
