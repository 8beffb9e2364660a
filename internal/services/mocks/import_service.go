package mocks

import (
	"context"
	"io"

	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// ImportService is a mock type for the ImportService type
type ImportService struct {
	mock.Mock
}

func summaryResult(ret mock.Arguments) (*models.ImportSummary, error) {
	var summary *models.ImportSummary
	if v := ret.Get(0); v != nil {
		summary = v.(*models.ImportSummary)
	}

	return summary, ret.Error(1)
}

func (_m *ImportService) Import(ctx context.Context, filename string, file io.Reader) (*models.ImportSummary, error) {
	return summaryResult(_m.Called(ctx, filename, file))
}
