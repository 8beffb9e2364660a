package mocks

import (
	"context"

	"github.com/google/uuid"
	service "github.com/nppdeals/inventory-platform/internal/services"
	"github.com/stretchr/testify/mock"
)

// ExportService is a mock type for the ExportService type
type ExportService struct {
	mock.Mock
}

func (_m *ExportService) Export(ctx context.Context, userID uuid.UUID, req *service.ExportRequest) (*service.ExportFile, error) {
	ret := _m.Called(ctx, userID, req)

	var file *service.ExportFile
	if v := ret.Get(0); v != nil {
		file = v.(*service.ExportFile)
	}

	return file, ret.Error(1)
}
