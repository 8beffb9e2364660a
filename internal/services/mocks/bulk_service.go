package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/bulk"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// BulkService is a mock type for the BulkService type
type BulkService struct {
	mock.Mock
}

func (_m *BulkService) ApplyBulkEdit(ctx context.Context, userID uuid.UUID, ids []string, field, value string) (bulk.Result, error) {
	ret := _m.Called(ctx, userID, ids, field, value)

	return ret.Get(0).(bulk.Result), ret.Error(1)
}

func (_m *BulkService) ApplyStockChange(ctx context.Context, userID uuid.UUID, ids []string, outOfStock bool) (*bulk.UndoRecord, bulk.Result, error) {
	ret := _m.Called(ctx, userID, ids, outOfStock)

	var rec *bulk.UndoRecord
	if v := ret.Get(0); v != nil {
		rec = v.(*bulk.UndoRecord)
	}

	return rec, ret.Get(1).(bulk.Result), ret.Error(2)
}

func (_m *BulkService) Undo(ctx context.Context, userID uuid.UUID) (bulk.UndoRecord, bulk.Result, error) {
	ret := _m.Called(ctx, userID)

	return ret.Get(0).(bulk.UndoRecord), ret.Get(1).(bulk.Result), ret.Error(2)
}

func (_m *BulkService) History(userID uuid.UUID) []bulk.UndoRecord {
	ret := _m.Called(userID)

	if v := ret.Get(0); v != nil {
		return v.([]bulk.UndoRecord)
	}

	return nil
}

func (_m *BulkService) Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*models.ImportSummary, error) {
	return summaryResult(_m.Called(ctx, userID, filename, file))
}
