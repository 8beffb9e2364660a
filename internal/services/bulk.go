package service

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/nppdeals/inventory-platform/internal/bulk"
	"github.com/nppdeals/inventory-platform/internal/config"
	"github.com/nppdeals/inventory-platform/internal/models"
)

// BulkService keeps one coordinator per signed-in user so that every admin
// has a private undo history.
type BulkService interface {
	ApplyBulkEdit(ctx context.Context, userID uuid.UUID, ids []string, field, value string) (bulk.Result, error)
	ApplyStockChange(ctx context.Context, userID uuid.UUID, ids []string, outOfStock bool) (*bulk.UndoRecord, bulk.Result, error)
	Undo(ctx context.Context, userID uuid.UUID) (bulk.UndoRecord, bulk.Result, error)
	History(userID uuid.UUID) []bulk.UndoRecord
	Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*models.ImportSummary, error)
}

type bulkService struct {
	client   bulk.Client
	opts     []bulk.Option
	mu       sync.Mutex
	sessions map[uuid.UUID]*bulk.Coordinator
}

func NewBulkService(products ProductService, importer ImportService, cfg config.Bulk, observer bulk.Observer) BulkService {
	opts := []bulk.Option{
		bulk.WithUndoDepth(cfg.UndoDepth),
		bulk.WithConcurrency(cfg.Concurrency),
	}
	if observer != nil {
		opts = append(opts, bulk.WithObserver(observer))
	}

	return &bulkService{
		client:   &bulkClient{products: products, importer: importer},
		opts:     opts,
		sessions: map[uuid.UUID]*bulk.Coordinator{},
	}
}

func (s *bulkService) session(userID uuid.UUID) *bulk.Coordinator {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.sessions[userID]
	if !ok {
		c = bulk.NewCoordinator(s.client, s.opts...)
		s.sessions[userID] = c
	}

	return c
}

// fresh reloads the collection so selections and undo snapshots reflect
// writes made by other sessions.
func (s *bulkService) fresh(ctx context.Context, userID uuid.UUID) (*bulk.Coordinator, error) {
	c := s.session(userID)
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *bulkService) ApplyBulkEdit(ctx context.Context, userID uuid.UUID, ids []string, field, value string) (bulk.Result, error) {
	if _, err := bulk.Coerce(field, value); err != nil {
		return bulk.Result{}, err
	}

	c, err := s.fresh(ctx, userID)
	if err != nil {
		return bulk.Result{}, err
	}

	return c.ApplyBulkEdit(ctx, ids, field, value)
}

func (s *bulkService) ApplyStockChange(ctx context.Context, userID uuid.UUID, ids []string, outOfStock bool) (*bulk.UndoRecord, bulk.Result, error) {
	c, err := s.fresh(ctx, userID)
	if err != nil {
		return nil, bulk.Result{}, err
	}

	return c.ApplyBulkStockChange(ctx, ids, outOfStock)
}

func (s *bulkService) Undo(ctx context.Context, userID uuid.UUID) (bulk.UndoRecord, bulk.Result, error) {
	return s.session(userID).Undo(ctx)
}

func (s *bulkService) History(userID uuid.UUID) []bulk.UndoRecord {
	return s.session(userID).History()
}

func (s *bulkService) Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*models.ImportSummary, error) {
	return s.session(userID).Upload(ctx, filename, file)
}

// bulkClient runs the coordinator against the in-process services.
type bulkClient struct {
	products ProductService
	importer ImportService
}

func (c *bulkClient) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return c.products.ListAllProducts(ctx)
}

func (c *bulkClient) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {
	return c.products.PatchProduct(ctx, id, patch)
}

func (c *bulkClient) UploadProducts(ctx context.Context, filename string, file io.Reader) (*models.ImportSummary, error) {
	return c.importer.Import(ctx, filename, file)
}
