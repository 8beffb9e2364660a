// Package bulk applies one logical change across a selection of products
// and keeps an undo log for stock status changes.
package bulk

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

// Client is the product access path used by the coordinator. Both the HTTP
// client and the in-process product service satisfy it.
type Client interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
	UploadProducts(ctx context.Context, filename string, file io.Reader) (*models.ImportSummary, error)
}

// Observer is notified once per finished batch.
type Observer interface {
	ObserveBulk(op string, succeeded, failed int)
}

type FailureKind string

const (
	FailureNotFound       FailureKind = "not_found"
	FailureReauthenticate FailureKind = "reauthenticate"
	FailureInvalid        FailureKind = "invalid"
	FailureOther          FailureKind = "failed"
)

type Failure struct {
	ID      string      `json:"id"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Result is the per-id outcome of a batch.
type Result struct {
	Succeeded      []string  `json:"succeeded"`
	Failed         []Failure `json:"failed"`
	Reauthenticate bool      `json:"reauthenticate"`
}

func (r Result) OK() bool {
	return len(r.Failed) == 0
}

type Coordinator struct {
	client      Client
	undo        *UndoStack
	concurrency int
	now         func() time.Time
	observer    Observer

	// opMu serialises batches so the undo stack and the collection stay in step.
	opMu     sync.Mutex
	products []*models.Product
	loaded   bool
}

type Option func(*Coordinator)

func WithUndoDepth(depth int) Option {
	return func(c *Coordinator) {
		c.undo = NewUndoStack(depth)
	}
}

// WithConcurrency bounds the number of in-flight update calls per batch.
func WithConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

func WithObserver(o Observer) Option {
	return func(c *Coordinator) {
		c.observer = o
	}
}

func NewCoordinator(client Client, opts ...Option) *Coordinator {
	c := &Coordinator{
		client:      client,
		undo:        NewUndoStack(DefaultUndoDepth),
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Reload replaces the in-memory collection with the store's current state.
func (c *Coordinator) Reload(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	return c.reload(ctx)
}

func (c *Coordinator) reload(ctx context.Context) error {
	products, err := c.client.ListProducts(ctx)
	if err != nil {
		return err
	}

	c.products = products
	c.loaded = true

	return nil
}

// Products returns the collection as last loaded or updated.
func (c *Coordinator) Products() []*models.Product {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	out := make([]*models.Product, len(c.products))
	copy(out, c.products)

	return out
}

func (c *Coordinator) History() []UndoRecord {
	return c.undo.Records()
}

// ApplyBulkEdit writes one field on every selected product. The value is
// coerced once; a bad value fails the batch before any update is issued.
func (c *Coordinator) ApplyBulkEdit(ctx context.Context, ids []string, field, raw string) (Result, error) {
	value, err := Coerce(field, raw)
	if err != nil {
		return Result{}, err
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	targets, missing, err := c.resolve(ctx, ids)
	if err != nil {
		return Result{}, err
	}

	patch := models.ProductPatch{field: value}
	outcomes := c.fanOut(ctx, targets, func(int64) models.ProductPatch { return patch })
	result := c.collect(ids, outcomes, missing)

	c.observe("edit", result)

	return result, nil
}

// ApplyBulkStockChange sets out_of_stock on every selected product and
// pushes an undo record holding the prior values of the ones that changed.
// The record is nil when no update succeeded.
func (c *Coordinator) ApplyBulkStockChange(ctx context.Context, ids []string, outOfStock bool) (*UndoRecord, Result, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	targets, missing, err := c.resolve(ctx, ids)
	if err != nil {
		return nil, Result{}, err
	}

	prior := make(map[int64]bool, len(targets))
	for _, p := range c.products {
		prior[p.ID] = p.OutOfStock
	}

	patch := models.ProductPatch{"out_of_stock": outOfStock}
	outcomes := c.fanOut(ctx, targets, func(int64) models.ProductPatch { return patch })
	result := c.collect(ids, outcomes, missing)

	c.observe(string(stockOperation(outOfStock)), result)

	rec := UndoRecord{ID: uuid.New(), Operation: stockOperation(outOfStock), CreatedAt: c.now()}
	for _, o := range outcomes {
		if o.err == nil {
			rec.Entries = append(rec.Entries, Snapshot{ID: o.id, OutOfStock: prior[o.id]})
		}
	}

	if len(rec.Entries) == 0 {
		return nil, result, nil
	}

	c.undo.Push(rec)

	return &rec, result, nil
}

// Undo re-applies the prior values of the most recent stock change. The
// record leaves the stack only when every entry was restored; otherwise it
// stays with just the entries that still need restoring.
func (c *Coordinator) Undo(ctx context.Context) (UndoRecord, Result, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	rec, ok := c.undo.Peek()
	if !ok {
		return UndoRecord{}, Result{}, appErrors.NotFoundError("Nothing to undo")
	}

	prior := make(map[int64]bool, len(rec.Entries))
	targets := make([]int64, 0, len(rec.Entries))
	ids := make([]string, 0, len(rec.Entries))

	for _, e := range rec.Entries {
		prior[e.ID] = e.OutOfStock
		targets = append(targets, e.ID)
		ids = append(ids, strconv.FormatInt(e.ID, 10))
	}

	outcomes := c.fanOut(ctx, targets, func(id int64) models.ProductPatch {
		return models.ProductPatch{"out_of_stock": prior[id]}
	})
	result := c.collect(ids, outcomes, nil)

	c.observe("undo", result)

	if result.OK() {
		c.undo.Pop(rec.ID)
		return rec, result, nil
	}

	remaining := rec
	remaining.Entries = nil
	for _, o := range outcomes {
		if o.err != nil {
			remaining.Entries = append(remaining.Entries, Snapshot{ID: o.id, OutOfStock: prior[o.id]})
		}
	}

	c.undo.ReplaceTop(remaining)

	return rec, result, nil
}

// Upload hands the file to the import path and reloads the collection.
func (c *Coordinator) Upload(ctx context.Context, filename string, file io.Reader) (*models.ImportSummary, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	summary, err := c.client.UploadProducts(ctx, filename, file)
	if err != nil {
		return nil, err
	}

	if err := c.reload(ctx); err != nil {
		return summary, err
	}

	return summary, nil
}

// resolve maps selected ids onto the collection by their decimal string form.
// Ids with no matching product are returned in missing.
func (c *Coordinator) resolve(ctx context.Context, ids []string) ([]int64, map[string]bool, error) {
	if len(ids) == 0 {
		return nil, nil, appErrors.ValidationError("No products selected")
	}

	if !c.loaded {
		if err := c.reload(ctx); err != nil {
			return nil, nil, err
		}
	}

	byKey := make(map[string]int64, len(c.products))
	for _, p := range c.products {
		byKey[p.IDString()] = p.ID
	}

	targets := make([]int64, 0, len(ids))
	missing := map[string]bool{}
	seen := map[string]bool{}

	for _, raw := range ids {
		key := strings.TrimSpace(raw)
		if seen[key] {
			continue
		}
		seen[key] = true

		id, ok := byKey[key]
		if !ok {
			missing[key] = true
			continue
		}

		targets = append(targets, id)
	}

	return targets, missing, nil
}

type outcome struct {
	id      int64
	product *models.Product
	err     error
}

// fanOut issues one update per target and waits for every outcome. Each
// goroutine records its own result and never fails the group.
func (c *Coordinator) fanOut(ctx context.Context, targets []int64, patchFor func(int64) models.ProductPatch) []outcome {
	outcomes := make([]outcome, len(targets))

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, id := range targets {
		g.Go(func() error {
			p, err := c.client.UpdateProduct(ctx, id, patchFor(id))
			outcomes[i] = outcome{id: id, product: p, err: err}

			return nil
		})
	}

	_ = g.Wait()

	c.apply(outcomes)

	return outcomes
}

// apply folds successful updates back into the collection.
func (c *Coordinator) apply(outcomes []outcome) {
	updated := map[int64]*models.Product{}
	for _, o := range outcomes {
		if o.err == nil && o.product != nil {
			updated[o.id] = o.product
		}
	}

	for i, p := range c.products {
		if u, ok := updated[p.ID]; ok {
			c.products[i] = u
		}
	}
}

// collect orders the outcomes by the caller's selection.
func (c *Coordinator) collect(ids []string, outcomes []outcome, missing map[string]bool) Result {
	byKey := make(map[string]outcome, len(outcomes))
	for _, o := range outcomes {
		byKey[strconv.FormatInt(o.id, 10)] = o
	}

	result := Result{Succeeded: []string{}, Failed: []Failure{}}
	seen := map[string]bool{}

	for _, raw := range ids {
		key := strings.TrimSpace(raw)
		if seen[key] {
			continue
		}
		seen[key] = true

		if missing[key] {
			result.Failed = append(result.Failed, Failure{ID: key, Kind: FailureNotFound, Message: "Product not found"})
			continue
		}

		o, ok := byKey[key]
		if !ok {
			continue
		}

		if o.err == nil {
			result.Succeeded = append(result.Succeeded, key)
			continue
		}

		kind := classify(o.err)
		if kind == FailureReauthenticate {
			result.Reauthenticate = true
		}

		result.Failed = append(result.Failed, Failure{ID: key, Kind: kind, Message: o.err.Error()})
	}

	return result
}

func classify(err error) FailureKind {
	switch {
	case appErrors.IsReauthenticate(err):
		return FailureReauthenticate
	case appErrors.IsNotFound(err):
		return FailureNotFound
	}

	if appErr, ok := appErrors.IsAppError(err); ok &&
		(appErr.Code == appErrors.ErrCodeValidation || appErr.Code == appErrors.ErrCodeBadRequest) {
		return FailureInvalid
	}

	return FailureOther
}

func (c *Coordinator) observe(op string, r Result) {
	if c.observer != nil {
		c.observer.ObserveBulk(op, len(r.Succeeded), len(r.Failed))
	}
}
