package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/nppdeals/inventory-platform/internal/utils"
)

type ProductRepository interface {
	ListAll(ctx context.Context) ([]*models.Product, error)
	List(ctx context.Context, page int, size int) ([]*models.Product, int, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Product, error)
	FindByASIN(ctx context.Context, asin string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Replace(ctx context.Context, product *models.Product) error
	Patch(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	MarkOutOfStock(ctx context.Context, id int64) (*models.Product, error)
	Search(ctx context.Context, query string) ([]*models.Product, error)
	TouchLastSent(ctx context.Context, ids []int64, at time.Time) error
}

type productRepository struct {
	DB *sqlx.DB
}

func NewProductRepo(db *sqlx.DB) ProductRepository {
	return &productRepository{DB: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// productColumns is the select list. Text and flag columns are coalesced so
// rows written by older imports with NULLs scan into plain strings.
var productColumns = buildProductColumns()

func buildProductColumns() []string {
	cols := make([]string, 0, len(models.ProductFields))

	for _, f := range models.ProductFields {
		switch f.Kind {
		case models.FieldText:
			cols = append(cols, fmt.Sprintf("COALESCE(%s, '') AS %s", f.Key, f.Key))
		case models.FieldBool:
			cols = append(cols, fmt.Sprintf("COALESCE(%s, false) AS %s", f.Key, f.Key))
		default:
			cols = append(cols, f.Key)
		}
	}

	return cols
}

func returningProduct() string {
	return "RETURNING " + strings.Join(productColumns, ", ")
}

// productRecord maps every writable column to its value.
func productRecord(p *models.Product) map[string]any {
	return map[string]any{
		"title":             p.Title,
		"category":          p.Category,
		"vendor_id":         p.VendorID,
		"vendor":            p.Vendor,
		"price":             p.Price,
		"cost":              p.Cost,
		"moq":               p.MOQ,
		"qty":               p.Qty,
		"upc":               p.UPC,
		"asin":              p.ASIN,
		"sku":               p.SKU,
		"lead_time":         p.LeadTime,
		"exp_date":          p.ExpDate,
		"fob":               p.FOB,
		"image_url":         p.ImageURL,
		"secondary_images":  p.SecondaryImages,
		"amazon_url":        p.AmazonURL,
		"walmart_url":       p.WalmartURL,
		"ebay_url":          p.EbayURL,
		"out_of_stock":      p.OutOfStock,
		"offer_date":        p.OfferDate,
		"last_sent":         p.LastSent,
		"brand":             p.Brand,
		"color":             p.Color,
		"material":          p.Material,
		"room_type":         p.RoomType,
		"style":             p.Style,
		"condition":         p.Condition,
		"width":             p.Width,
		"depth":             p.Depth,
		"height":            p.Height,
		"weight":            p.Weight,
		"warranty":          p.Warranty,
		"assembly_required": p.AssemblyRequired,
	}
}

func (r *productRepository) selectProducts(ctx context.Context, builder sq.SelectBuilder) ([]*models.Product, error) {

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	products := []*models.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ListAll(ctx context.Context) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.selectProducts(dbCtx, psql.Select(productColumns...).From("products").OrderBy("id"))
}

func (r *productRepository) List(ctx context.Context, page int, size int) ([]*models.Product, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.GetContext(dbCtx, &total, `SELECT COUNT(*) FROM products`); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	products, err := r.selectProducts(dbCtx, psql.Select(productColumns...).
		From("products").
		OrderBy("offer_date DESC NULLS LAST", "id DESC").
		Limit(uint64(size)).
		Offset(uint64(offset)))
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) get(ctx context.Context, where sq.Sqlizer) (*models.Product, error) {

	query, args, err := psql.Select(productColumns...).From("products").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	product := &models.Product{}
	if err := r.DB.GetContext(ctx, product, query, args...); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.get(dbCtx, sq.Eq{"id": id})
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return r.selectProducts(dbCtx, psql.Select(productColumns...).
		From("products").
		Where("id = ANY(?)", pq.Array(ids)).
		OrderBy("id"))
}

// FindByASIN returns the lowest-id product carrying asin.
func (r *productRepository) FindByASIN(ctx context.Context, asin string) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(sq.Eq{"asin": asin}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	product := &models.Product{}
	if err := r.DB.GetContext(dbCtx, product, query, args...); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query, args, err := psql.Insert("products").
		SetMap(productRecord(product)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	return r.DB.QueryRowxContext(dbCtx, query, args...).Scan(&product.ID)
}

// Replace overwrites every writable column of product.
func (r *productRepository) Replace(ctx context.Context, product *models.Product) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query, args, err := psql.Update("products").
		SetMap(productRecord(product)).
		Where(sq.Eq{"id": product.ID}).
		Suffix(returningProduct()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update: %w", err)
	}

	return r.DB.QueryRowxContext(dbCtx, query, args...).StructScan(product)
}

// Patch writes only the columns present in patch. A nil value stores NULL.
func (r *productRepository) Patch(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if len(patch) == 0 {
		return r.get(dbCtx, sq.Eq{"id": id})
	}

	query, args, err := psql.Update("products").
		SetMap(map[string]any(patch)).
		Where(sq.Eq{"id": id}).
		Suffix(returningProduct()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update: %w", err)
	}

	product := &models.Product{}
	if err := r.DB.QueryRowxContext(dbCtx, query, args...).StructScan(product); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) MarkOutOfStock(ctx context.Context, id int64) (*models.Product, error) {
	return r.Patch(ctx, id, models.ProductPatch{"out_of_stock": true})
}

// Search matches query case-insensitively against title, category, ASIN and UPC.
func (r *productRepository) Search(ctx context.Context, query string) ([]*models.Product, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pattern := "%" + strings.TrimSpace(query) + "%"

	return r.selectProducts(dbCtx, psql.Select(productColumns...).
		From("products").
		Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"category": pattern},
			sq.ILike{"asin": pattern},
			sq.ILike{"upc": pattern},
		}).
		OrderBy("id"))
}

func (r *productRepository) TouchLastSent(ctx context.Context, ids []int64, at time.Time) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(dbCtx, `UPDATE products SET last_sent = $1 WHERE id = ANY($2)`, at, pq.Array(ids))

	return err
}
