package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID          string `db:"id"`
	Slug        string `db:"slug"`
	Locale      string `db:"locale"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Category    string `db:"category"`
	Image       string `db:"image"`
	GalleryJSON string `db:"gallery_json"`
	Weight      string `db:"weight"`
	MinOrder    string `db:"min_order"`
	Grade       string `db:"grade"`
	Featured    bool   `db:"featured"`
	New         bool   `db:"is_new"`
	Active      bool   `db:"active"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

const productColumns = `id, slug, locale, name, description, category, image, gallery_json,
    weight, min_order, grade, featured, is_new, active, created_at, updated_at`

func (r productRow) toDomain() domain.Product {
	gallery := []string{}
	_ = json.Unmarshal([]byte(r.GalleryJSON), &gallery)
	return domain.Product{
		ID: r.ID, Slug: r.Slug, Locale: domain.Locale(r.Locale),
		Name: r.Name, Description: r.Description, Category: r.Category,
		Image: r.Image, Gallery: gallery, Weight: r.Weight, MinOrder: r.MinOrder, Grade: r.Grade,
		Featured: r.Featured, New: r.New, Active: r.Active,
		CreatedAt: parseTS(r.CreatedAt), UpdatedAt: parseTS(r.UpdatedAt),
	}
}

func fromProduct(p domain.Product) productRow {
	gallery := p.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	g, _ := json.Marshal(gallery)
	return productRow{
		ID: p.ID, Slug: p.Slug, Locale: string(p.Locale),
		Name: p.Name, Description: p.Description, Category: p.Category,
		Image: p.Image, GalleryJSON: string(g), Weight: p.Weight, MinOrder: p.MinOrder, Grade: p.Grade,
		Featured: p.Featured, New: p.New, Active: p.Active,
		CreatedAt: formatTS(p.CreatedAt), UpdatedAt: formatTS(p.UpdatedAt),
	}
}

func productWhere(q domain.ProductQuery) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	if !q.AllLocales {
		where = append(where, "locale = ?")
		args = append(args, string(q.Locale))
	}
	if q.ActiveOnly {
		where = append(where, "active = 1")
	}
	if q.Category != "" {
		where = append(where, "category = ?")
		args = append(args, q.Category)
	}
	if q.Featured != nil {
		where = append(where, "featured = ?")
		args = append(args, *q.Featured)
	}
	if q.New != nil {
		where = append(where, "is_new = ?")
		args = append(args, *q.New)
	}
	if q.Exclude != "" {
		where = append(where, "slug <> ?")
		args = append(args, q.Exclude)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		pat := likePattern(s)
		where = append(where, `(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(slug) LIKE ? ESCAPE '\')`)
		args = append(args, pat, pat, pat)
	}
	return strings.Join(where, " AND "), args
}

func productOrder(sort string) string {
	switch sort {
	case domain.SortOldest:
		return "created_at ASC, rowid ASC"
	case domain.SortName:
		return "LOWER(name) ASC, slug ASC"
	default:
		return "created_at DESC, rowid DESC"
	}
}

// List returns one page of matching documents and the total match count.
func (r *ProductRepo) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	where, args := productWhere(q)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM products WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` + where + ` ORDER BY ` + productOrder(q.Sort)
	if q.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, q.Limit, q.Offset())
	}
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, total, nil
}

func (r *ProductRepo) GetProduct(ctx context.Context, slug string, locale domain.Locale) (domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `SELECT `+productColumns+` FROM products WHERE slug = ? AND locale = ?`, slug, string(locale))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, errs.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return row.toDomain(), nil
}

// ProductPair returns every locale document sharing slug, en first.
func (r *ProductRepo) ProductPair(ctx context.Context, slug string) ([]domain.Product, error) {
	return selectProductPair(ctx, r.db, slug)
}

func selectProductPair(ctx context.Context, q sqlx.QueryerContext, slug string) ([]domain.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, q, &rows, `SELECT `+productColumns+` FROM products WHERE slug = ?`, slug); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	domain.SortProductPair(out)
	return out, nil
}

func (r *ProductRepo) ProductSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products WHERE slug = ?`, slug); err != nil {
		return false, err
	}
	return n > 0, nil
}

const insertProduct = `
  INSERT INTO products(` + productColumns + `)
  VALUES(:id, :slug, :locale, :name, :description, :category, :image, :gallery_json,
         :weight, :min_order, :grade, :featured, :is_new, :active, :created_at, :updated_at)`

// InsertProductPair writes all locale documents in one transaction.
func (r *ProductRepo) InsertProductPair(ctx context.Context, docs []domain.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range docs {
		if _, err := tx.NamedExecContext(ctx, insertProduct, fromProduct(p)); err != nil {
			if isUniqueViolation(err) {
				return errs.ErrDuplicate
			}
			return fmt.Errorf("insert product %s/%s: %w", p.Slug, p.Locale, err)
		}
	}
	return tx.Commit()
}

// UpdateProductPair applies patch to every document of slug inside one
// transaction and returns how many documents were updated.
func (r *ProductRepo) UpdateProductPair(ctx context.Context, slug string, patch domain.ProductPatch, now time.Time) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	docs, err := selectProductPair(ctx, tx, slug)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, errs.ErrNotFound
	}
	for i := range docs {
		patch.Apply(&docs[i], now)
		row := fromProduct(docs[i])
		_, err := tx.NamedExecContext(ctx, `
		  UPDATE products SET
		    slug = :slug, name = :name, description = :description, category = :category,
		    image = :image, gallery_json = :gallery_json, weight = :weight, min_order = :min_order,
		    grade = :grade, featured = :featured, is_new = :is_new, active = :active, updated_at = :updated_at
		  WHERE id = :id`, row)
		if isUniqueViolation(err) {
			return 0, errs.ErrDuplicate
		}
		if err != nil {
			return 0, fmt.Errorf("update product %s/%s: %w", slug, docs[i].Locale, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (r *ProductRepo) DeleteProductPair(ctx context.Context, slug string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE slug = ?`, slug)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
