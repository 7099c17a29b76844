package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

type categoryRow struct {
	ID        string `db:"id"`
	Slug      string `db:"slug"`
	Locale    string `db:"locale"`
	Name      string `db:"name"`
	Icon      string `db:"icon"`
	Order     int    `db:"sort_order"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

const categoryColumns = `id, slug, locale, name, icon, sort_order, created_at, updated_at`

func (r categoryRow) toDomain() domain.Category {
	return domain.Category{
		ID: r.ID, Slug: r.Slug, Locale: domain.Locale(r.Locale), Name: r.Name, Icon: r.Icon, Order: r.Order,
		CreatedAt: parseTS(r.CreatedAt), UpdatedAt: parseTS(r.UpdatedAt),
	}
}

func fromCategory(c domain.Category) categoryRow {
	return categoryRow{
		ID: c.ID, Slug: c.Slug, Locale: string(c.Locale), Name: c.Name, Icon: c.Icon, Order: c.Order,
		CreatedAt: formatTS(c.CreatedAt), UpdatedAt: formatTS(c.UpdatedAt),
	}
}

func (r *CategoryRepo) ListCategories(ctx context.Context, q domain.CategoryQuery) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	args := []any{}
	if !q.AllLocales {
		query += ` WHERE locale = ?`
		args = append(args, string(q.Locale))
	}
	query += ` ORDER BY sort_order ASC, name ASC, locale ASC`

	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CategoryRepo) GetCategory(ctx context.Context, slug string, locale domain.Locale) (domain.Category, error) {
	var row categoryRow
	err := r.db.GetContext(ctx, &row, `SELECT `+categoryColumns+` FROM categories WHERE slug = ? AND locale = ?`, slug, string(locale))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, errs.ErrNotFound
	}
	if err != nil {
		return domain.Category{}, err
	}
	return row.toDomain(), nil
}

func (r *CategoryRepo) CategoryPair(ctx context.Context, slug string) ([]domain.Category, error) {
	return selectCategoryPair(ctx, r.db, slug)
}

func selectCategoryPair(ctx context.Context, q sqlx.QueryerContext, slug string) ([]domain.Category, error) {
	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, q, &rows, `SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	domain.SortCategoryPair(out)
	return out, nil
}

func (r *CategoryRepo) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories WHERE slug = ?`, slug); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CategoryRepo) InsertCategoryPair(ctx context.Context, docs []domain.Category) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range docs {
		_, err := tx.NamedExecContext(ctx, `
		  INSERT INTO categories(`+categoryColumns+`)
		  VALUES(:id, :slug, :locale, :name, :icon, :sort_order, :created_at, :updated_at)`, fromCategory(c))
		if isUniqueViolation(err) {
			return errs.ErrDuplicate
		}
		if err != nil {
			return fmt.Errorf("insert category %s/%s: %w", c.Slug, c.Locale, err)
		}
	}
	return tx.Commit()
}

func (r *CategoryRepo) UpdateCategoryPair(ctx context.Context, slug string, patch domain.CategoryPatch, now time.Time) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	docs, err := selectCategoryPair(ctx, tx, slug)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, errs.ErrNotFound
	}
	for i := range docs {
		patch.Apply(&docs[i], now)
		_, err := tx.NamedExecContext(ctx, `
		  UPDATE categories SET slug = :slug, name = :name, icon = :icon, sort_order = :sort_order, updated_at = :updated_at
		  WHERE id = :id`, fromCategory(docs[i]))
		if isUniqueViolation(err) {
			return 0, errs.ErrDuplicate
		}
		if err != nil {
			return 0, fmt.Errorf("update category %s/%s: %w", slug, docs[i].Locale, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// DeleteCategoryPair removes the category documents only; products keep
// their (now dangling) category reference.
func (r *CategoryRepo) DeleteCategoryPair(ctx context.Context, slug string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE slug = ?`, slug)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
