package mongostore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
)

type productDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Slug        string        `bson:"slug"`
	Locale      string        `bson:"locale"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	Category    string        `bson:"category"`
	Image       string        `bson:"image"`
	Gallery     []string      `bson:"gallery"`
	Weight      string        `bson:"weight"`
	MinOrder    string        `bson:"minOrder"`
	Grade       string        `bson:"grade"`
	Featured    bool          `bson:"featured"`
	New         bool          `bson:"new"`
	Active      bool          `bson:"active"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func (d productDoc) toDomain() domain.Product {
	gallery := d.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return domain.Product{
		ID: idString(d.ID), Slug: d.Slug, Locale: domain.Locale(d.Locale),
		Name: d.Name, Description: d.Description, Category: d.Category,
		Image: d.Image, Gallery: gallery, Weight: d.Weight, MinOrder: d.MinOrder, Grade: d.Grade,
		Featured: d.Featured, New: d.New, Active: d.Active,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func fromProduct(p domain.Product, id bson.ObjectID) productDoc {
	gallery := p.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	return productDoc{
		ID: id, Slug: p.Slug, Locale: string(p.Locale),
		Name: p.Name, Description: p.Description, Category: p.Category,
		Image: p.Image, Gallery: gallery, Weight: p.Weight, MinOrder: p.MinOrder, Grade: p.Grade,
		Featured: p.Featured, New: p.New, Active: p.Active,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// productFilter translates a listing query into a find filter.
func productFilter(q domain.ProductQuery) bson.D {
	f := bson.D{}
	if !q.AllLocales {
		f = append(f, bson.E{Key: "locale", Value: string(q.Locale)})
	}
	if q.ActiveOnly {
		f = append(f, bson.E{Key: "active", Value: true})
	}
	if q.Category != "" {
		f = append(f, bson.E{Key: "category", Value: q.Category})
	}
	if q.Featured != nil {
		f = append(f, bson.E{Key: "featured", Value: *q.Featured})
	}
	if q.New != nil {
		f = append(f, bson.E{Key: "new", Value: *q.New})
	}
	if q.Exclude != "" {
		f = append(f, bson.E{Key: "slug", Value: bson.D{{Key: "$ne", Value: q.Exclude}}})
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		f = append(f, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "slug", Value: re}},
		}})
	}
	return f
}

func productSort(sort string) bson.D {
	switch sort {
	case domain.SortOldest:
		return bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortName:
		return bson.D{{Key: "name", Value: 1}, {Key: "slug", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	}
}

// nameCollation folds case for name ordering, matching the sqlite
// LOWER(name) order for ASCII names. Nil for date sorts.
func nameCollation(q domain.ProductQuery) *options.Collation {
	if q.Sort != domain.SortName {
		return nil
	}
	loc := string(q.Locale)
	if q.AllLocales || loc == "" {
		loc = string(domain.LocaleEN)
	}
	return &options.Collation{Locale: loc, Strength: 2}
}

type ProductStore struct{ coll *mongo.Collection }

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(productsColl)}
}

func (s *ProductStore) ListProducts(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	filter := productFilter(q)
	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(productSort(q.Sort))
	if c := nameCollation(q); c != nil {
		opts.SetCollation(c)
	}
	if q.Limit > 0 {
		opts.SetSkip(int64(q.Offset())).SetLimit(int64(q.Limit))
	}
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, int(total), nil
}

func (s *ProductStore) GetProduct(ctx context.Context, slug string, locale domain.Locale) (domain.Product, error) {
	var d productDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "slug", Value: slug}, {Key: "locale", Value: string(locale)}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, errs.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return d.toDomain(), nil
}

func (s *ProductStore) ProductPair(ctx context.Context, slug string) ([]domain.Product, error) {
	docs, err := s.pairDocs(ctx, slug)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	domain.SortProductPair(out)
	return out, nil
}

func (s *ProductStore) pairDocs(ctx context.Context, slug string) ([]productDoc, error) {
	cur, err := s.coll.Find(ctx, bson.D{{Key: "slug", Value: slug}})
	if err != nil {
		return nil, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *ProductStore) ProductSlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "slug", Value: slug}}, options.Count().SetLimit(1))
	return n > 0, err
}

// InsertProductPair inserts each locale document in turn. Document ids are
// assigned by the store.
func (s *ProductStore) InsertProductPair(ctx context.Context, docs []domain.Product) error {
	for i, p := range docs {
		if _, err := s.coll.InsertOne(ctx, fromProduct(p, bson.NewObjectID())); err != nil {
			if mongo.IsDuplicateKeyError(err) && i == 0 {
				return errs.ErrDuplicate
			}
			if i > 0 {
				return &errs.PartialWriteError{Op: "insert product", Slug: p.Slug, Written: i, Err: err}
			}
			return err
		}
	}
	return nil
}

func (s *ProductStore) UpdateProductPair(ctx context.Context, slug string, patch domain.ProductPatch, now time.Time) (int, error) {
	docs, err := s.pairDocs(ctx, slug)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, errs.ErrNotFound
	}
	for i, d := range docs {
		p := d.toDomain()
		patch.Apply(&p, now)
		_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: d.ID}}, fromProduct(p, d.ID))
		if err == nil {
			continue
		}
		if i > 0 {
			return i, &errs.PartialWriteError{Op: "update product", Slug: slug, Written: i, Err: err}
		}
		if mongo.IsDuplicateKeyError(err) {
			return 0, errs.ErrDuplicate
		}
		return 0, err
	}
	return len(docs), nil
}

func (s *ProductStore) DeleteProductPair(ctx context.Context, slug string) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "slug", Value: slug}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}
