package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
)

type categoryDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Slug      string        `bson:"slug"`
	Locale    string        `bson:"locale"`
	Name      string        `bson:"name"`
	Icon      string        `bson:"icon"`
	Order     int           `bson:"order"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d categoryDoc) toDomain() domain.Category {
	return domain.Category{
		ID: idString(d.ID), Slug: d.Slug, Locale: domain.Locale(d.Locale), Name: d.Name,
		Icon: d.Icon, Order: d.Order, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func fromCategory(c domain.Category, id bson.ObjectID) categoryDoc {
	return categoryDoc{
		ID: id, Slug: c.Slug, Locale: string(c.Locale), Name: c.Name,
		Icon: c.Icon, Order: c.Order, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func categoryFilter(q domain.CategoryQuery) bson.D {
	if q.AllLocales {
		return bson.D{}
	}
	return bson.D{{Key: "locale", Value: string(q.Locale)}}
}

var categorySort = bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}, {Key: "locale", Value: 1}}

type CategoryStore struct{ coll *mongo.Collection }

func NewCategoryStore(db *mongo.Database) *CategoryStore {
	return &CategoryStore{coll: db.Collection(categoriesColl)}
}

func (s *CategoryStore) ListCategories(ctx context.Context, q domain.CategoryQuery) ([]domain.Category, error) {
	cur, err := s.coll.Find(ctx, categoryFilter(q), options.Find().SetSort(categorySort))
	if err != nil {
		return nil, err
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *CategoryStore) GetCategory(ctx context.Context, slug string, locale domain.Locale) (domain.Category, error) {
	var d categoryDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "slug", Value: slug}, {Key: "locale", Value: string(locale)}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Category{}, errs.ErrNotFound
	}
	if err != nil {
		return domain.Category{}, err
	}
	return d.toDomain(), nil
}

func (s *CategoryStore) pairDocs(ctx context.Context, slug string) ([]categoryDoc, error) {
	cur, err := s.coll.Find(ctx, bson.D{{Key: "slug", Value: slug}})
	if err != nil {
		return nil, err
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *CategoryStore) CategoryPair(ctx context.Context, slug string) ([]domain.Category, error) {
	docs, err := s.pairDocs(ctx, slug)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	domain.SortCategoryPair(out)
	return out, nil
}

func (s *CategoryStore) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "slug", Value: slug}}, options.Count().SetLimit(1))
	return n > 0, err
}

func (s *CategoryStore) InsertCategoryPair(ctx context.Context, docs []domain.Category) error {
	for i, c := range docs {
		_, err := s.coll.InsertOne(ctx, fromCategory(c, bson.NewObjectID()))
		if err == nil {
			continue
		}
		if i > 0 {
			return &errs.PartialWriteError{Op: "insert category", Slug: c.Slug, Written: i, Err: err}
		}
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *CategoryStore) UpdateCategoryPair(ctx context.Context, slug string, patch domain.CategoryPatch, now time.Time) (int, error) {
	docs, err := s.pairDocs(ctx, slug)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, errs.ErrNotFound
	}
	for i, d := range docs {
		c := d.toDomain()
		patch.Apply(&c, now)
		_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: d.ID}}, fromCategory(c, d.ID))
		if err == nil {
			continue
		}
		if i > 0 {
			return i, &errs.PartialWriteError{Op: "update category", Slug: slug, Written: i, Err: err}
		}
		if mongo.IsDuplicateKeyError(err) {
			return 0, errs.ErrDuplicate
		}
		return 0, err
	}
	return len(docs), nil
}

// DeleteCategoryPair leaves products referencing slug untouched.
func (s *CategoryStore) DeleteCategoryPair(ctx context.Context, slug string) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{{Key: "slug", Value: slug}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}
