package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"arcticfresh/internal/wishlist"
)

const opTimeout = 5 * time.Second

// WishlistStore keeps per-session wishlist values in one collection.
type WishlistStore struct{ coll *mongo.Collection }

func NewWishlistStore(db *mongo.Database) *WishlistStore {
	return &WishlistStore{coll: db.Collection(wishlistColl)}
}

func (s *WishlistStore) Storage(sessionID string) wishlist.Storage {
	return &sessionKV{coll: s.coll, sid: sessionID}
}

type sessionKV struct {
	coll *mongo.Collection
	sid  string
}

func (s *sessionKV) key(k string) bson.D {
	return bson.D{{Key: "session", Value: s.sid}, {Key: "key", Value: k}}
}

func (s *sessionKV) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	var doc struct {
		Value string `bson:"value"`
	}
	err := s.coll.FindOne(ctx, s.key(key)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, wishlist.ErrNoValue
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Value), nil
}

func (s *sessionKV) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "value", Value: string(value)},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	_, err := s.coll.UpdateOne(ctx, s.key(key), update, options.UpdateOne().SetUpsert(true))
	return err
}

func (s *sessionKV) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_, err := s.coll.DeleteOne(ctx, s.key(key))
	return err
}
