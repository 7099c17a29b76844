// Package mongostore implements the content, inquiry and wishlist stores on
// MongoDB. Locale pairs are written with sequential single-document
// operations: a failure between the two writes is reported as an
// errs.PartialWriteError and nothing is rolled back.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	productsColl   = "products"
	categoriesColl = "categories"
	inquiriesColl  = "inquiries"
	wishlistColl   = "wishlist_kv"
)

// Connect dials uri, verifies the deployment answers and ensures indexes.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(10 * time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(dbName)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

// EnsureIndexes creates the unique (slug, locale) keys and lookup indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	slugLocale := mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}, {Key: "locale", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	specs := map[string][]mongo.IndexModel{
		productsColl: {
			slugLocale,
			{Keys: bson.D{{Key: "locale", Value: 1}, {Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		categoriesColl: {slugLocale},
		inquiriesColl:  {{Keys: bson.D{{Key: "createdAt", Value: -1}}}},
		wishlistColl: {{
			Keys:    bson.D{{Key: "session", Value: 1}, {Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo indexes %s: %w", coll, err)
		}
	}
	return nil
}

func idString(id bson.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}
