package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"arcticfresh/internal/domain"
)

type inquiryDoc struct {
	ID        string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	Locale    string    `bson:"locale"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone,omitempty"`
	Company   string    `bson:"company,omitempty"`
	Country   string    `bson:"country,omitempty"`
	Subject   string    `bson:"subject,omitempty"`
	Message   string    `bson:"message,omitempty"`
	Products  []string  `bson:"products,omitempty"`
	Mailed    bool      `bson:"mailed"`
	CreatedAt time.Time `bson:"createdAt"`
}

type InquiryStore struct{ coll *mongo.Collection }

func NewInquiryStore(db *mongo.Database) *InquiryStore {
	return &InquiryStore{coll: db.Collection(inquiriesColl)}
}

func (s *InquiryStore) SaveInquiry(ctx context.Context, in domain.Inquiry) error {
	_, err := s.coll.InsertOne(ctx, inquiryDoc{
		ID: in.ID, Kind: in.Kind, Locale: string(in.Locale), Name: in.Name, Email: in.Email,
		Phone: in.Phone, Company: in.Company, Country: in.Country, Subject: in.Subject, Message: in.Message,
		Products: in.Products, Mailed: in.Mailed, CreatedAt: in.CreatedAt,
	})
	return err
}

func (s *InquiryStore) MarkMailed(ctx context.Context, id string) error {
	_, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: bson.D{{Key: "mailed", Value: true}}}})
	return err
}

func (s *InquiryStore) ListInquiries(ctx context.Context, limit int) ([]domain.Inquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []inquiryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Inquiry, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Inquiry{
			ID: d.ID, Kind: d.Kind, Locale: domain.Locale(d.Locale), Name: d.Name, Email: d.Email,
			Phone: d.Phone, Company: d.Company, Country: d.Country, Subject: d.Subject, Message: d.Message,
			Products: d.Products, Mailed: d.Mailed, CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}
