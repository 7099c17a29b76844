package repos

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"arcticfresh/internal/domain"
)

type InquiryRepo struct{ db *sqlx.DB }

func NewInquiryRepo(db *sqlx.DB) *InquiryRepo { return &InquiryRepo{db: db} }

type inquiryRow struct {
	ID           string `db:"id"`
	Kind         string `db:"kind"`
	Locale       string `db:"locale"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	Company      string `db:"company"`
	Country      string `db:"country"`
	Subject      string `db:"subject"`
	Message      string `db:"message"`
	ProductsJSON string `db:"products_json"`
	Mailed       bool   `db:"mailed"`
	CreatedAt    string `db:"created_at"`
}

// SaveInquiry inserts a new submission.
func (r *InquiryRepo) SaveInquiry(ctx context.Context, in domain.Inquiry) error {
	products := in.Products
	if products == nil {
		products = []string{}
	}
	pj, _ := json.Marshal(products)
	_, err := r.db.NamedExecContext(ctx, `
	  INSERT INTO inquiries
	    (id, kind, locale, name, email, phone, company, country, subject, message, products_json, mailed, created_at)
	  VALUES
	    (:id, :kind, :locale, :name, :email, :phone, :company, :country, :subject, :message, :products_json, :mailed, :created_at)
	`, inquiryRow{
		ID: in.ID, Kind: in.Kind, Locale: string(in.Locale), Name: in.Name, Email: in.Email,
		Phone: in.Phone, Company: in.Company, Country: in.Country, Subject: in.Subject, Message: in.Message,
		ProductsJSON: string(pj), Mailed: in.Mailed, CreatedAt: formatTS(in.CreatedAt),
	})
	return err
}

// MarkMailed flags a submission as relayed by email.
func (r *InquiryRepo) MarkMailed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE inquiries SET mailed = 1 WHERE id = ?`, id)
	return err
}

// ListInquiries returns the latest submissions, newest first.
func (r *InquiryRepo) ListInquiries(ctx context.Context, limit int) ([]domain.Inquiry, error) {
	var rows []inquiryRow
	if err := r.db.SelectContext(ctx, &rows, `
	  SELECT id, kind, locale, name, email, phone, company, country, subject, message, products_json, mailed, created_at
	  FROM inquiries
	  ORDER BY created_at DESC
	  LIMIT ?`, limit); err != nil {
		return nil, err
	}
	out := make([]domain.Inquiry, 0, len(rows))
	for _, row := range rows {
		var products []string
		_ = json.Unmarshal([]byte(row.ProductsJSON), &products)
		out = append(out, domain.Inquiry{
			ID: row.ID, Kind: row.Kind, Locale: domain.Locale(row.Locale), Name: row.Name, Email: row.Email,
			Phone: row.Phone, Company: row.Company, Country: row.Country, Subject: row.Subject, Message: row.Message,
			Products: products, Mailed: row.Mailed, CreatedAt: parseTS(row.CreatedAt),
		})
	}
	return out, nil
}
