package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"arcticfresh/internal/domain"
	"arcticfresh/internal/errs"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/validate"
)

// Mailer relays accepted inquiries. Configured is false for the console
// fallback.
type Mailer interface {
	SendInquiry(ctx context.Context, in domain.Inquiry) error
	Configured() bool
}

const (
	maxMessageLen   = 5000
	maxQuoteItems   = 50
	InquiryPageSize = 50
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type QuoteInput struct {
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Company  string   `json:"company"`
	Country  string   `json:"country"`
	Products []string `json:"products"`
	Message  string   `json:"message"`
}

type ContactService struct {
	Inquiries InquiryStore
	Mail      Mailer
	Now       func() time.Time
}

func NewContactService(inq InquiryStore, mailer Mailer) *ContactService {
	return &ContactService{Inquiries: inq, Mail: mailer, Now: func() time.Time { return time.Now().UTC() }}
}

// MailConfigured reports whether submissions leave the process by email.
func (s *ContactService) MailConfigured() bool { return s.Mail.Configured() }

func checkName(v, field string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errs.Validation("name_required", field, "Name is required")
	}
	if n, ok := validate.Name(v); ok {
		return n, nil
	}
	return "", errs.Validation("name_too_long", field, "Name is too long")
}

func checkEmail(v string) (string, error) {
	if strings.TrimSpace(v) == "" {
		return "", errs.Validation("email_required", "email", "Email is required")
	}
	e, ok := validate.Email(v)
	if !ok {
		return "", errs.Validation("email_invalid", "email", "Email address is invalid")
	}
	return e, nil
}

func checkPhone(v string, required bool) (string, error) {
	if strings.TrimSpace(v) == "" {
		if required {
			return "", errs.Validation("phone_required", "phone", "Phone number is required")
		}
		return "", nil
	}
	p, ok := validate.Phone(v)
	if !ok {
		return "", errs.Validation("phone_invalid", "phone", "Phone number is invalid")
	}
	return p, nil
}

func checkOptional(v, reason, field string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if t, ok := validate.Text(v, max); ok {
		return t, nil
	}
	return "", errs.Validation(reason, field, "Value is too long")
}

// SubmitContact validates name, email, phone, subject and message in that
// order, stopping at the first failure.
func (s *ContactService) SubmitContact(ctx context.Context, locale domain.Locale, in ContactInput) (domain.Inquiry, error) {
	name, err := checkName(in.Name, "name")
	if err != nil {
		return domain.Inquiry{}, err
	}
	email, err := checkEmail(in.Email)
	if err != nil {
		return domain.Inquiry{}, err
	}
	phone, err := checkPhone(in.Phone, false)
	if err != nil {
		return domain.Inquiry{}, err
	}
	subject, ok := validate.Text(in.Subject, 200)
	if !ok {
		if subject == "" {
			return domain.Inquiry{}, errs.Validation("subject_required", "subject", "Subject is required")
		}
		return domain.Inquiry{}, errs.Validation("subject_too_long", "subject", "Subject is too long")
	}
	message, ok := validate.Text(in.Message, maxMessageLen)
	if !ok {
		if message == "" {
			return domain.Inquiry{}, errs.Validation("message_required", "message", "Message is required")
		}
		return domain.Inquiry{}, errs.Validation("message_too_long", "message", "Message is too long")
	}

	return s.deliver(ctx, domain.Inquiry{
		Kind: domain.InquiryContact, Locale: locale, Name: name, Email: email, Phone: phone,
		Subject: subject, Message: message,
	})
}

// SubmitQuote validates name, email, phone and the product list in that
// order, stopping at the first failure.
func (s *ContactService) SubmitQuote(ctx context.Context, locale domain.Locale, in QuoteInput) (domain.Inquiry, error) {
	name, err := checkName(in.FullName, "fullName")
	if err != nil {
		return domain.Inquiry{}, err
	}
	email, err := checkEmail(in.Email)
	if err != nil {
		return domain.Inquiry{}, err
	}
	phone, err := checkPhone(in.Phone, true)
	if err != nil {
		return domain.Inquiry{}, err
	}

	refs := make([]string, 0, len(in.Products))
	seen := map[string]bool{}
	for _, r := range in.Products {
		ref, ok := validate.Ref(r)
		if !ok {
			return domain.Inquiry{}, errs.Validation("products_invalid", "products", "Product list contains an invalid reference")
		}
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return domain.Inquiry{}, errs.Validation("products_required", "products", "Select at least one product")
	}
	if len(refs) > maxQuoteItems {
		return domain.Inquiry{}, errs.Validation("products_too_many", "products", "Too many products in one request")
	}

	company, err := checkOptional(in.Company, "company_too_long", "company", 200)
	if err != nil {
		return domain.Inquiry{}, err
	}
	country, err := checkOptional(in.Country, "country_too_long", "country", 100)
	if err != nil {
		return domain.Inquiry{}, err
	}
	message, err := checkOptional(in.Message, "message_too_long", "message", maxMessageLen)
	if err != nil {
		return domain.Inquiry{}, err
	}

	return s.deliver(ctx, domain.Inquiry{
		Kind: domain.InquiryQuote, Locale: locale, Name: name, Email: email, Phone: phone,
		Company: company, Country: country, Products: refs, Message: message,
	})
}

// deliver records the inquiry, then hands it to the mailer. A mail failure
// leaves the stored inquiry unmailed.
func (s *ContactService) deliver(ctx context.Context, in domain.Inquiry) (domain.Inquiry, error) {
	in.ID = uuid.NewString()
	in.CreatedAt = s.Now()
	if err := s.Inquiries.SaveInquiry(ctx, in); err != nil {
		return domain.Inquiry{}, errs.Internal(err)
	}
	if err := s.Mail.SendInquiry(ctx, in); err != nil {
		return in, errs.Internal(err)
	}
	if s.Mail.Configured() {
		in.Mailed = true
		if err := s.Inquiries.MarkMailed(ctx, in.ID); err != nil {
			applog.Error(nil, "inquiry.mark_mailed", err, map[string]any{"inquiry_id": in.ID, "kind": in.Kind})
		}
	}
	return in, nil
}

// Recent lists the latest inquiries for the dashboard.
func (s *ContactService) Recent(ctx context.Context, limit int) ([]domain.Inquiry, error) {
	if limit <= 0 || limit > InquiryPageSize {
		limit = InquiryPageSize
	}
	out, err := s.Inquiries.ListInquiries(ctx, limit)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return out, nil
}
