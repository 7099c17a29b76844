// Package mail relays contact and quote inquiries to the sales inbox.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"arcticfresh/internal/domain"
	applog "arcticfresh/internal/log"
)

// Resend delivers inquiries through the Resend API.
type Resend struct {
	client *resend.Client
	from   string
	to     []string
}

func NewResend(apiKey, from, to string) *Resend {
	var rcpt []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			rcpt = append(rcpt, addr)
		}
	}
	return &Resend{client: resend.NewClient(apiKey), from: from, to: rcpt}
}

func (r *Resend) Configured() bool { return true }

func (r *Resend) SendInquiry(ctx context.Context, in domain.Inquiry) error {
	body, err := Render(in)
	if err != nil {
		return err
	}
	sent, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      r.to,
		Subject: Subject(in),
		Html:    body,
		ReplyTo: in.Email,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	applog.Info(nil, "mail.sent", map[string]any{"inquiry_id": in.ID, "kind": in.Kind, "message_id": sent.Id})
	return nil
}

// Console logs inquiries instead of sending them.
type Console struct{}

func (Console) Configured() bool { return false }

func (Console) SendInquiry(_ context.Context, in domain.Inquiry) error {
	applog.Info(nil, "mail.console", map[string]any{
		"inquiry_id": in.ID,
		"kind":       in.Kind,
		"subject":    Subject(in),
		"from":       in.Email,
		"products":   in.Products,
	})
	return nil
}
