package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"arcticfresh/internal/errs"
	"arcticfresh/internal/i18n"
	applog "arcticfresh/internal/log"
)

// APIResponse is the envelope of every JSON answer.
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      any          `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Meta      any          `json:"meta,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type PaginationMeta struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

func NewPaginationMeta(page, limit, total int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginationMeta{
		Page: page, Limit: limit, Total: total, TotalPages: totalPages,
		HasNext: page < totalPages, HasPrevious: page > 1,
	}
}

func success(c *fiber.Ctx, status int, message string, data, meta any) error {
	return c.Status(status).JSON(APIResponse{
		Success: true, Message: message, Data: data, Meta: meta, Timestamp: time.Now().UTC(),
	})
}

func failure(c *fiber.Ctx, status int, detail ErrorDetail) error {
	return c.Status(status).JSON(APIResponse{
		Success: false, Message: detail.Message, Error: &detail, Timestamp: time.Now().UTC(),
	})
}

// fail answers err. Domain errors go out verbatim (localized); anything else
// is logged and replaced by a generic message.
func fail(c *fiber.Ctx, err error) error {
	e, ok := errs.As(err)
	if !ok {
		e = errs.Internal(err)
	}
	c.Status(e.Status())
	switch e.Code {
	case errs.CodeValidation:
		applog.Security(c, "validation.fail", map[string]any{"field": e.Field, "reason": e.Reason})
	case errs.CodeUnauthorized:
		applog.Security(c, "auth.denied", map[string]any{"reason": e.Reason})
	case errs.CodeInternal:
		applog.Error(c, "server.error", e.Err, nil)
		return failure(c, fiber.StatusInternalServerError, ErrorDetail{
			Code:    string(e.Code),
			Message: i18n.T(localeOf(c), "page.error"),
		})
	}
	return failure(c, e.Status(), ErrorDetail{
		Code:    string(e.Code),
		Reason:  e.Reason,
		Field:   e.Field,
		Message: i18n.ErrorMessage(localeOf(c), e.Reason, e.Message),
	})
}

// badJSON rejects an unparsable request body.
func badJSON(c *fiber.Ctx, err error) error {
	e := errs.Validation("invalid_body", "body", "Request body must be valid JSON")
	e.Err = err
	return fail(c, e)
}
