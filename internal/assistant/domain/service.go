// Package domain defines the AI assistant operations backing invoice
// drafting, payment reminders and the dashboard digest.
package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
)

var (
	ErrUnavailable = errors.New("assistant unavailable")
	ErrEmptyText   = errors.New("text is required")
	ErrBadReply    = errors.New("assistant returned an unusable reply")
)

type ParseTextRequest struct {
	Text string `json:"text"`
}

type ReminderRequest struct {
	InvoiceID string `json:"invoiceId"`
}

type ReminderResponse struct {
	EmailContent string `json:"emailContent"`
}

type DashboardSummaryResponse struct {
	Summary string `json:"summary"`
}

type Service interface {
	ParseInvoiceText(ctx context.Context, text string) (invoicedomain.CreateInvoiceRequest, error)
	GenerateReminder(ctx context.Context, userID, invoiceID snowflake.ID) (string, error)
	DashboardSummary(ctx context.Context, userID snowflake.ID) (string, error)
}
