package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/finvo/finvo/pkg/db/pagination"
)

type ItemInput struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitAmount  int64  `json:"unitAmount"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber string      `json:"invoiceNumber"`
	ClientName    string      `json:"clientName"`
	ClientEmail   string      `json:"clientEmail"`
	ClientAddress string      `json:"clientAddress"`
	Status        string      `json:"status"`
	Items         []ItemInput `json:"items"`
	InvoiceDate   *time.Time  `json:"invoiceDate"`
	DueDate       *time.Time  `json:"dueDate"`
	Notes         string      `json:"notes"`
}

// UpdateInvoiceRequest applies only the fields that are present.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string      `json:"invoiceNumber"`
	ClientName    *string      `json:"clientName"`
	ClientEmail   *string      `json:"clientEmail"`
	ClientAddress *string      `json:"clientAddress"`
	Status        *string      `json:"status"`
	Items         *[]ItemInput `json:"items"`
	InvoiceDate   *time.Time   `json:"invoiceDate"`
	DueDate       *time.Time   `json:"dueDate"`
	Notes         *string      `json:"notes"`
}

type ListInvoiceRequest struct {
	pagination.Pagination

	Status     string `form:"status"`
	ClientName string `form:"client"`
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateInvoiceRequest) (*Invoice, error)
	Update(ctx context.Context, userID, id snowflake.ID, req UpdateInvoiceRequest) (*Invoice, error)
	GetByID(ctx context.Context, userID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, userID snowflake.ID, req ListInvoiceRequest) (ListInvoiceResponse, error)
	ListAll(ctx context.Context, userID snowflake.ID) ([]Invoice, error)
	Delete(ctx context.Context, userID, id snowflake.ID) error
}
