package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/finvo/finvo/pkg/db/pagination"
)

// ListFilter narrows invoice listings. Zero values match everything.
type ListFilter struct {
	Status     InvoiceStatus
	ClientName string
}

type Repository interface {
	Insert(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, userID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, userID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]Invoice, pagination.PageInfo, error)
	ListAll(ctx context.Context, userID snowflake.ID) ([]Invoice, error)
	Delete(ctx context.Context, userID, id snowflake.ID) error
}
