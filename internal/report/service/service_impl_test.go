package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/finvo/finvo/internal/clock"
	"github.com/finvo/finvo/internal/config"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
	"github.com/finvo/finvo/pkg/db/pagination"
)

type fakeInvoiceRepo struct {
	invoices []invoicedomain.Invoice
	err      error
}

func (f *fakeInvoiceRepo) Insert(context.Context, *invoicedomain.Invoice) error { return nil }
func (f *fakeInvoiceRepo) Update(context.Context, *invoicedomain.Invoice) error { return nil }
func (f *fakeInvoiceRepo) FindByID(context.Context, snowflake.ID, snowflake.ID) (*invoicedomain.Invoice, error) {
	return nil, invoicedomain.ErrInvoiceNotFound
}
func (f *fakeInvoiceRepo) List(context.Context, snowflake.ID, invoicedomain.ListFilter, pagination.Pagination) ([]invoicedomain.Invoice, pagination.PageInfo, error) {
	return nil, pagination.PageInfo{}, nil
}
func (f *fakeInvoiceRepo) ListAll(context.Context, snowflake.ID) ([]invoicedomain.Invoice, error) {
	return f.invoices, f.err
}
func (f *fakeInvoiceRepo) Delete(context.Context, snowflake.ID, snowflake.ID) error { return nil }

func TestComputeSummary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -45)
	repo := &fakeInvoiceRepo{invoices: []invoicedomain.Invoice{
		{Status: invoicedomain.InvoiceStatusPaid, Total: 100, CreatedAt: now},
		{Status: invoicedomain.InvoiceStatusUnpaid, Total: 50, DueDate: &due, CreatedAt: now},
	}}

	svc := NewService(Params{
		Log:      zap.NewNop(),
		Invoices: repo,
		Clock:    clock.NewFakeClock(now),
		Reports:  config.NewStaticReportConfigHolder(config.DefaultReportConfig()),
	})

	summary, err := svc.ComputeSummary(context.Background(), snowflake.ID(1))
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.KPIs.TotalInvoices)
	assert.Equal(t, int64(100), summary.KPIs.TotalPaid)
	assert.Equal(t, int64(50), summary.AgingBuckets["31-60"])
}

func TestComputeSummaryFetchFailure(t *testing.T) {
	fetchErr := errors.New("store unreachable")
	svc := NewService(Params{
		Log:      zap.NewNop(),
		Invoices: &fakeInvoiceRepo{err: fetchErr},
		Clock:    clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Reports:  config.NewStaticReportConfigHolder(config.DefaultReportConfig()),
	})

	_, err := svc.ComputeSummary(context.Background(), snowflake.ID(1))
	assert.ErrorIs(t, err, fetchErr)
}
