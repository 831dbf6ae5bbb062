// Package domain defines the reporting summary computed over a user's invoices.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// KPIs are the headline totals for a user's invoice collection.
type KPIs struct {
	TotalInvoices int   `json:"totalInvoices"`
	TotalPaid     int64 `json:"totalPaid"`
	TotalUnpaid   int64 `json:"totalUnpaid"`
}

// AgingSummary rolls the overdue aging buckets into two totals. UnpaidTotal
// can exceed the bucket sum because invoices without a due date carry no
// bucket placement.
type AgingSummary struct {
	OverdueTotal int64 `json:"overdueTotal"`
	UnpaidTotal  int64 `json:"unpaidTotal"`
}

// SeriesPoint is one calendar day of invoice activity inside the
// trailing reporting window. Date is a UTC day formatted YYYY-MM-DD.
type SeriesPoint struct {
	Date          string `json:"date"`
	InvoicesTotal int64  `json:"invoicesTotal"`
	PaidTotal     int64  `json:"paidTotal"`
	Count         int    `json:"count"`
}

// Summary is the full aggregation result. It is computed fresh on every
// request and never persisted.
type Summary struct {
	KPIs         KPIs             `json:"kpis"`
	StatusCounts map[string]int   `json:"statusCounts"`
	AgingBuckets map[string]int64 `json:"agingBuckets"`
	AgingSummary AgingSummary     `json:"agingSummary"`
	TimeSeries   []SeriesPoint    `json:"timeSeries"`
}

type Service interface {
	ComputeSummary(ctx context.Context, userID snowflake.ID) (Summary, error)
}
