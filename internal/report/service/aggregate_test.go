package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finvo/finvo/internal/config"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func unpaidDue(total int64, due time.Time) invoicedomain.Invoice {
	return invoicedomain.Invoice{
		Status:    invoicedomain.InvoiceStatusUnpaid,
		Total:     total,
		DueDate:   timePtr(due),
		CreatedAt: testNow,
	}
}

func TestAggregateEmptySet(t *testing.T) {
	summary := Aggregate(nil, testNow, config.DefaultReportConfig())

	assert.Equal(t, 0, summary.KPIs.TotalInvoices)
	assert.Equal(t, int64(0), summary.KPIs.TotalPaid)
	assert.Equal(t, int64(0), summary.KPIs.TotalUnpaid)
	assert.Equal(t, map[string]int{"Paid": 0, "Unpaid": 0}, summary.StatusCounts)
	assert.Equal(t, map[string]int64{
		"Not Due": 0, "1-30": 0, "31-60": 0, "61-90": 0, "90+": 0,
	}, summary.AgingBuckets)
	assert.Equal(t, int64(0), summary.AgingSummary.OverdueTotal)
	assert.Equal(t, int64(0), summary.AgingSummary.UnpaidTotal)
	assert.Empty(t, summary.TimeSeries)
}

func TestAggregateSinglePaidToday(t *testing.T) {
	invoices := []invoicedomain.Invoice{{
		Status:      invoicedomain.InvoiceStatusPaid,
		Total:       100,
		InvoiceDate: timePtr(testNow),
		CreatedAt:   testNow,
	}}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	assert.Equal(t, int64(100), summary.KPIs.TotalPaid)
	assert.Equal(t, 1, summary.StatusCounts["Paid"])
	if assert.Len(t, summary.TimeSeries, 1) {
		point := summary.TimeSeries[0]
		assert.Equal(t, "2025-06-01", point.Date)
		assert.Equal(t, int64(100), point.InvoicesTotal)
		assert.Equal(t, int64(100), point.PaidTotal)
		assert.Equal(t, 1, point.Count)
	}
}

func TestAggregateOverdue45Days(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		unpaidDue(50, testNow.AddDate(0, 0, -45)),
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	assert.Equal(t, int64(50), summary.AgingBuckets["31-60"])
	assert.Equal(t, int64(50), summary.AgingSummary.OverdueTotal)
	assert.Equal(t, int64(50), summary.AgingSummary.UnpaidTotal)
}

func TestAggregateDueNowIsNotDue(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		unpaidDue(75, testNow),
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	assert.Equal(t, int64(75), summary.AgingBuckets["Not Due"])
	assert.Equal(t, int64(0), summary.AgingSummary.OverdueTotal)
}

func TestAggregateDueEarlierTodayIsNotDue(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		unpaidDue(75, testNow.Add(-6*time.Hour)),
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	assert.Equal(t, int64(75), summary.AgingBuckets["Not Due"])
	assert.Equal(t, int64(0), summary.AgingSummary.OverdueTotal)
}

func TestAggregateFutureDueDateIsNotDue(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		unpaidDue(20, testNow.AddDate(0, 0, 14)),
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	assert.Equal(t, int64(20), summary.AgingBuckets["Not Due"])
}

func TestAggregateBucketBoundaries(t *testing.T) {
	cases := []struct {
		days   int
		bucket string
	}{
		{1, "1-30"},
		{30, "1-30"},
		{31, "31-60"},
		{60, "31-60"},
		{61, "61-90"},
		{90, "61-90"},
		{91, "90+"},
		{400, "90+"},
	}
	for _, tc := range cases {
		invoices := []invoicedomain.Invoice{
			unpaidDue(10, testNow.AddDate(0, 0, -tc.days)),
		}
		summary := Aggregate(invoices, testNow, config.DefaultReportConfig())
		assert.Equal(t, int64(10), summary.AgingBuckets[tc.bucket], "days=%d", tc.days)
	}
}

func TestAggregateUnknownStatusCountsAsUnpaid(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Status: "Pending", Total: 40, CreatedAt: testNow},
		{Status: "paid", Total: 60, CreatedAt: testNow},
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	assert.Equal(t, 0, summary.StatusCounts["Paid"])
	assert.Equal(t, 2, summary.StatusCounts["Unpaid"])
	assert.Equal(t, int64(100), summary.KPIs.TotalUnpaid)
}

func TestAggregateUnpaidWithoutDueDateSkipsBuckets(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Status: invoicedomain.InvoiceStatusUnpaid, Total: 30, CreatedAt: testNow},
		unpaidDue(20, testNow.AddDate(0, 0, -10)),
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	assert.Equal(t, int64(50), summary.AgingSummary.UnpaidTotal)
	assert.Equal(t, int64(20), summary.AgingSummary.OverdueTotal)

	var bucketSum int64
	for _, v := range summary.AgingBuckets {
		bucketSum += v
	}
	assert.Equal(t, int64(20), bucketSum)
	assert.Less(t, bucketSum, summary.AgingSummary.UnpaidTotal)
}

func TestAggregateWindowBoundaries(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Status: invoicedomain.InvoiceStatusPaid, Total: 10, InvoiceDate: timePtr(testNow.AddDate(0, 0, -90)), CreatedAt: testNow},
		{Status: invoicedomain.InvoiceStatusPaid, Total: 20, InvoiceDate: timePtr(testNow.AddDate(0, 0, -91)), CreatedAt: testNow},
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	// The invoice exactly 90 days old stays in the series; 91 days is out
	// of the window but still counted in the KPIs.
	if assert.Len(t, summary.TimeSeries, 1) {
		assert.Equal(t, "2025-03-03", summary.TimeSeries[0].Date)
	}
	assert.Equal(t, 2, summary.KPIs.TotalInvoices)
	assert.Equal(t, 2, summary.StatusCounts["Paid"])
	assert.Equal(t, int64(30), summary.KPIs.TotalPaid)
}

func TestAggregateFallsBackToCreatedAt(t *testing.T) {
	created := testNow.AddDate(0, 0, -3)
	invoices := []invoicedomain.Invoice{
		{Status: invoicedomain.InvoiceStatusUnpaid, Total: 15, CreatedAt: created},
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	if assert.Len(t, summary.TimeSeries, 1) {
		assert.Equal(t, created.Format("2006-01-02"), summary.TimeSeries[0].Date)
		assert.Equal(t, int64(0), summary.TimeSeries[0].PaidTotal)
	}
}

func TestAggregateSeriesSortedAscending(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Status: invoicedomain.InvoiceStatusPaid, Total: 1, InvoiceDate: timePtr(testNow.AddDate(0, 0, -1)), CreatedAt: testNow},
		{Status: invoicedomain.InvoiceStatusPaid, Total: 2, InvoiceDate: timePtr(testNow.AddDate(0, 0, -20)), CreatedAt: testNow},
		{Status: invoicedomain.InvoiceStatusPaid, Total: 3, InvoiceDate: timePtr(testNow.AddDate(0, 0, -5)), CreatedAt: testNow},
		{Status: invoicedomain.InvoiceStatusPaid, Total: 4, InvoiceDate: timePtr(testNow.AddDate(0, 0, -5)), CreatedAt: testNow},
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	if assert.Len(t, summary.TimeSeries, 3) {
		for i := 1; i < len(summary.TimeSeries); i++ {
			assert.Less(t, summary.TimeSeries[i-1].Date, summary.TimeSeries[i].Date)
		}
	}
	// Same-day invoices merge into one point.
	merged := summary.TimeSeries[1]
	assert.Equal(t, int64(7), merged.InvoicesTotal)
	assert.Equal(t, 2, merged.Count)
}

func TestAggregateStatusCountInvariant(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Status: invoicedomain.InvoiceStatusPaid, Total: 10, CreatedAt: testNow},
		{Status: invoicedomain.InvoiceStatusUnpaid, Total: 20, CreatedAt: testNow},
		{Status: "Pending", Total: 30, CreatedAt: testNow},
		unpaidDue(40, testNow.AddDate(0, 0, -200)),
	}

	summary := Aggregate(invoices, testNow, config.DefaultReportConfig())

	assert.Equal(t, summary.KPIs.TotalInvoices, summary.StatusCounts["Paid"]+summary.StatusCounts["Unpaid"])
	assert.Equal(t, summary.AgingSummary.OverdueTotal,
		summary.AgingBuckets["1-30"]+summary.AgingBuckets["31-60"]+summary.AgingBuckets["61-90"]+summary.AgingBuckets["90+"])
}

func TestAggregateIdempotent(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Status: invoicedomain.InvoiceStatusPaid, Total: 10, InvoiceDate: timePtr(testNow.AddDate(0, 0, -2)), CreatedAt: testNow},
		unpaidDue(50, testNow.AddDate(0, 0, -45)),
	}

	first := Aggregate(invoices, testNow, config.DefaultReportConfig())
	second := Aggregate(invoices, testNow, config.DefaultReportConfig())
	assert.Equal(t, first, second)
}

func TestAggregateCustomBuckets(t *testing.T) {
	seven := 7
	cfg := config.ReportConfig{
		AgingBuckets: []config.AgingBucket{
			{Label: "1-7", MinDays: 1, MaxDays: &seven},
			{Label: "7+", MinDays: 8, MaxDays: nil},
		},
		WindowDays: 30,
	}

	invoices := []invoicedomain.Invoice{
		unpaidDue(10, testNow.AddDate(0, 0, -3)),
		unpaidDue(20, testNow.AddDate(0, 0, -40)),
	}

	summary := Aggregate(invoices, testNow, cfg)

	assert.Equal(t, int64(10), summary.AgingBuckets["1-7"])
	assert.Equal(t, int64(20), summary.AgingBuckets["7+"])
	assert.Equal(t, int64(30), summary.AgingSummary.OverdueTotal)
	assert.NotContains(t, summary.AgingBuckets, "1-30")
}
