package service

import (
	"sort"
	"time"

	"github.com/finvo/finvo/internal/config"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
	"github.com/finvo/finvo/internal/report/domain"
)

// notDueLabel is the bucket for unpaid invoices that are not yet past due,
// including invoices due later today.
const notDueLabel = "Not Due"

const day = 24 * time.Hour

// Aggregate computes the reporting summary for one user's invoices. It is a
// pure function of its inputs: the invoice snapshot, the evaluation instant
// and the report configuration. It never fails; missing amounts and dates
// fall back to the defaulting rules below.
func Aggregate(invoices []invoicedomain.Invoice, now time.Time, cfg config.ReportConfig) domain.Summary {
	now = now.UTC()

	statusCounts := map[string]int{
		string(invoicedomain.InvoiceStatusPaid):   0,
		string(invoicedomain.InvoiceStatusUnpaid): 0,
	}
	agingBuckets := map[string]int64{notDueLabel: 0}
	for _, bucket := range cfg.AgingBuckets {
		agingBuckets[bucket.Label] = 0
	}

	kpis := domain.KPIs{TotalInvoices: len(invoices)}
	var overdueTotal int64
	series := map[string]*domain.SeriesPoint{}
	windowStart := now.AddDate(0, 0, -cfg.WindowDays)

	for _, invoice := range invoices {
		paid := invoice.Status == invoicedomain.InvoiceStatusPaid
		if paid {
			statusCounts[string(invoicedomain.InvoiceStatusPaid)]++
			kpis.TotalPaid += invoice.Total
		} else {
			// Anything that is not exactly Paid counts as unpaid,
			// unknown status strings included.
			statusCounts[string(invoicedomain.InvoiceStatusUnpaid)]++
			kpis.TotalUnpaid += invoice.Total

			if invoice.DueDate != nil {
				label, overdue := classifyAge(daysPastDue(now, *invoice.DueDate), cfg.AgingBuckets)
				agingBuckets[label] += invoice.Total
				if overdue {
					overdueTotal += invoice.Total
				}
			}
		}

		ref := invoice.CreatedAt
		if invoice.InvoiceDate != nil {
			ref = *invoice.InvoiceDate
		}
		ref = ref.UTC()
		if ref.Before(windowStart) {
			continue
		}

		key := ref.Format("2006-01-02")
		point, ok := series[key]
		if !ok {
			point = &domain.SeriesPoint{Date: key}
			series[key] = point
		}
		point.InvoicesTotal += invoice.Total
		point.Count++
		if paid {
			point.PaidTotal += invoice.Total
		}
	}

	timeSeries := make([]domain.SeriesPoint, 0, len(series))
	for _, point := range series {
		timeSeries = append(timeSeries, *point)
	}
	sort.Slice(timeSeries, func(i, j int) bool {
		return timeSeries[i].Date < timeSeries[j].Date
	})

	return domain.Summary{
		KPIs:         kpis,
		StatusCounts: statusCounts,
		AgingBuckets: agingBuckets,
		AgingSummary: domain.AgingSummary{
			OverdueTotal: overdueTotal,
			UnpaidTotal:  kpis.TotalUnpaid,
		},
		TimeSeries: timeSeries,
	}
}

// daysPastDue truncates the elapsed time since the due date to whole days.
// An invoice due earlier today yields 0; a future due date is negative.
func daysPastDue(now, due time.Time) int {
	return int(now.Sub(due.UTC()) / day)
}

// classifyAge places an unpaid invoice into exactly one aging bucket.
// Zero or negative days past due is never overdue regardless of the
// configured ranges. A value past every closed range folds into the
// last bucket.
func classifyAge(days int, buckets []config.AgingBucket) (label string, overdue bool) {
	if days <= 0 || len(buckets) == 0 {
		return notDueLabel, false
	}
	for _, bucket := range buckets {
		if days >= bucket.MinDays && (bucket.MaxDays == nil || days <= *bucket.MaxDays) {
			return bucket.Label, true
		}
	}
	return buckets[len(buckets)-1].Label, true
}
