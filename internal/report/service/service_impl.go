package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/finvo/finvo/internal/clock"
	"github.com/finvo/finvo/internal/config"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
	"github.com/finvo/finvo/internal/report/domain"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Invoices invoicedomain.Repository
	Clock    clock.Clock
	Reports  *config.ReportConfigHolder
}

type Service struct {
	log      *zap.Logger
	invoices invoicedomain.Repository
	clock    clock.Clock
	reports  *config.ReportConfigHolder
}

func NewService(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("report.service"),
		invoices: p.Invoices,
		clock:    p.Clock,
		reports:  p.Reports,
	}
}

// ComputeSummary fetches the user's full invoice set and aggregates it.
// The fetch is the only failure mode; the aggregation itself cannot fail.
func (s *Service) ComputeSummary(ctx context.Context, userID snowflake.ID) (domain.Summary, error) {
	invoices, err := s.invoices.ListAll(ctx, userID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("fetch invoices: %w", err)
	}

	summary := Aggregate(invoices, s.clock.Now(), s.reports.Get())

	s.log.Debug("summary computed",
		zap.String("user_id", userID.String()),
		zap.Int("invoices", summary.KPIs.TotalInvoices),
		zap.Int("series_days", len(summary.TimeSeries)),
	)
	return summary, nil
}
