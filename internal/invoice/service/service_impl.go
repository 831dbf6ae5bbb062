package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/finvo/finvo/internal/clock"
	"github.com/finvo/finvo/internal/invoice/domain"
)

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	Repo  domain.Repository
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("invoice.service"),
		repo:  p.Repo,
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, userID snowflake.ID, req domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	number := strings.TrimSpace(req.InvoiceNumber)
	client := strings.TrimSpace(req.ClientName)
	if number == "" || client == "" {
		return nil, domain.ErrInvalidInvoice
	}

	status := domain.InvoiceStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = domain.InvoiceStatusUnpaid
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	now := s.clock.Now()
	invoice := &domain.Invoice{
		ID:            s.genID.Generate(),
		UserID:        userID,
		InvoiceNumber: number,
		ClientName:    client,
		ClientEmail:   strings.TrimSpace(req.ClientEmail),
		ClientAddress: strings.TrimSpace(req.ClientAddress),
		Status:        status,
		InvoiceDate:   req.InvoiceDate,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	invoice.Items, invoice.Total = s.buildItems(invoice.ID, req.Items)

	if err := s.repo.Insert(ctx, invoice); err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

func (s *Service) Update(ctx context.Context, userID, id snowflake.ID, req domain.UpdateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.InvoiceNumber != nil {
		if strings.TrimSpace(*req.InvoiceNumber) == "" {
			return nil, domain.ErrInvalidInvoice
		}
		invoice.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	}
	if req.ClientName != nil {
		if strings.TrimSpace(*req.ClientName) == "" {
			return nil, domain.ErrInvalidInvoice
		}
		invoice.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.ClientEmail != nil {
		invoice.ClientEmail = strings.TrimSpace(*req.ClientEmail)
	}
	if req.ClientAddress != nil {
		invoice.ClientAddress = strings.TrimSpace(*req.ClientAddress)
	}
	if req.Status != nil {
		status := domain.InvoiceStatus(strings.TrimSpace(*req.Status))
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		invoice.Status = status
	}
	if req.InvoiceDate != nil {
		invoice.InvoiceDate = req.InvoiceDate
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.Items != nil {
		invoice.Items, invoice.Total = s.buildItems(invoice.ID, *req.Items)
	}
	invoice.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id snowflake.ID) (*domain.Invoice, error) {
	return s.repo.FindByID(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID snowflake.ID, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	filter := domain.ListFilter{ClientName: strings.TrimSpace(req.ClientName)}
	if status := strings.TrimSpace(req.Status); status != "" {
		parsed := domain.InvoiceStatus(status)
		if !parsed.Valid() {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = parsed
	}

	invoices, info, err := s.repo.List(ctx, userID, filter, req.Pagination)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}

	return domain.ListInvoiceResponse{
		PageInfo: info,
		Invoices: invoices,
	}, nil
}

func (s *Service) ListAll(ctx context.Context, userID snowflake.ID) ([]domain.Invoice, error) {
	return s.repo.ListAll(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id snowflake.ID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.log.Info("invoice deleted", zap.String("invoice_id", id.String()))
	return nil
}

// buildItems assigns line identifiers and derives line and invoice totals.
func (s *Service) buildItems(invoiceID snowflake.ID, inputs []domain.ItemInput) ([]domain.InvoiceItem, int64) {
	items := make([]domain.InvoiceItem, 0, len(inputs))
	var total int64
	for _, input := range inputs {
		quantity := input.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		amount := quantity * input.UnitAmount
		items = append(items, domain.InvoiceItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			Description: strings.TrimSpace(input.Description),
			Quantity:    quantity,
			UnitAmount:  input.UnitAmount,
			Amount:      amount,
		})
		total += amount
	}
	return items, total
}
