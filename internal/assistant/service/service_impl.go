package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/finvo/finvo/internal/assistant/domain"
	"github.com/finvo/finvo/internal/config"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
	reportdomain "github.com/finvo/finvo/internal/report/domain"
)

// CompletionClient is the slice of the OpenAI client the assistant needs.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewCompletionClient builds the OpenAI-backed client, or nil when no API
// key is configured. The service degrades to ErrUnavailable in that case.
func NewCompletionClient(cfg config.Config) CompletionClient {
	if cfg.OpenAIAPIKey == "" {
		return nil
	}
	return openai.NewClient(cfg.OpenAIAPIKey)
}

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Config   config.Config
	Client   CompletionClient
	Invoices invoicedomain.Repository
	Reports  reportdomain.Service
}

type Service struct {
	log      *zap.Logger
	model    string
	client   CompletionClient
	invoices invoicedomain.Repository
	reports  reportdomain.Service
}

func New(p ServiceParam) domain.Service {
	return &Service{
		log:      p.Log.Named("assistant.service"),
		model:    p.Config.OpenAIModel,
		client:   p.Client,
		invoices: p.Invoices,
		reports:  p.Reports,
	}
}

const parseSystemPrompt = `You turn free-form invoice descriptions into structured JSON.
Reply with a single JSON object and nothing else, using exactly these keys:
invoiceNumber (string, may be empty), clientName (string), clientEmail (string),
clientAddress (string), notes (string), items (array of {description, quantity, unitAmount}).
quantity is an integer; unitAmount is the unit price in integer cents.
Omit nothing; use empty strings, zero or empty arrays when a value is unknown.`

func (s *Service) ParseInvoiceText(ctx context.Context, text string) (invoicedomain.CreateInvoiceRequest, error) {
	if s.client == nil {
		return invoicedomain.CreateInvoiceRequest{}, domain.ErrUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return invoicedomain.CreateInvoiceRequest{}, domain.ErrEmptyText
	}

	reply, err := s.complete(ctx, parseSystemPrompt, text)
	if err != nil {
		return invoicedomain.CreateInvoiceRequest{}, err
	}

	var draft invoicedomain.CreateInvoiceRequest
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &draft); err != nil {
		s.log.Warn("unparsable assistant reply", zap.Error(err))
		return invoicedomain.CreateInvoiceRequest{}, domain.ErrBadReply
	}
	return draft, nil
}

const reminderSystemPrompt = `You write short, polite payment reminder emails for freelancers.
Start the reply with a line "Subject: ..." followed by the email body.
Keep it under 150 words, friendly but firm. Reply with the email only.`

func (s *Service) GenerateReminder(ctx context.Context, userID, invoiceID snowflake.ID) (string, error) {
	if s.client == nil {
		return "", domain.ErrUnavailable
	}

	invoice, err := s.invoices.FindByID(ctx, userID, invoiceID)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"Invoice %s for %s, total %d cents, status %s.",
		invoice.InvoiceNumber, invoice.ClientName, invoice.Total, invoice.Status,
	)
	if invoice.DueDate != nil {
		prompt += fmt.Sprintf(" Due date %s.", invoice.DueDate.UTC().Format("2006-01-02"))
	}

	return s.complete(ctx, reminderSystemPrompt, prompt)
}

const dashboardSystemPrompt = `You summarize invoicing metrics for a business owner.
Write 2-3 plain sentences: overall standing, what is overdue, and one suggested action.
No markdown, no lists.`

func (s *Service) DashboardSummary(ctx context.Context, userID snowflake.ID) (string, error) {
	if s.client == nil {
		return "", domain.ErrUnavailable
	}

	summary, err := s.reports.ComputeSummary(ctx, userID)
	if err != nil {
		return "", err
	}

	metrics, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}

	return s.complete(ctx, dashboardSystemPrompt, string(metrics))
}

func (s *Service) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.2,
		MaxTokens:   1000,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrBadReply
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", domain.ErrBadReply
	}
	return content, nil
}

// stripCodeFence unwraps replies the model insists on fencing as ```json.
func stripCodeFence(reply string) string {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "```") {
		return reply
	}
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	return strings.TrimSpace(reply)
}
