package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/finvo/finvo/internal/auth/domain"
	"github.com/finvo/finvo/internal/config"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
	reportdomain "github.com/finvo/finvo/internal/report/domain"
)

const testToken = "test-session-token"

var testUser = &authdomain.User{
	ID:         snowflake.ID(200),
	ExternalID: "3f6f1c0a-8a70-4b29-b2fb-7a1f73b4a111",
	Email:      "alice@example.com",
	Name:       "Alice",
}

type fakeAuthService struct {
	registerCalls int
	loginCalls    int
	loginErr      error
	logoutCalls   int
	deleteCalls   int
	updated       *authdomain.UpdateProfileRequest
}

func (f *fakeAuthService) Register(_ context.Context, req authdomain.RegisterRequest) (*authdomain.LoginResult, error) {
	f.registerCalls++
	return &authdomain.LoginResult{
		User:      &authdomain.User{ID: snowflake.ID(201), ExternalID: "new-user", Email: req.Email, Name: req.Name},
		RawToken:  testToken,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Login(_ context.Context, _ authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &authdomain.LoginResult{
		User:      testUser,
		RawToken:  testToken,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Logout(_ context.Context, _ string) error {
	f.logoutCalls++
	return nil
}

func (f *fakeAuthService) Authenticate(_ context.Context, rawToken string) (*authdomain.User, error) {
	if strings.TrimSpace(rawToken) != testToken {
		return nil, authdomain.ErrInvalidSession
	}
	return testUser, nil
}

func (f *fakeAuthService) UpdateProfile(_ context.Context, _ snowflake.ID, req authdomain.UpdateProfileRequest) (*authdomain.User, error) {
	f.updated = &req
	updated := *testUser
	if req.BusinessName != nil {
		updated.BusinessName = *req.BusinessName
	}
	return &updated, nil
}

func (f *fakeAuthService) DeleteAccount(_ context.Context, _ snowflake.ID) error {
	f.deleteCalls++
	return nil
}

type fakeInvoiceService struct {
	invoices []invoicedomain.Invoice
	created  *invoicedomain.CreateInvoiceRequest
	err      error
}

func (f *fakeInvoiceService) Create(_ context.Context, userID snowflake.ID, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &req
	return &invoicedomain.Invoice{
		ID:            snowflake.ID(42),
		UserID:        userID,
		InvoiceNumber: req.InvoiceNumber,
		ClientName:    req.ClientName,
		Status:        invoicedomain.InvoiceStatusUnpaid,
	}, nil
}

func (f *fakeInvoiceService) Update(_ context.Context, _, id snowflake.ID, _ invoicedomain.UpdateInvoiceRequest) (*invoicedomain.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &invoicedomain.Invoice{ID: id}, nil
}

func (f *fakeInvoiceService) GetByID(_ context.Context, _, id snowflake.ID) (*invoicedomain.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			return &f.invoices[i], nil
		}
	}
	return nil, invoicedomain.ErrInvoiceNotFound
}

func (f *fakeInvoiceService) List(_ context.Context, _ snowflake.ID, _ invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	if f.err != nil {
		return invoicedomain.ListInvoiceResponse{}, f.err
	}
	return invoicedomain.ListInvoiceResponse{Invoices: f.invoices}, nil
}

func (f *fakeInvoiceService) ListAll(_ context.Context, _ snowflake.ID) ([]invoicedomain.Invoice, error) {
	return f.invoices, f.err
}

func (f *fakeInvoiceService) Delete(_ context.Context, _, _ snowflake.ID) error {
	return f.err
}

type fakeReportService struct {
	summary reportdomain.Summary
	err     error
}

func (f *fakeReportService) ComputeSummary(context.Context, snowflake.ID) (reportdomain.Summary, error) {
	return f.summary, f.err
}

type fakeAssistantService struct {
	draft    invoicedomain.CreateInvoiceRequest
	reminder string
	digest   string
	err      error
}

func (f *fakeAssistantService) ParseInvoiceText(context.Context, string) (invoicedomain.CreateInvoiceRequest, error) {
	return f.draft, f.err
}

func (f *fakeAssistantService) GenerateReminder(context.Context, snowflake.ID, snowflake.ID) (string, error) {
	return f.reminder, f.err
}

func (f *fakeAssistantService) DashboardSummary(context.Context, snowflake.ID) (string, error) {
	return f.digest, f.err
}

type testDeps struct {
	auth      *fakeAuthService
	invoices  *fakeInvoiceService
	reports   *fakeReportService
	assistant *fakeAssistantService
}

func newTestServer(t *testing.T) (*Server, *testDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	deps := &testDeps{
		auth:      &fakeAuthService{},
		invoices:  &fakeInvoiceService{},
		reports:   &fakeReportService{},
		assistant: &fakeAssistantService{},
	}

	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          config.Config{AppName: "finvo"},
		AuthSvc:      deps.auth,
		InvoiceSvc:   deps.invoices,
		ReportSvc:    deps.reports,
		AssistantSvc: deps.assistant,
	})
	return srv, deps
}

func doRequest(srv *Server, method, path, body string, authed bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}
