package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"

	assistantdomain "github.com/finvo/finvo/internal/assistant/domain"
	authdomain "github.com/finvo/finvo/internal/auth/domain"
	invoicedomain "github.com/finvo/finvo/internal/invoice/domain"
	reportdomain "github.com/finvo/finvo/internal/report/domain"
)

func TestRegisterReturnsToken(t *testing.T) {
	srv, deps := newTestServer(t)

	w := doRequest(srv, http.MethodPost, "/api/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"strong-password"}`, false)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, deps.auth.registerCalls)

	var resp struct {
		User  authdomain.Profile `json:"user"`
		Token string             `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testToken, resp.Token)
	assert.Equal(t, "bob@example.com", resp.User.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.auth.loginErr = authdomain.ErrInvalidCredentials

	w := doRequest(srv, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp errorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unauthorized", resp.Error.Type)
}

func TestLoginMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, http.MethodPost, "/api/auth/login", `{"email":`, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp errorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/invoices"},
		{http.MethodGet, "/api/reports/summary"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/ai/dashboard-summary"},
	} {
		w := doRequest(srv, route.method, route.path, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestMe(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/auth/me", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		User authdomain.Profile `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testUser.ExternalID, resp.User.ID)
	assert.Equal(t, testUser.Email, resp.User.Email)
}

func TestUpdateMe(t *testing.T) {
	srv, deps := newTestServer(t)

	w := doRequest(srv, http.MethodPut, "/api/auth/me",
		`{"businessName":"Alice Studio"}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, deps.auth.updated) {
		assert.Equal(t, "Alice Studio", *deps.auth.updated.BusinessName)
	}
}

func TestCreateInvoice(t *testing.T) {
	srv, deps := newTestServer(t)

	w := doRequest(srv, http.MethodPost, "/api/invoices",
		`{"invoiceNumber":"INV-001","clientName":"Acme Corp","items":[{"description":"Design","quantity":2,"unitAmount":15000}]}`, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	if assert.NotNil(t, deps.invoices.created) {
		assert.Equal(t, "INV-001", deps.invoices.created.InvoiceNumber)
		assert.Len(t, deps.invoices.created.Items, 1)
	}
}

func TestGetInvoiceInvalidID(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/invoices/not-a-number", "", true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp errorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestGetInvoiceNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/invoices/12345", "", true)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListInvoices(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.invoices.invoices = []invoicedomain.Invoice{
		{ID: snowflake.ID(1), InvoiceNumber: "INV-001", Status: invoicedomain.InvoiceStatusPaid},
		{ID: snowflake.ID(2), InvoiceNumber: "INV-002", Status: invoicedomain.InvoiceStatusUnpaid},
	}

	w := doRequest(srv, http.MethodGet, "/api/invoices", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []invoicedomain.Invoice `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestReportSummaryWireShape(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.reports.summary = reportdomain.Summary{
		KPIs:         reportdomain.KPIs{TotalInvoices: 2, TotalPaid: 100, TotalUnpaid: 50},
		StatusCounts: map[string]int{"Paid": 1, "Unpaid": 1},
		AgingBuckets: map[string]int64{"Not Due": 0, "1-30": 50, "31-60": 0, "61-90": 0, "90+": 0},
		AgingSummary: reportdomain.AgingSummary{OverdueTotal: 50, UnpaidTotal: 50},
		TimeSeries: []reportdomain.SeriesPoint{
			{Date: "2025-06-01", InvoicesTotal: 150, PaidTotal: 100, Count: 2},
		},
	}

	w := doRequest(srv, http.MethodGet, "/api/reports/summary", "", true)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	for _, key := range []string{"kpis", "statusCounts", "agingBuckets", "agingSummary", "timeSeries"} {
		assert.Contains(t, body, key)
	}

	var kpis map[string]int64
	assert.NoError(t, json.Unmarshal(body["kpis"], &kpis))
	assert.Equal(t, int64(2), kpis["totalInvoices"])
	assert.Equal(t, int64(100), kpis["totalPaid"])
}

func TestGenerateReminder(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.assistant.reminder = "Subject: Friendly reminder\n\nHi Acme..."

	w := doRequest(srv, http.MethodPost, "/api/ai/generate-reminder",
		`{"invoiceId":"12345"}`, true)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		EmailContent string `json:"emailContent"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.EmailContent, "Subject:")
}

func TestAssistantUnavailable(t *testing.T) {
	srv, deps := newTestServer(t)
	deps.assistant.err = assistantdomain.ErrUnavailable

	w := doRequest(srv, http.MethodPost, "/api/ai/parse-text", `{"text":"two designs"}`, true)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
