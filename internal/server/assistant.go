package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	assistantdomain "github.com/finvo/finvo/internal/assistant/domain"
)

func (s *Server) ParseInvoiceText(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req assistantdomain.ParseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	draft, err := s.assistantSvc.ParseInvoiceText(c.Request.Context(), req.Text)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": draft})
}

func (s *Server) GenerateReminder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req assistantdomain.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(req.InvoiceID))
	if err != nil {
		AbortWithError(c, newValidationError("invoiceId", "invalid_id", "invalid id"))
		return
	}

	content, err := s.assistantSvc.GenerateReminder(c.Request.Context(), user.ID, invoiceID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assistantdomain.ReminderResponse{EmailContent: content})
}

func (s *Server) DashboardSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	summary, err := s.assistantSvc.DashboardSummary(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assistantdomain.DashboardSummaryResponse{Summary: summary})
}
