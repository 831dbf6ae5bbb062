package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReportSummary computes the reporting summary for the authenticated user.
// The result is derived fresh from the invoice collection on every call.
func (s *Server) ReportSummary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	summary, err := s.reportSvc.ComputeSummary(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
