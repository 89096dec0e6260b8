package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	reportingdomain "github.com/smallbiznis/bodega/internal/reporting/domain"
)

// GetSalesReport renders the dashboard aggregates for a period. When either
// bound is omitted it falls back to the earliest/latest recorded sale, the
// same default the report screen always opened with.
func (s *Server) GetSalesReport(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	if from == nil || to == nil {
		bounds, err := s.reportingSvc.SalesBounds(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if from == nil {
			from = bounds.First
		}
		if to == nil {
			to = bounds.Last
		}
	}

	if from == nil || to == nil {
		// No sales recorded at all; an empty report, not an error.
		c.JSON(http.StatusOK, gin.H{"data": emptyReport()})
		return
	}

	resp, err := s.reportingSvc.SalesReport(c.Request.Context(), reportingdomain.ReportRequest{
		From: *from,
		To:   *to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOverview(c *gin.Context) {
	resp, err := s.reportingSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func emptyReport() reportingdomain.SalesReport {
	return reportingdomain.SalesReport{
		Daily:        []reportingdomain.DailyPoint{},
		TopProducts:  []reportingdomain.ProductRank{},
		TopCustomers: []reportingdomain.CustomerRank{},
		RevenueShare: []reportingdomain.ProductRevenue{},
		Categories:   []reportingdomain.CategoryRevenue{},
	}
}
