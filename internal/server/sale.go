package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	salesdomain "github.com/smallbiznis/bodega/internal/sales/domain"
)

type recordSaleRequest struct {
	ProductID  string `json:"product_id"`
	CustomerID string `json:"customer_id"`
	Quantity   int64  `json:"quantity"`
}

func (s *Server) RecordSale(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.salesSvc.Record(c.Request.Context(), salesdomain.RecordSaleRequest{
		ProductID:  strings.TrimSpace(req.ProductID),
		CustomerID: strings.TrimSpace(req.CustomerID),
		Quantity:   req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSales(c *gin.Context) {
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

	resp, err := s.salesSvc.List(c.Request.Context(), salesdomain.ListSaleRequest{
		From: from,
		To:   to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
