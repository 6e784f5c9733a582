package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	invoicecustomerdomain "github.com/onebase/onebase/internal/invoicecustomer/domain"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type createInvoiceCustomerRequest struct {
	AccountID           string `json:"account_id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	VatID               string `json:"vat_id"`
	BillingAddressLine1 string `json:"billing_address_line1"`
	BillingAddressLine2 string `json:"billing_address_line2"`
	BillingPostalCode   string `json:"billing_postal_code"`
	BillingCity         string `json:"billing_city"`
	BillingCountry      string `json:"billing_country"`
}

type updateInvoiceCustomerRequest struct {
	AccountID           *string `json:"account_id"`
	Name                *string `json:"name"`
	Email               *string `json:"email"`
	Phone               *string `json:"phone"`
	VatID               *string `json:"vat_id"`
	BillingAddressLine1 *string `json:"billing_address_line1"`
	BillingAddressLine2 *string `json:"billing_address_line2"`
	BillingPostalCode   *string `json:"billing_postal_code"`
	BillingCity         *string `json:"billing_city"`
	BillingCountry      *string `json:"billing_country"`
}

func (s *Server) CreateInvoiceCustomer(c *gin.Context) {
	var req createInvoiceCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	accountID, err := parseOptionalSnowflakeID(req.AccountID)
	if err != nil {
		AbortWithError(c, invoicecustomerdomain.ErrInvalidAccount)
		return
	}

	resp, err := s.invoiceCustomerSvc.Create(c.Request.Context(), invoicecustomerdomain.CreateInvoiceCustomerRequest{
		AccountID:           accountID,
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		VatID:               req.VatID,
		BillingAddressLine1: req.BillingAddressLine1,
		BillingAddressLine2: req.BillingAddressLine2,
		BillingPostalCode:   req.BillingPostalCode,
		BillingCity:         req.BillingCity,
		BillingCountry:      req.BillingCountry,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListInvoiceCustomers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search    string `form:"q"`
		AccountID string `form:"account_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	accountID, err := parseOptionalSnowflakeID(query.AccountID)
	if err != nil {
		AbortWithError(c, newValidationError("account_id", "invalid_account_id", "invalid account_id"))
		return
	}

	resp, err := s.invoiceCustomerSvc.List(c.Request.Context(), invoicecustomerdomain.ListInvoiceCustomerRequest{
		Search:    strings.TrimSpace(query.Search),
		AccountID: accountID,
		Page:      query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceCustomerByID(c *gin.Context) {
	resp, err := s.invoiceCustomerSvc.GetByID(c.Request.Context(), invoicecustomerdomain.GetInvoiceCustomerRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoiceCustomer(c *gin.Context) {
	var req updateInvoiceCustomerRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := invoicecustomerdomain.UpdateInvoiceCustomerRequest{
		ID:                  strings.TrimSpace(c.Param("id")),
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		VatID:               req.VatID,
		BillingAddressLine1: req.BillingAddressLine1,
		BillingAddressLine2: req.BillingAddressLine2,
		BillingPostalCode:   req.BillingPostalCode,
		BillingCity:         req.BillingCity,
		BillingCountry:      req.BillingCountry,
	}
	if bodyHasKey(c, "account_id") {
		update.SetAccount = true
		if req.AccountID != nil {
			accountID, err := parseOptionalSnowflakeID(*req.AccountID)
			if err != nil {
				AbortWithError(c, invoicecustomerdomain.ErrInvalidAccount)
				return
			}
			update.AccountID = accountID
		}
	}

	resp, err := s.invoiceCustomerSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoiceCustomer(c *gin.Context) {
	err := s.invoiceCustomerSvc.Delete(c.Request.Context(), invoicecustomerdomain.GetInvoiceCustomerRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isInvoiceCustomerValidationError(err error) bool {
	switch err {
	case invoicecustomerdomain.ErrInvalidOrganization,
		invoicecustomerdomain.ErrInvalidName,
		invoicecustomerdomain.ErrInvalidAccount,
		invoicecustomerdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
