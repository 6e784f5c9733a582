package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	invoicedomain "github.com/onebase/onebase/internal/invoice/domain"
	invoicecustomerdomain "github.com/onebase/onebase/internal/invoicecustomer/domain"
	"github.com/onebase/onebase/internal/orgcontext"
	"github.com/onebase/onebase/internal/providers/pdf"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type invoiceItemRequest struct {
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TaxRateBps     int64  `json:"tax_rate_bps"`
	SortOrder      *int   `json:"sort_order"`
}

type createInvoiceRequest struct {
	CustomerID    string               `json:"customer_id"`
	InvoiceNumber string               `json:"invoice_number"`
	Status        string               `json:"status"`
	IssueDate     string               `json:"issue_date"`
	DueDate       string               `json:"due_date"`
	Currency      string               `json:"currency"`
	Notes         string               `json:"notes"`
	Items         []invoiceItemRequest `json:"items"`
}

type updateInvoiceRequest struct {
	CustomerID    *string               `json:"customer_id"`
	InvoiceNumber *string               `json:"invoice_number"`
	Status        *string               `json:"status"`
	IssueDate     *string               `json:"issue_date"`
	DueDate       *string               `json:"due_date"`
	Currency      *string               `json:"currency"`
	Notes         *string               `json:"notes"`
	Items         *[]invoiceItemRequest `json:"items"`
}

func itemInputs(items []invoiceItemRequest) []invoicedomain.ItemInput {
	inputs := make([]invoicedomain.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, invoicedomain.ItemInput{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TaxRateBps:     item.TaxRateBps,
			SortOrder:      item.SortOrder,
		})
	}
	return inputs
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issueDate, err := parseOptionalTime(req.IssueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
		return
	}
	dueDate, err := parseOptionalTime(req.DueDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		Status:        req.Status,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Currency:      req.Currency,
		Notes:         req.Notes,
		Items:         itemInputs(req.Items),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Search     string `form:"q"`
		Status     string `form:"status"`
		CustomerID string `form:"customer_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID, err := parseOptionalSnowflakeID(query.CustomerID)
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Search:     strings.TrimSpace(query.Search),
		Status:     strings.TrimSpace(query.Status),
		CustomerID: customerID,
		Page:       query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	var req updateInvoiceRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := invoicedomain.UpdateInvoiceRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		Status:        req.Status,
		Currency:      req.Currency,
		Notes:         req.Notes,
	}
	if req.IssueDate != nil {
		issueDate, err := parseOptionalTime(*req.IssueDate, false)
		if err != nil || issueDate == nil {
			AbortWithError(c, newValidationError("issue_date", "invalid_issue_date", "invalid issue_date"))
			return
		}
		update.IssueDate = issueDate
	}
	if req.DueDate != nil {
		dueDate, err := parseOptionalTime(*req.DueDate, false)
		if err != nil || dueDate == nil {
			AbortWithError(c, newValidationError("due_date", "invalid_due_date", "invalid due_date"))
			return
		}
		update.DueDate = dueDate
	}
	if req.Items != nil {
		inputs := itemInputs(*req.Items)
		update.Items = &inputs
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	err := s.invoiceSvc.Delete(c.Request.Context(), invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) RenderInvoicePDF(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), invoicedomain.GetInvoiceRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	customer, err := s.invoiceCustomerSvc.GetByID(c.Request.Context(), invoicecustomerdomain.GetInvoiceCustomerRequest{
		ID: invoice.CustomerID.String(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	orgName := ""
	if orgID, ok := orgcontext.OrgIDFromContext(c.Request.Context()); ok {
		if org, err := s.organizationSvc.GetByID(c.Request.Context(), orgID); err == nil {
			orgName = org.Name
		}
	}

	data := pdf.InvoiceData{
		OrgName:       orgName,
		InvoiceNumber: invoice.InvoiceNumber,
		Status:        invoice.Status,
		IssueDate:     invoice.IssueDate.Format(dateOnlyLayout),
		DueDate:       invoice.DueDate.Format(dateOnlyLayout),
		BillToName:    customer.Name,
		BillToEmail:   customer.Email,
		BillToVatID:   customer.VatID,
		BillToAddress: billingAddressLines(customer),
		Subtotal:      pdf.FormatCents(invoice.SubtotalCents, invoice.Currency),
		Tax:           pdf.FormatCents(invoice.TaxCents, invoice.Currency),
		Total:         pdf.FormatCents(invoice.TotalCents, invoice.Currency),
		Notes:         invoice.Notes,
	}
	for _, item := range invoice.Items {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: item.Description,
			Qty:         item.Quantity,
			UnitPrice:   pdf.FormatCents(item.UnitPriceCents, invoice.Currency),
			TaxRate:     formatTaxRate(item.TaxRateBps),
			Amount:      pdf.FormatCents(item.LineTotalCents, invoice.Currency),
		})
	}

	doc, err := s.pdfProvider.GenerateInvoice(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	body, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+invoice.InvoiceNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", body)
}

func billingAddressLines(customer invoicecustomerdomain.InvoiceCustomer) []string {
	var lines []string
	if customer.BillingAddressLine1 != "" {
		lines = append(lines, customer.BillingAddressLine1)
	}
	if customer.BillingAddressLine2 != "" {
		lines = append(lines, customer.BillingAddressLine2)
	}
	cityLine := strings.TrimSpace(customer.BillingPostalCode + " " + customer.BillingCity)
	if cityLine != "" {
		lines = append(lines, cityLine)
	}
	if customer.BillingCountry != "" {
		lines = append(lines, customer.BillingCountry)
	}
	return lines
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrInvalidOrganization,
		invoicedomain.ErrInvalidCustomer,
		invoicedomain.ErrInvalidStatus,
		invoicedomain.ErrInvalidCurrency,
		invoicedomain.ErrInvalidDueDate,
		invoicedomain.ErrNoItems,
		invoicedomain.ErrInvalidItem,
		invoicedomain.ErrInvalidNumber,
		invoicedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}

func formatTaxRate(bps int64) string {
	if bps%100 == 0 {
		return strconv.FormatInt(bps/100, 10) + "%"
	}
	return fmt.Sprintf("%d.%02d%%", bps/100, bps%100)
}
