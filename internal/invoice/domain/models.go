package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusDraft = "draft"
	StatusSent  = "sent"
	StatusPaid  = "paid"
	StatusVoid  = "void"
)

// Invoice is the billing document header. Monetary amounts are integer cents
// and tax rates are basis points, so totals never touch floating point.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID         snowflake.ID `gorm:"column:org_id;not null;uniqueIndex:ux_invoices_org_number" json:"org_id"`
	CustomerID    snowflake.ID `gorm:"column:customer_id;not null;index" json:"customer_id"`
	InvoiceNumber string       `gorm:"column:invoice_number;type:text;not null;uniqueIndex:ux_invoices_org_number" json:"invoice_number"`
	Status        string       `gorm:"type:text;not null;default:draft" json:"status"`
	IssueDate     time.Time    `gorm:"column:issue_date;not null" json:"issue_date"`
	DueDate       time.Time    `gorm:"column:due_date;not null" json:"due_date"`
	Currency      string       `gorm:"type:varchar(3);not null" json:"currency"`
	SubtotalCents int64        `gorm:"column:subtotal_cents;not null" json:"subtotal_cents"`
	TaxCents      int64        `gorm:"column:tax_cents;not null" json:"tax_cents"`
	TotalCents    int64        `gorm:"column:total_cents;not null" json:"total_cents"`
	Notes         string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a single invoice line. Line amounts are derived from
// quantity, unit price and tax rate at write time and stored denormalized.
type InvoiceItem struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID             snowflake.ID `gorm:"column:org_id;not null;index" json:"org_id"`
	InvoiceID         snowflake.ID `gorm:"column:invoice_id;not null;index" json:"invoice_id"`
	Description       string       `gorm:"type:text;not null" json:"description"`
	Quantity          int64        `gorm:"not null" json:"quantity"`
	UnitPriceCents    int64        `gorm:"column:unit_price_cents;not null" json:"unit_price_cents"`
	TaxRateBps        int64        `gorm:"column:tax_rate_bps;not null;default:0" json:"tax_rate_bps"`
	LineSubtotalCents int64        `gorm:"column:line_subtotal_cents;not null" json:"line_subtotal_cents"`
	LineTaxCents      int64        `gorm:"column:line_tax_cents;not null" json:"line_tax_cents"`
	LineTotalCents    int64        `gorm:"column:line_total_cents;not null" json:"line_total_cents"`
	SortOrder         int          `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// InvoiceListRow is an invoice joined with its customer for list views.
type InvoiceListRow struct {
	Invoice
	CustomerName  string `gorm:"column:customer_name" json:"customer_name"`
	CustomerEmail string `gorm:"column:customer_email" json:"customer_email,omitempty"`
}

// ValidStatus reports whether the status is one of the known values.
func ValidStatus(value string) bool {
	switch value {
	case StatusDraft, StatusSent, StatusPaid, StatusVoid:
		return true
	default:
		return false
	}
}
