package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// InvoiceCustomer is a billing party an invoice can be issued to. It may be
// linked to a CRM account but carries its own billing details.
type InvoiceCustomer struct {
	ID                  snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID               snowflake.ID  `gorm:"column:org_id;not null;index" json:"org_id"`
	AccountID           *snowflake.ID `gorm:"column:account_id;index" json:"account_id,omitempty"`
	Name                string        `gorm:"type:text;not null" json:"name"`
	Email               string        `gorm:"type:text" json:"email,omitempty"`
	Phone               string        `gorm:"type:text" json:"phone,omitempty"`
	VatID               string        `gorm:"column:vat_id;type:text" json:"vat_id,omitempty"`
	BillingAddressLine1 string        `gorm:"column:billing_address_line1;type:text" json:"billing_address_line1,omitempty"`
	BillingAddressLine2 string        `gorm:"column:billing_address_line2;type:text" json:"billing_address_line2,omitempty"`
	BillingPostalCode   string        `gorm:"column:billing_postal_code;type:text" json:"billing_postal_code,omitempty"`
	BillingCity         string        `gorm:"column:billing_city;type:text" json:"billing_city,omitempty"`
	BillingCountry      string        `gorm:"column:billing_country;type:text" json:"billing_country,omitempty"`
	CreatedAt           time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (InvoiceCustomer) TableName() string { return "invoice_customers" }
