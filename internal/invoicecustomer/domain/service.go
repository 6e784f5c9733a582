package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type CreateInvoiceCustomerRequest struct {
	AccountID           *snowflake.ID
	Name                string
	Email               string
	Phone               string
	VatID               string
	BillingAddressLine1 string
	BillingAddressLine2 string
	BillingPostalCode   string
	BillingCity         string
	BillingCountry      string
}

type UpdateInvoiceCustomerRequest struct {
	ID                  string
	SetAccount          bool
	AccountID           *snowflake.ID
	Name                *string
	Email               *string
	Phone               *string
	VatID               *string
	BillingAddressLine1 *string
	BillingAddressLine2 *string
	BillingPostalCode   *string
	BillingCity         *string
	BillingCountry      *string
}

type ListInvoiceCustomerRequest struct {
	Search    string
	AccountID *snowflake.ID
	Page      pagination.Pagination
}

type GetInvoiceCustomerRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceCustomerRequest) (InvoiceCustomer, error)
	GetByID(ctx context.Context, req GetInvoiceCustomerRequest) (InvoiceCustomer, error)
	List(ctx context.Context, req ListInvoiceCustomerRequest) ([]InvoiceCustomer, error)
	Update(ctx context.Context, req UpdateInvoiceCustomerRequest) (InvoiceCustomer, error)
	Delete(ctx context.Context, req GetInvoiceCustomerRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidAccount      = errors.New("invalid_account_id")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrCustomerInUse       = errors.New("customer_in_use")
)
