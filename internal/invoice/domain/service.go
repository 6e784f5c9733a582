package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type CreateInvoiceRequest struct {
	CustomerID    string
	InvoiceNumber string
	Status        string
	IssueDate     *time.Time
	DueDate       *time.Time
	Currency      string
	Notes         string
	Items         []ItemInput
}

type UpdateInvoiceRequest struct {
	ID            string
	CustomerID    *string
	InvoiceNumber *string
	Status        *string
	IssueDate     *time.Time
	DueDate       *time.Time
	Currency      *string
	Notes         *string
	Items         *[]ItemInput
}

type ListInvoiceRequest struct {
	Search     string
	Status     string
	CustomerID *snowflake.ID
	Page       pagination.Pagination
}

type GetInvoiceRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	GetByID(ctx context.Context, req GetInvoiceRequest) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) ([]InvoiceListRow, error)
	Update(ctx context.Context, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, req GetInvoiceRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidCustomer     = errors.New("invalid_customer_id")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrInvalidCurrency     = errors.New("invalid_currency")
	ErrInvalidDueDate      = errors.New("invalid_due_date")
	ErrNoItems             = errors.New("no_items")
	ErrInvalidItem         = errors.New("invalid_item")
	ErrInvalidNumber       = errors.New("invalid_invoice_number")
	ErrNumberConflict      = errors.New("invoice_number_conflict")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
