package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type CreateContactRequest struct {
	AccountID *snowflake.ID
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Title     string
}

type UpdateContactRequest struct {
	ID         string
	SetAccount bool
	AccountID  *snowflake.ID
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Title      *string
}

type ListContactRequest struct {
	Search    string
	AccountID *snowflake.ID
	Page      pagination.Pagination
}

type GetContactRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateContactRequest) (Contact, error)
	GetByID(ctx context.Context, req GetContactRequest) (Contact, error)
	List(ctx context.Context, req ListContactRequest) ([]Contact, error)
	Update(ctx context.Context, req UpdateContactRequest) (Contact, error)
	Delete(ctx context.Context, req GetContactRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidFirstName    = errors.New("invalid_first_name")
	ErrInvalidLastName     = errors.New("invalid_last_name")
	ErrInvalidAccount      = errors.New("invalid_account_id")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
