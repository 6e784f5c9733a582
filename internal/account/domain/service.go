package domain

import (
	"context"
	"errors"

	"github.com/onebase/onebase/pkg/db/pagination"
)

type CreateAccountRequest struct {
	Name     string
	Industry string
	Website  string
	Phone    string
	Notes    string
}

type UpdateAccountRequest struct {
	ID       string
	Name     *string
	Industry *string
	Website  *string
	Phone    *string
	Notes    *string
}

type ListAccountRequest struct {
	Search string
	Page   pagination.Pagination
}

type GetAccountRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateAccountRequest) (Account, error)
	GetByID(ctx context.Context, req GetAccountRequest) (Account, error)
	List(ctx context.Context, req ListAccountRequest) ([]Account, error)
	Update(ctx context.Context, req UpdateAccountRequest) (Account, error)
	Delete(ctx context.Context, req GetAccountRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
