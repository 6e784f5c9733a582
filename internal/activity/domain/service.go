package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type CreateActivityRequest struct {
	Type            string
	Subject         string
	Body            string
	OccurredAt      *time.Time
	AccountID       *snowflake.ID
	ContactID       *snowflake.ID
	DealID          *snowflake.ID
	CreatedByUserID snowflake.ID
}

type UpdateActivityRequest struct {
	ID         string
	Type       *string
	Subject    *string
	Body       *string
	OccurredAt *time.Time
	SetAccount bool
	AccountID  *snowflake.ID
	SetContact bool
	ContactID  *snowflake.ID
	SetDeal    bool
	DealID     *snowflake.ID
}

type ListActivityRequest struct {
	AccountID *snowflake.ID
	ContactID *snowflake.ID
	DealID    *snowflake.ID
	Page      pagination.Pagination
}

type GetActivityRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateActivityRequest) (Activity, error)
	GetByID(ctx context.Context, req GetActivityRequest) (Activity, error)
	List(ctx context.Context, req ListActivityRequest) ([]Activity, error)
	Update(ctx context.Context, req UpdateActivityRequest) (Activity, error)
	Delete(ctx context.Context, req GetActivityRequest) error
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidAccount      = errors.New("invalid_account_id")
	ErrInvalidContact      = errors.New("invalid_contact_id")
	ErrInvalidDeal         = errors.New("invalid_deal_id")
	ErrInvalidUser         = errors.New("invalid_user")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
