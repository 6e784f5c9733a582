package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
)

type CreateDealRequest struct {
	AccountID         string
	PrimaryContactID  *snowflake.ID
	StageID           string
	Name              string
	AmountCents       *int64
	Currency          string
	ExpectedCloseDate *time.Time
}

type UpdateDealRequest struct {
	ID                string
	AccountID         *string
	SetPrimaryContact bool
	PrimaryContactID  *snowflake.ID
	StageID           *string
	Name              *string
	AmountCents       *int64
	Currency          *string
	SetCloseDate      bool
	ExpectedCloseDate *time.Time
}

type ListDealRequest struct {
	Search    string
	StageID   *snowflake.ID
	AccountID *snowflake.ID
	Page      pagination.Pagination
}

type GetDealRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateDealRequest) (Deal, error)
	GetByID(ctx context.Context, req GetDealRequest) (Deal, error)
	List(ctx context.Context, req ListDealRequest) ([]Deal, error)
	Update(ctx context.Context, req UpdateDealRequest) (Deal, error)
	Delete(ctx context.Context, req GetDealRequest) error
	ListStages(ctx context.Context) ([]DealStage, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidAccount      = errors.New("invalid_account_id")
	ErrInvalidContact      = errors.New("invalid_primary_contact_id")
	ErrInvalidStage        = errors.New("invalid_stage_id")
	ErrInvalidAmount       = errors.New("invalid_amount_cents")
	ErrInvalidCurrency     = errors.New("invalid_currency")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)
