package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/onebase/onebase/internal/account/domain"
	"github.com/onebase/onebase/internal/activity/domain"
	contactdomain "github.com/onebase/onebase/internal/contact/domain"
	dealdomain "github.com/onebase/onebase/internal/deal/domain"
	"github.com/onebase/onebase/internal/orgcontext"
	"github.com/onebase/onebase/pkg/tenancy"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("activity.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateActivityRequest) (domain.Activity, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Activity{}, domain.ErrInvalidOrganization
	}

	kind := strings.TrimSpace(req.Type)
	if !domain.ValidType(kind) {
		return domain.Activity{}, domain.ErrInvalidType
	}
	if req.CreatedByUserID == 0 {
		return domain.Activity{}, domain.ErrInvalidUser
	}

	if err := s.ensureRefsOwned(ctx, orgID, req.AccountID, req.ContactID, req.DealID); err != nil {
		return domain.Activity{}, err
	}

	now := time.Now().UTC()
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	activity := domain.Activity{
		ID:              s.genID.Generate(),
		OrgID:           orgID,
		Type:            kind,
		Subject:         strings.TrimSpace(req.Subject),
		Body:            req.Body,
		OccurredAt:      occurredAt,
		AccountID:       req.AccountID,
		ContactID:       req.ContactID,
		DealID:          req.DealID,
		CreatedByUserID: req.CreatedByUserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &activity); err != nil {
		return domain.Activity{}, err
	}

	return activity, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetActivityRequest) (domain.Activity, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Activity{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Activity{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Activity{}, err
	}
	if item == nil {
		return domain.Activity{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListActivityRequest) ([]domain.Activity, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	return s.repo.List(ctx, s.db, orgID, domain.ListFilter{
		AccountID: req.AccountID,
		ContactID: req.ContactID,
		DealID:    req.DealID,
	}, req.Page)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateActivityRequest) (domain.Activity, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Activity{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Activity{}, err
	}

	fields := map[string]any{}
	if req.Type != nil {
		kind := strings.TrimSpace(*req.Type)
		if !domain.ValidType(kind) {
			return domain.Activity{}, domain.ErrInvalidType
		}
		fields["type"] = kind
	}
	if req.Subject != nil {
		fields["subject"] = strings.TrimSpace(*req.Subject)
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}
	if req.OccurredAt != nil {
		fields["occurred_at"] = req.OccurredAt.UTC()
	}
	if req.SetAccount {
		if err := tenancy.EnsureOwned[accountdomain.Account](ctx, s.db, orgID, req.AccountID, domain.ErrInvalidAccount); err != nil {
			return domain.Activity{}, err
		}
		fields["account_id"] = req.AccountID
	}
	if req.SetContact {
		if err := tenancy.EnsureOwned[contactdomain.Contact](ctx, s.db, orgID, req.ContactID, domain.ErrInvalidContact); err != nil {
			return domain.Activity{}, err
		}
		fields["contact_id"] = req.ContactID
	}
	if req.SetDeal {
		if err := tenancy.EnsureOwned[dealdomain.Deal](ctx, s.db, orgID, req.DealID, domain.ErrInvalidDeal); err != nil {
			return domain.Activity{}, err
		}
		fields["deal_id"] = req.DealID
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, s.db, orgID, id, fields); err != nil {
			return domain.Activity{}, err
		}
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Activity{}, err
	}
	if item == nil {
		return domain.Activity{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetActivityRequest) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, s.db, orgID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) ensureRefsOwned(ctx context.Context, orgID snowflake.ID, accountID, contactID, dealID *snowflake.ID) error {
	if err := tenancy.EnsureOwned[accountdomain.Account](ctx, s.db, orgID, accountID, domain.ErrInvalidAccount); err != nil {
		return err
	}
	if err := tenancy.EnsureOwned[contactdomain.Contact](ctx, s.db, orgID, contactID, domain.ErrInvalidContact); err != nil {
		return err
	}
	return tenancy.EnsureOwned[dealdomain.Deal](ctx, s.db, orgID, dealID, domain.ErrInvalidDeal)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
