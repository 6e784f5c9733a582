package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/onebase/onebase/internal/account/domain"
	"github.com/onebase/onebase/internal/config"
	contactdomain "github.com/onebase/onebase/internal/contact/domain"
	"github.com/onebase/onebase/internal/deal/domain"
	"github.com/onebase/onebase/internal/orgcontext"
	"github.com/onebase/onebase/pkg/tenancy"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Invoicing *config.InvoicingConfigHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	invoicing *config.InvoicingConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("deal.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		invoicing: p.Invoicing,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDealRequest) (domain.Deal, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Deal{}, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Deal{}, domain.ErrInvalidName
	}

	accountID, err := snowflake.ParseString(strings.TrimSpace(req.AccountID))
	if err != nil || accountID == 0 {
		return domain.Deal{}, domain.ErrInvalidAccount
	}
	stageID, err := snowflake.ParseString(strings.TrimSpace(req.StageID))
	if err != nil || stageID == 0 {
		return domain.Deal{}, domain.ErrInvalidStage
	}

	if err := tenancy.EnsureOwned[accountdomain.Account](ctx, s.db, orgID, &accountID, domain.ErrInvalidAccount); err != nil {
		return domain.Deal{}, err
	}
	if err := tenancy.EnsureOwned[domain.DealStage](ctx, s.db, orgID, &stageID, domain.ErrInvalidStage); err != nil {
		return domain.Deal{}, err
	}
	if err := tenancy.EnsureOwned[contactdomain.Contact](ctx, s.db, orgID, req.PrimaryContactID, domain.ErrInvalidContact); err != nil {
		return domain.Deal{}, err
	}

	amount := int64(0)
	if req.AmountCents != nil {
		if *req.AmountCents < 0 {
			return domain.Deal{}, domain.ErrInvalidAmount
		}
		amount = *req.AmountCents
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.invoicing.Get().DefaultCurrency
	}
	if len(currency) != 3 {
		return domain.Deal{}, domain.ErrInvalidCurrency
	}

	now := time.Now().UTC()
	deal := domain.Deal{
		ID:                s.genID.Generate(),
		OrgID:             orgID,
		AccountID:         accountID,
		PrimaryContactID:  req.PrimaryContactID,
		StageID:           stageID,
		Name:              name,
		AmountCents:       amount,
		Currency:          currency,
		ExpectedCloseDate: req.ExpectedCloseDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &deal); err != nil {
		return domain.Deal{}, err
	}

	return deal, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetDealRequest) (domain.Deal, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Deal{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Deal{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Deal{}, err
	}
	if item == nil {
		return domain.Deal{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListDealRequest) ([]domain.Deal, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	return s.repo.List(ctx, s.db, orgID, domain.ListFilter{
		Search:    strings.TrimSpace(req.Search),
		StageID:   req.StageID,
		AccountID: req.AccountID,
	}, req.Page)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateDealRequest) (domain.Deal, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Deal{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Deal{}, err
	}

	fields := map[string]any{}
	if req.AccountID != nil {
		accountID, err := snowflake.ParseString(strings.TrimSpace(*req.AccountID))
		if err != nil || accountID == 0 {
			return domain.Deal{}, domain.ErrInvalidAccount
		}
		if err := tenancy.EnsureOwned[accountdomain.Account](ctx, s.db, orgID, &accountID, domain.ErrInvalidAccount); err != nil {
			return domain.Deal{}, err
		}
		fields["account_id"] = accountID
	}
	if req.SetPrimaryContact {
		if err := tenancy.EnsureOwned[contactdomain.Contact](ctx, s.db, orgID, req.PrimaryContactID, domain.ErrInvalidContact); err != nil {
			return domain.Deal{}, err
		}
		fields["primary_contact_id"] = req.PrimaryContactID
	}
	if req.StageID != nil {
		stageID, err := snowflake.ParseString(strings.TrimSpace(*req.StageID))
		if err != nil || stageID == 0 {
			return domain.Deal{}, domain.ErrInvalidStage
		}
		if err := tenancy.EnsureOwned[domain.DealStage](ctx, s.db, orgID, &stageID, domain.ErrInvalidStage); err != nil {
			return domain.Deal{}, err
		}
		fields["stage_id"] = stageID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Deal{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.AmountCents != nil {
		if *req.AmountCents < 0 {
			return domain.Deal{}, domain.ErrInvalidAmount
		}
		fields["amount_cents"] = *req.AmountCents
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			return domain.Deal{}, domain.ErrInvalidCurrency
		}
		fields["currency"] = currency
	}
	if req.SetCloseDate {
		fields["expected_close_date"] = req.ExpectedCloseDate
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, s.db, orgID, id, fields); err != nil {
			return domain.Deal{}, err
		}
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Deal{}, err
	}
	if item == nil {
		return domain.Deal{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetDealRequest) error {
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

func (s *Service) ListStages(ctx context.Context) ([]domain.DealStage, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}
	return s.repo.ListStages(ctx, s.db, orgID)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
