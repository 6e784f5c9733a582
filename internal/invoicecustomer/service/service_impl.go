package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/onebase/onebase/internal/account/domain"
	invoicedomain "github.com/onebase/onebase/internal/invoice/domain"
	"github.com/onebase/onebase/internal/invoicecustomer/domain"
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
		log:   p.Log.Named("invoicecustomer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceCustomerRequest) (domain.InvoiceCustomer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.InvoiceCustomer{}, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.InvoiceCustomer{}, domain.ErrInvalidName
	}

	if err := tenancy.EnsureOwned[accountdomain.Account](ctx, s.db, orgID, req.AccountID, domain.ErrInvalidAccount); err != nil {
		return domain.InvoiceCustomer{}, err
	}

	now := time.Now().UTC()
	customer := domain.InvoiceCustomer{
		ID:                  s.genID.Generate(),
		OrgID:               orgID,
		AccountID:           req.AccountID,
		Name:                name,
		Email:               strings.TrimSpace(req.Email),
		Phone:               strings.TrimSpace(req.Phone),
		VatID:               strings.TrimSpace(req.VatID),
		BillingAddressLine1: strings.TrimSpace(req.BillingAddressLine1),
		BillingAddressLine2: strings.TrimSpace(req.BillingAddressLine2),
		BillingPostalCode:   strings.TrimSpace(req.BillingPostalCode),
		BillingCity:         strings.TrimSpace(req.BillingCity),
		BillingCountry:      strings.TrimSpace(req.BillingCountry),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.InvoiceCustomer{}, err
	}

	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceCustomerRequest) (domain.InvoiceCustomer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.InvoiceCustomer{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.InvoiceCustomer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.InvoiceCustomer{}, err
	}
	if item == nil {
		return domain.InvoiceCustomer{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceCustomerRequest) ([]domain.InvoiceCustomer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	return s.repo.List(ctx, s.db, orgID, domain.ListFilter{
		Search:    strings.TrimSpace(req.Search),
		AccountID: req.AccountID,
	}, req.Page)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceCustomerRequest) (domain.InvoiceCustomer, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.InvoiceCustomer{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.InvoiceCustomer{}, err
	}

	fields := map[string]any{}
	if req.SetAccount {
		if err := tenancy.EnsureOwned[accountdomain.Account](ctx, s.db, orgID, req.AccountID, domain.ErrInvalidAccount); err != nil {
			return domain.InvoiceCustomer{}, err
		}
		fields["account_id"] = req.AccountID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.InvoiceCustomer{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.VatID != nil {
		fields["vat_id"] = strings.TrimSpace(*req.VatID)
	}
	if req.BillingAddressLine1 != nil {
		fields["billing_address_line1"] = strings.TrimSpace(*req.BillingAddressLine1)
	}
	if req.BillingAddressLine2 != nil {
		fields["billing_address_line2"] = strings.TrimSpace(*req.BillingAddressLine2)
	}
	if req.BillingPostalCode != nil {
		fields["billing_postal_code"] = strings.TrimSpace(*req.BillingPostalCode)
	}
	if req.BillingCity != nil {
		fields["billing_city"] = strings.TrimSpace(*req.BillingCity)
	}
	if req.BillingCountry != nil {
		fields["billing_country"] = strings.TrimSpace(*req.BillingCountry)
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, s.db, orgID, id, fields); err != nil {
			return domain.InvoiceCustomer{}, err
		}
	}

	item, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.InvoiceCustomer{}, err
	}
	if item == nil {
		return domain.InvoiceCustomer{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetInvoiceCustomerRequest) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	// Invoices reference customers without a cascade, so a customer that is
	// still billed against cannot be removed.
	var referencing int64
	err = s.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("org_id = ? AND customer_id = ?", orgID, id).
		Count(&referencing).Error
	if err != nil {
		return err
	}
	if referencing > 0 {
		return domain.ErrCustomerInUse
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

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
