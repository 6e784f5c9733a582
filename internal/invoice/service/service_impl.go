package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/internal/config"
	"github.com/onebase/onebase/internal/invoice/domain"
	invoicecustomerdomain "github.com/onebase/onebase/internal/invoicecustomer/domain"
	"github.com/onebase/onebase/internal/orgcontext"
	pkgdb "github.com/onebase/onebase/pkg/db"
	"github.com/onebase/onebase/pkg/tenancy"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// How many times a generated invoice number is retried when a concurrent
// create wins the unique index race.
const maxNumberAttempts = 3

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
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		invoicing: p.Invoicing,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOrganization
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil || customerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidCustomer
	}
	if err := tenancy.EnsureOwned[invoicecustomerdomain.InvoiceCustomer](ctx, s.db, orgID, &customerID, domain.ErrInvalidCustomer); err != nil {
		return domain.Invoice{}, err
	}

	cfg := s.invoicing.Get()

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = domain.StatusDraft
	}
	if !domain.ValidStatus(status) {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = cfg.DefaultCurrency
	}
	if len(currency) != 3 {
		return domain.Invoice{}, domain.ErrInvalidCurrency
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	dueDate := issueDate.AddDate(0, 0, cfg.DefaultDueDays)
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}
	if dueDate.Before(issueDate) {
		return domain.Invoice{}, domain.ErrInvalidDueDate
	}

	items, totals, err := buildItems(req.Items)
	if err != nil {
		return domain.Invoice{}, err
	}

	explicitNumber := strings.TrimSpace(req.InvoiceNumber)

	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		CustomerID:    customerID,
		Status:        status,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Currency:      currency,
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 1; ; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if explicitNumber != "" {
				taken, err := s.repo.NumberExists(ctx, tx, orgID, explicitNumber, 0)
				if err != nil {
					return err
				}
				if taken {
					return domain.ErrNumberConflict
				}
				invoice.InvoiceNumber = explicitNumber
			} else {
				seq, err := s.repo.MaxSequence(ctx, tx, orgID, domain.NumberPrefix(cfg.NumberPrefix, issueDate.Year()))
				if err != nil {
					return err
				}
				invoice.InvoiceNumber = domain.FormatNumber(cfg.NumberPrefix, issueDate.Year(), seq+1, cfg.SequenceWidth)
			}

			if err := s.repo.Insert(ctx, tx, &invoice); err != nil {
				return err
			}
			return s.repo.InsertItems(ctx, tx, materializeItems(s.genID, orgID, invoice.ID, items, totals, now))
		})
		if err == nil {
			break
		}
		if pkgdb.IsDuplicateKeyErr(err) {
			if explicitNumber != "" {
				return domain.Invoice{}, domain.ErrNumberConflict
			}
			if attempt < maxNumberAttempts {
				s.log.Warn("invoice number collision, retrying",
					zap.String("invoice_number", invoice.InvoiceNumber),
					zap.Int("attempt", attempt))
				continue
			}
			return domain.Invoice{}, domain.ErrNumberConflict
		}
		return domain.Invoice{}, err
	}

	created, err := s.repo.FindWithItems(ctx, s.db, orgID, invoice.ID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if created == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.Int64("total_cents", invoice.TotalCents))

	return *created, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceRequest) (domain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	item, err := s.repo.FindWithItems(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if item == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) ([]domain.InvoiceListRow, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	status := strings.TrimSpace(req.Status)
	if status != "" && !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	return s.repo.List(ctx, s.db, orgID, domain.ListFilter{
		Search:     strings.TrimSpace(req.Search),
		Status:     status,
		CustomerID: req.CustomerID,
	}, req.Page)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, orgID, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		fields := map[string]any{}
		if req.CustomerID != nil {
			customerID, err := snowflake.ParseString(strings.TrimSpace(*req.CustomerID))
			if err != nil || customerID == 0 {
				return domain.ErrInvalidCustomer
			}
			if err := tenancy.EnsureOwned[invoicecustomerdomain.InvoiceCustomer](ctx, tx, orgID, &customerID, domain.ErrInvalidCustomer); err != nil {
				return err
			}
			fields["customer_id"] = customerID
		}
		if req.InvoiceNumber != nil {
			number := strings.TrimSpace(*req.InvoiceNumber)
			if number == "" {
				return domain.ErrInvalidNumber
			}
			taken, err := s.repo.NumberExists(ctx, tx, orgID, number, id)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrNumberConflict
			}
			fields["invoice_number"] = number
		}
		if req.Status != nil {
			status := strings.TrimSpace(*req.Status)
			if !domain.ValidStatus(status) {
				return domain.ErrInvalidStatus
			}
			fields["status"] = status
		}

		issueDate := existing.IssueDate
		if req.IssueDate != nil {
			issueDate = req.IssueDate.UTC()
			fields["issue_date"] = issueDate
		}
		dueDate := existing.DueDate
		if req.DueDate != nil {
			dueDate = req.DueDate.UTC()
			fields["due_date"] = dueDate
		}
		if dueDate.Before(issueDate) {
			return domain.ErrInvalidDueDate
		}

		if req.Currency != nil {
			currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
			if len(currency) != 3 {
				return domain.ErrInvalidCurrency
			}
			fields["currency"] = currency
		}
		if req.Notes != nil {
			fields["notes"] = *req.Notes
		}

		if req.Items != nil {
			items, totals, err := buildItems(*req.Items)
			if err != nil {
				return err
			}
			if err := s.repo.DeleteItems(ctx, tx, orgID, id); err != nil {
				return err
			}
			now := time.Now().UTC()
			if err := s.repo.InsertItems(ctx, tx, materializeItems(s.genID, orgID, id, items, totals, now)); err != nil {
				return err
			}
			fields["subtotal_cents"] = totals.SubtotalCents
			fields["tax_cents"] = totals.TaxCents
			fields["total_cents"] = totals.TotalCents
		}

		if len(fields) > 0 {
			fields["updated_at"] = time.Now().UTC()
			return s.repo.UpdateFields(ctx, tx, orgID, id, fields)
		}
		return nil
	})
	if err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return domain.Invoice{}, domain.ErrNumberConflict
		}
		return domain.Invoice{}, err
	}

	item, err := s.repo.FindWithItems(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if item == nil {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.GetInvoiceRequest) error {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ErrInvalidOrganization
	}

	id, err := parseID(req.ID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteItems(ctx, tx, orgID, id); err != nil {
			return err
		}
		affected, err := s.repo.Delete(ctx, tx, orgID, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// buildItems validates the line inputs and computes all derived amounts.
func buildItems(inputs []domain.ItemInput) ([]domain.ItemInput, domain.Totals, error) {
	if len(inputs) == 0 {
		return nil, domain.Totals{}, domain.ErrNoItems
	}
	cleaned := make([]domain.ItemInput, 0, len(inputs))
	for _, input := range inputs {
		input.Description = strings.TrimSpace(input.Description)
		if input.Description == "" {
			return nil, domain.Totals{}, domain.ErrInvalidItem
		}
		if input.Quantity < 1 {
			return nil, domain.Totals{}, domain.ErrInvalidItem
		}
		if input.UnitPriceCents < 0 {
			return nil, domain.Totals{}, domain.ErrInvalidItem
		}
		if input.TaxRateBps < 0 || input.TaxRateBps > 10000 {
			return nil, domain.Totals{}, domain.ErrInvalidItem
		}
		if input.SortOrder != nil && *input.SortOrder < 0 {
			return nil, domain.Totals{}, domain.ErrInvalidItem
		}
		cleaned = append(cleaned, input)
	}
	return cleaned, domain.ComputeTotals(cleaned), nil
}

func materializeItems(genID *snowflake.Node, orgID, invoiceID snowflake.ID, inputs []domain.ItemInput, totals domain.Totals, now time.Time) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, 0, len(inputs))
	for i, input := range inputs {
		sortOrder := i + 1
		if input.SortOrder != nil {
			sortOrder = *input.SortOrder
		}
		line := totals.Lines[i]
		items = append(items, domain.InvoiceItem{
			ID:                genID.Generate(),
			OrgID:             orgID,
			InvoiceID:         invoiceID,
			Description:       input.Description,
			Quantity:          input.Quantity,
			UnitPriceCents:    input.UnitPriceCents,
			TaxRateBps:        input.TaxRateBps,
			LineSubtotalCents: line.SubtotalCents,
			LineTaxCents:      line.TaxCents,
			LineTotalCents:    line.TotalCents,
			SortOrder:         sortOrder,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return items
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
