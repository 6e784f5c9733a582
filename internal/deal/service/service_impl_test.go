package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/onebase/onebase/internal/account/domain"
	"github.com/onebase/onebase/internal/config"
	contactdomain "github.com/onebase/onebase/internal/contact/domain"
	"github.com/onebase/onebase/internal/deal/domain"
	"github.com/onebase/onebase/internal/deal/repository"
	"github.com/onebase/onebase/internal/orgcontext"
	"github.com/onebase/onebase/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc     domain.Service
	db      *gorm.DB
	node    *snowflake.Node
	orgID   snowflake.ID
	account accountdomain.Account
	stage   domain.DealStage
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	err = dbConn.AutoMigrate(
		&accountdomain.Account{},
		&contactdomain.Contact{},
		&domain.DealStage{},
		&domain.Deal{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	svc := New(Params{
		DB:        dbConn,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		Invoicing: config.NewStaticInvoicingConfigHolder(config.DefaultInvoicingConfig()),
	})

	orgID := node.Generate()
	now := time.Now().UTC()

	account := accountdomain.Account{
		ID: node.Generate(), OrgID: orgID, Name: "Acme GmbH",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := dbConn.Create(&account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	stage := domain.DealStage{
		ID: node.Generate(), OrgID: orgID, Name: "Lead", SortOrder: 1,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := dbConn.Create(&stage).Error; err != nil {
		t.Fatalf("failed to seed stage: %v", err)
	}

	return fixture{svc: svc, db: dbConn, node: node, orgID: orgID, account: account, stage: stage}
}

func (f fixture) ctx() context.Context {
	return orgcontext.WithOrgID(context.Background(), f.orgID)
}

func TestCreateDefaultsCurrency(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx(), domain.CreateDealRequest{
		AccountID: f.account.ID.String(),
		StageID:   f.stage.ID.String(),
		Name:      "Yearly license",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Currency != "EUR" {
		t.Fatalf("currency = %q, want EUR", created.Currency)
	}
	if created.AmountCents != 0 {
		t.Fatalf("amount = %d, want 0", created.AmountCents)
	}
}

func TestCreateValidatesReferences(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctx()

	_, err := f.svc.Create(ctx, domain.CreateDealRequest{
		AccountID: f.node.Generate().String(),
		StageID:   f.stage.ID.String(),
		Name:      "Deal",
	})
	if err != domain.ErrInvalidAccount {
		t.Fatalf("expected ErrInvalidAccount, got %v", err)
	}

	_, err = f.svc.Create(ctx, domain.CreateDealRequest{
		AccountID: f.account.ID.String(),
		StageID:   f.node.Generate().String(),
		Name:      "Deal",
	})
	if err != domain.ErrInvalidStage {
		t.Fatalf("expected ErrInvalidStage, got %v", err)
	}

	foreignContact := contactdomain.Contact{
		ID: f.node.Generate(), OrgID: f.node.Generate(),
		FirstName: "Max", LastName: "Muster",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := f.db.Create(&foreignContact).Error; err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}
	_, err = f.svc.Create(ctx, domain.CreateDealRequest{
		AccountID:        f.account.ID.String(),
		StageID:          f.stage.ID.String(),
		Name:             "Deal",
		PrimaryContactID: &foreignContact.ID,
	})
	if err != domain.ErrInvalidContact {
		t.Fatalf("expected ErrInvalidContact, got %v", err)
	}

	amount := int64(-1)
	_, err = f.svc.Create(ctx, domain.CreateDealRequest{
		AccountID:   f.account.ID.String(),
		StageID:     f.stage.ID.String(),
		Name:        "Deal",
		AmountCents: &amount,
	})
	if err != domain.ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestUpdateStageAndCloseDate(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctx()

	created, err := f.svc.Create(ctx, domain.CreateDealRequest{
		AccountID: f.account.ID.String(),
		StageID:   f.stage.ID.String(),
		Name:      "Yearly license",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	now := time.Now().UTC()
	won := domain.DealStage{
		ID: f.node.Generate(), OrgID: f.orgID, Name: "Won", SortOrder: 5, IsClosed: true,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := f.db.Create(&won).Error; err != nil {
		t.Fatalf("failed to seed stage: %v", err)
	}

	stageID := won.ID.String()
	closeDate := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	updated, err := f.svc.Update(ctx, domain.UpdateDealRequest{
		ID:                created.ID.String(),
		StageID:           &stageID,
		SetCloseDate:      true,
		ExpectedCloseDate: &closeDate,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.StageID != won.ID {
		t.Fatalf("stage = %v, want %v", updated.StageID, won.ID)
	}
	if updated.ExpectedCloseDate == nil || !updated.ExpectedCloseDate.Equal(closeDate) {
		t.Fatalf("close date = %v, want %v", updated.ExpectedCloseDate, closeDate)
	}

	// Clearing the close date again.
	updated, err = f.svc.Update(ctx, domain.UpdateDealRequest{
		ID:           created.ID.String(),
		SetCloseDate: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ExpectedCloseDate != nil {
		t.Fatalf("close date = %v, want nil", updated.ExpectedCloseDate)
	}
}

func TestListFiltersByStage(t *testing.T) {
	f := newFixture(t)
	ctx := f.ctx()

	_, err := f.svc.Create(ctx, domain.CreateDealRequest{
		AccountID: f.account.ID.String(),
		StageID:   f.stage.ID.String(),
		Name:      "Yearly license",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, err := f.svc.List(ctx, domain.ListDealRequest{StageID: &f.stage.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}

	other := f.node.Generate()
	items, err = f.svc.List(ctx, domain.ListDealRequest{StageID: &other})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %d, want 0", len(items))
	}
}

func TestListStagesOnlyOwnOrg(t *testing.T) {
	f := newFixture(t)

	now := time.Now().UTC()
	foreign := domain.DealStage{
		ID: f.node.Generate(), OrgID: f.node.Generate(), Name: "Lead", SortOrder: 1,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := f.db.Create(&foreign).Error; err != nil {
		t.Fatalf("failed to seed stage: %v", err)
	}

	stages, err := f.svc.ListStages(f.ctx())
	if err != nil {
		t.Fatalf("list stages failed: %v", err)
	}
	if len(stages) != 1 || stages[0].ID != f.stage.ID {
		t.Fatalf("unexpected stages: %+v", stages)
	}
}
