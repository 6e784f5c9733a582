package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/onebase/onebase/internal/account/domain"
	invoicedomain "github.com/onebase/onebase/internal/invoice/domain"
	"github.com/onebase/onebase/internal/invoicecustomer/domain"
	"github.com/onebase/onebase/internal/invoicecustomer/repository"
	"github.com/onebase/onebase/internal/orgcontext"
	"github.com/onebase/onebase/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	err = dbConn.AutoMigrate(
		&accountdomain.Account{},
		&domain.InvoiceCustomer{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	svc := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})

	return svc, dbConn, node
}

func orgContext(orgID snowflake.ID) context.Context {
	return orgcontext.WithOrgID(context.Background(), orgID)
}

func TestCreateTrimsBillingFields(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	created, err := svc.Create(ctx, domain.CreateInvoiceCustomerRequest{
		Name:                "  Acme GmbH  ",
		Email:               " billing@acme.example ",
		VatID:               " DE123456789 ",
		BillingAddressLine1: " Hauptstr. 1 ",
		BillingCity:         " Berlin ",
		BillingCountry:      " DE ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Acme GmbH" || created.VatID != "DE123456789" {
		t.Fatalf("fields not trimmed: %+v", created)
	}
	if created.BillingAddressLine1 != "Hauptstr. 1" || created.BillingCity != "Berlin" {
		t.Fatalf("billing fields not trimmed: %+v", created)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	orgID := node.Generate()
	ctx := orgContext(orgID)

	_, err := svc.Create(ctx, domain.CreateInvoiceCustomerRequest{Name: "  "})
	if err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	now := time.Now().UTC()
	foreign := accountdomain.Account{
		ID: node.Generate(), OrgID: node.Generate(), Name: "Other Org Inc",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := dbConn.Create(&foreign).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	_, err = svc.Create(ctx, domain.CreateInvoiceCustomerRequest{
		Name:      "Acme GmbH",
		AccountID: &foreign.ID,
	})
	if err != domain.ErrInvalidAccount {
		t.Fatalf("expected ErrInvalidAccount, got %v", err)
	}
}

func TestUpdateLinksAndUnlinksAccount(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	orgID := node.Generate()
	ctx := orgContext(orgID)
	now := time.Now().UTC()

	account := accountdomain.Account{
		ID: node.Generate(), OrgID: orgID, Name: "Acme GmbH",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := dbConn.Create(&account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	created, err := svc.Create(ctx, domain.CreateInvoiceCustomerRequest{Name: "Acme GmbH"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, domain.UpdateInvoiceCustomerRequest{
		ID:         created.ID.String(),
		SetAccount: true,
		AccountID:  &account.ID,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.AccountID == nil || *updated.AccountID != account.ID {
		t.Fatalf("account id = %v, want %v", updated.AccountID, account.ID)
	}

	updated, err = svc.Update(ctx, domain.UpdateInvoiceCustomerRequest{
		ID:         created.ID.String(),
		SetAccount: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.AccountID != nil {
		t.Fatalf("account id = %v, want nil", updated.AccountID)
	}
}

func TestListSearchesNameAndEmail(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	_, err := svc.Create(ctx, domain.CreateInvoiceCustomerRequest{
		Name:  "Acme GmbH",
		Email: "billing@acme.example",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err = svc.Create(ctx, domain.CreateInvoiceCustomerRequest{
		Name:  "Beta AG",
		Email: "rechnung@beta.example",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, err := svc.List(ctx, domain.ListInvoiceCustomerRequest{Search: "rechnung"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Beta AG" {
		t.Fatalf("unexpected search result: %+v", items)
	}

	items, err = svc.List(ctx, domain.ListInvoiceCustomerRequest{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Acme GmbH" {
		t.Fatalf("unexpected list order: %+v", items)
	}
}

func TestDeleteBlockedWhileInvoicesReference(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	orgID := node.Generate()
	ctx := orgContext(orgID)

	customer, err := svc.Create(ctx, domain.CreateInvoiceCustomerRequest{Name: "Acme GmbH"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	now := time.Now().UTC()
	invoice := invoicedomain.Invoice{
		ID:            node.Generate(),
		OrgID:         orgID,
		CustomerID:    customer.ID,
		InvoiceNumber: "INV-2026-0001",
		Status:        invoicedomain.StatusDraft,
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, 14),
		Currency:      "EUR",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := dbConn.Create(&invoice).Error; err != nil {
		t.Fatalf("failed to seed invoice: %v", err)
	}

	err = svc.Delete(ctx, domain.GetInvoiceCustomerRequest{ID: customer.ID.String()})
	if err != domain.ErrCustomerInUse {
		t.Fatalf("expected ErrCustomerInUse, got %v", err)
	}

	var count int64
	if err := dbConn.Model(&domain.InvoiceCustomer{}).
		Where("id = ?", customer.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count customers: %v", err)
	}
	if count != 1 {
		t.Fatal("expected referenced customer to survive")
	}

	// Once the invoice is gone the customer can be removed.
	if err := dbConn.Delete(&invoice).Error; err != nil {
		t.Fatalf("failed to delete invoice: %v", err)
	}
	if err := svc.Delete(ctx, domain.GetInvoiceCustomerRequest{ID: customer.ID.String()}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestDeleteIsTenantScoped(t *testing.T) {
	svc, _, node := newTestService(t)
	orgID := node.Generate()

	created, err := svc.Create(orgContext(orgID), domain.CreateInvoiceCustomerRequest{Name: "Acme GmbH"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(orgContext(node.Generate()), domain.GetInvoiceCustomerRequest{ID: created.ID.String()}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(orgContext(orgID), domain.GetInvoiceCustomerRequest{ID: created.ID.String()}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}
