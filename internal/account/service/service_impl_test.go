package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/internal/account/domain"
	"github.com/onebase/onebase/internal/account/repository"
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
	if err := dbConn.AutoMigrate(&domain.Account{}); err != nil {
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

func TestCreateAndGet(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	created, err := svc.Create(ctx, domain.CreateAccountRequest{
		Name:     "  Acme GmbH  ",
		Industry: "manufacturing",
		Website:  "https://acme.example",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != "Acme GmbH" {
		t.Fatalf("name = %q, want trimmed Acme GmbH", created.Name)
	}

	got, err := svc.GetByID(ctx, domain.GetAccountRequest{ID: created.ID.String()})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != created.ID || got.Industry != "manufacturing" {
		t.Fatalf("got %+v, want created account", got)
	}
}

func TestCreateEmptyName(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	_, err := svc.Create(ctx, domain.CreateAccountRequest{Name: "   "})
	if err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestCreateWithoutOrganization(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateAccountRequest{Name: "Acme"})
	if err != domain.ErrInvalidOrganization {
		t.Fatalf("expected ErrInvalidOrganization, got %v", err)
	}
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	created, err := svc.Create(ctx, domain.CreateAccountRequest{
		Name:     "Acme GmbH",
		Industry: "manufacturing",
		Phone:    "+49 30 1234",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	industry := "logistics"
	updated, err := svc.Update(ctx, domain.UpdateAccountRequest{
		ID:       created.ID.String(),
		Industry: &industry,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Industry != "logistics" {
		t.Fatalf("industry = %q, want logistics", updated.Industry)
	}
	if updated.Name != "Acme GmbH" || updated.Phone != "+49 30 1234" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	empty := " "
	_, err = svc.Update(ctx, domain.UpdateAccountRequest{
		ID:   created.ID.String(),
		Name: &empty,
	})
	if err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestGetAndDeleteAreTenantScoped(t *testing.T) {
	svc, _, node := newTestService(t)
	orgID := node.Generate()

	created, err := svc.Create(orgContext(orgID), domain.CreateAccountRequest{Name: "Acme"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	otherCtx := orgContext(node.Generate())
	if _, err := svc.GetByID(otherCtx, domain.GetAccountRequest{ID: created.ID.String()}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(otherCtx, domain.GetAccountRequest{ID: created.ID.String()}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The owner can still delete it.
	if err := svc.Delete(orgContext(orgID), domain.GetAccountRequest{ID: created.ID.String()}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestListSearchAndOrder(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	for _, name := range []string{"Zeta Corp", "Acme GmbH", "Beta AG"} {
		if _, err := svc.Create(ctx, domain.CreateAccountRequest{Name: name}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, err := svc.List(ctx, domain.ListAccountRequest{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].Name != "Acme GmbH" || items[2].Name != "Zeta Corp" {
		t.Fatalf("unexpected order: %q, %q, %q", items[0].Name, items[1].Name, items[2].Name)
	}

	items, err = svc.List(ctx, domain.ListAccountRequest{Search: "ACME"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Acme GmbH" {
		t.Fatalf("unexpected search result: %+v", items)
	}
}

func TestInvalidID(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	if _, err := svc.GetByID(ctx, domain.GetAccountRequest{ID: "not-a-number"}); err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
