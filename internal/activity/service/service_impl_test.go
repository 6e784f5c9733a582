package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/onebase/onebase/internal/account/domain"
	"github.com/onebase/onebase/internal/activity/domain"
	"github.com/onebase/onebase/internal/activity/repository"
	contactdomain "github.com/onebase/onebase/internal/contact/domain"
	dealdomain "github.com/onebase/onebase/internal/deal/domain"
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
		&contactdomain.Contact{},
		&dealdomain.Deal{},
		&domain.Activity{},
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

func TestCreateDefaultsOccurredAt(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	before := time.Now().UTC()
	created, err := svc.Create(ctx, domain.CreateActivityRequest{
		Type:            domain.TypeNote,
		Subject:         "kickoff",
		CreatedByUserID: node.Generate(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.OccurredAt.Before(before.Add(-time.Second)) {
		t.Fatalf("occurred_at = %v, want around now", created.OccurredAt)
	}
}

func TestCreateValidatesTypeAndUser(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())

	_, err := svc.Create(ctx, domain.CreateActivityRequest{
		Type:            "email",
		CreatedByUserID: node.Generate(),
	})
	if err != domain.ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}

	_, err = svc.Create(ctx, domain.CreateActivityRequest{Type: domain.TypeCall})
	if err != domain.ErrInvalidUser {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
}

func TestCreateRejectsForeignReferences(t *testing.T) {
	svc, dbConn, node := newTestService(t)
	orgID := node.Generate()
	ctx := orgContext(orgID)
	now := time.Now().UTC()

	foreignAccount := accountdomain.Account{
		ID: node.Generate(), OrgID: node.Generate(), Name: "Other Org Inc",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := dbConn.Create(&foreignAccount).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	_, err := svc.Create(ctx, domain.CreateActivityRequest{
		Type:            domain.TypeMeeting,
		AccountID:       &foreignAccount.ID,
		CreatedByUserID: node.Generate(),
	})
	if err != domain.ErrInvalidAccount {
		t.Fatalf("expected ErrInvalidAccount, got %v", err)
	}
}

func TestUpdateClearsReference(t *testing.T) {
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

	created, err := svc.Create(ctx, domain.CreateActivityRequest{
		Type:            domain.TypeCall,
		Subject:         "intro call",
		AccountID:       &account.ID,
		CreatedByUserID: node.Generate(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, domain.UpdateActivityRequest{
		ID:         created.ID.String(),
		SetAccount: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.AccountID != nil {
		t.Fatalf("account id = %v, want nil", updated.AccountID)
	}

	subject := "follow-up call"
	updated, err = svc.Update(ctx, domain.UpdateActivityRequest{
		ID:      created.ID.String(),
		Subject: &subject,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Subject != "follow-up call" {
		t.Fatalf("subject = %q, want follow-up call", updated.Subject)
	}
	if updated.Type != domain.TypeCall {
		t.Fatalf("type changed to %q", updated.Type)
	}
}

func TestListOrdersByOccurredAtDesc(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx := orgContext(node.Generate())
	userID := node.Generate()

	older := time.Now().UTC().Add(-48 * time.Hour)
	newer := time.Now().UTC().Add(-time.Hour)

	_, err := svc.Create(ctx, domain.CreateActivityRequest{
		Type: domain.TypeNote, Subject: "old", OccurredAt: &older, CreatedByUserID: userID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err = svc.Create(ctx, domain.CreateActivityRequest{
		Type: domain.TypeNote, Subject: "new", OccurredAt: &newer, CreatedByUserID: userID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	items, err := svc.List(ctx, domain.ListActivityRequest{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Subject != "new" || items[1].Subject != "old" {
		t.Fatalf("unexpected order: %q, %q", items[0].Subject, items[1].Subject)
	}
}

func TestDeleteIsTenantScoped(t *testing.T) {
	svc, _, node := newTestService(t)
	orgID := node.Generate()

	created, err := svc.Create(orgContext(orgID), domain.CreateActivityRequest{
		Type:            domain.TypeNote,
		CreatedByUserID: node.Generate(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(orgContext(node.Generate()), domain.GetActivityRequest{ID: created.ID.String()}); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(orgContext(orgID), domain.GetActivityRequest{ID: created.ID.String()}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}
