package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/internal/invoice/domain"
	"github.com/onebase/onebase/pkg/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (domain.Repository, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&domain.Invoice{}, &domain.InvoiceItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return Provide(), dbConn, node
}

func seedInvoice(t *testing.T, repo domain.Repository, dbConn *gorm.DB, node *snowflake.Node, orgID snowflake.ID, number string) domain.Invoice {
	t.Helper()

	now := time.Now().UTC()
	invoice := domain.Invoice{
		ID:            node.Generate(),
		OrgID:         orgID,
		CustomerID:    node.Generate(),
		InvoiceNumber: number,
		Status:        domain.StatusDraft,
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, 14),
		Currency:      "EUR",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Insert(context.Background(), dbConn, &invoice))
	return invoice
}

func TestMaxSequenceIgnoresLexicalOrder(t *testing.T) {
	repo, dbConn, node := setup(t)
	ctx := context.Background()
	orgID := node.Generate()
	prefix := "INV-2026-"

	// "INV-2026-999" sorts after "INV-2026-0100" lexically but its sequence
	// is smaller, and foreign numbers must not count at all.
	seedInvoice(t, repo, dbConn, node, orgID, "INV-2026-0100")
	seedInvoice(t, repo, dbConn, node, orgID, "INV-2026-999")
	seedInvoice(t, repo, dbConn, node, orgID, "INV-2025-5000")
	seedInvoice(t, repo, dbConn, node, orgID, "CUSTOM-9999")
	seedInvoice(t, repo, dbConn, node, node.Generate(), "INV-2026-7777")

	seq, err := repo.MaxSequence(ctx, dbConn, orgID, prefix)
	require.NoError(t, err)
	require.Equal(t, 999, seq)
}

func TestMaxSequenceEmptyOrg(t *testing.T) {
	repo, dbConn, node := setup(t)

	seq, err := repo.MaxSequence(context.Background(), dbConn, node.Generate(), "INV-2026-")
	require.NoError(t, err)
	require.Equal(t, 0, seq)
}

func TestNumberExists(t *testing.T) {
	repo, dbConn, node := setup(t)
	ctx := context.Background()
	orgID := node.Generate()

	invoice := seedInvoice(t, repo, dbConn, node, orgID, "INV-2026-0001")

	taken, err := repo.NumberExists(ctx, dbConn, orgID, "INV-2026-0001", 0)
	require.NoError(t, err)
	require.True(t, taken)

	// The invoice itself is excluded when checking its own update.
	taken, err = repo.NumberExists(ctx, dbConn, orgID, "INV-2026-0001", invoice.ID)
	require.NoError(t, err)
	require.False(t, taken)

	taken, err = repo.NumberExists(ctx, dbConn, node.Generate(), "INV-2026-0001", 0)
	require.NoError(t, err)
	require.False(t, taken)
}

func TestInsertDuplicateNumberFails(t *testing.T) {
	repo, dbConn, node := setup(t)
	orgID := node.Generate()

	seedInvoice(t, repo, dbConn, node, orgID, "INV-2026-0001")

	now := time.Now().UTC()
	dup := domain.Invoice{
		ID:            node.Generate(),
		OrgID:         orgID,
		CustomerID:    node.Generate(),
		InvoiceNumber: "INV-2026-0001",
		Status:        domain.StatusDraft,
		IssueDate:     now,
		DueDate:       now,
		Currency:      "EUR",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := repo.Insert(context.Background(), dbConn, &dup)
	require.Error(t, err)
	require.True(t, db.IsDuplicateKeyErr(err))
}

func TestFindWithItemsOrdersBySortOrder(t *testing.T) {
	repo, dbConn, node := setup(t)
	ctx := context.Background()
	orgID := node.Generate()

	invoice := seedInvoice(t, repo, dbConn, node, orgID, "INV-2026-0001")

	now := time.Now().UTC()
	var items []domain.InvoiceItem
	for i, sortOrder := range []int{3, 1, 2} {
		items = append(items, domain.InvoiceItem{
			ID:          node.Generate(),
			OrgID:       orgID,
			InvoiceID:   invoice.ID,
			Description: fmt.Sprintf("line %d", i+1),
			Quantity:    1,
			SortOrder:   sortOrder,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	require.NoError(t, repo.InsertItems(ctx, dbConn, items))

	found, err := repo.FindWithItems(ctx, dbConn, orgID, invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Len(t, found.Items, 3)
	require.Equal(t, []int{1, 2, 3}, []int{
		found.Items[0].SortOrder,
		found.Items[1].SortOrder,
		found.Items[2].SortOrder,
	})
}
