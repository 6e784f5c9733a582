package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search     string
	Status     string
	CustomerID *snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	InsertItems(ctx context.Context, db *gorm.DB, items []InvoiceItem) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Invoice, error)
	FindWithItems(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]InvoiceListRow, error)
	MaxSequence(ctx context.Context, db *gorm.DB, orgID snowflake.ID, numberPrefix string) (int, error)
	NumberExists(ctx context.Context, db *gorm.DB, orgID snowflake.ID, number string, excludeID snowflake.ID) (bool, error)
	UpdateFields(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, fields map[string]any) error
	DeleteItems(ctx context.Context, db *gorm.DB, orgID, invoiceID snowflake.ID) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (int64, error)
}
