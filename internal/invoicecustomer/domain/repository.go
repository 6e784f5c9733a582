package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search    string
	AccountID *snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *InvoiceCustomer) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*InvoiceCustomer, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]InvoiceCustomer, error)
	UpdateFields(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (int64, error)
}
