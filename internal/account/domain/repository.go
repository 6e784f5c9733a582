package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Account, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]Account, error)
	UpdateFields(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (int64, error)
}
