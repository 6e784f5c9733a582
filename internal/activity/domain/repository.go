package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	AccountID *snowflake.ID
	ContactID *snowflake.ID
	DealID    *snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, activity *Activity) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Activity, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]Activity, error)
	UpdateFields(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (int64, error)
}
