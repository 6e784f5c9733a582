package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Search    string
	StageID   *snowflake.ID
	AccountID *snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, deal *Deal) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Deal, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]Deal, error)
	UpdateFields(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, fields map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (int64, error)
	ListStages(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]DealStage, error)
}
