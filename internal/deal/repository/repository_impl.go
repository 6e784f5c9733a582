package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/internal/deal/domain"
	"github.com/onebase/onebase/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, deal *domain.Deal) error {
	return db.WithContext(ctx).Create(deal).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Deal, error) {
	var deal domain.Deal
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&deal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter, page pagination.Pagination) ([]domain.Deal, error) {
	var deals []domain.Deal
	stmt := db.WithContext(ctx).
		Model(&domain.Deal{}).
		Where("org_id = ?", orgID)
	if filter.StageID != nil {
		stmt = stmt.Where("stage_id = ?", *filter.StageID)
	}
	if filter.AccountID != nil {
		stmt = stmt.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		stmt = stmt.Where("LOWER(name) LIKE ?", pattern)
	}
	err := page.Apply(stmt).
		Order("created_at desc").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, fields map[string]any) error {
	tx := db.WithContext(ctx).
		Model(&domain.Deal{}).
		Where("org_id = ? AND id = ?", orgID, id).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (int64, error) {
	tx := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&domain.Deal{})
	return tx.RowsAffected, tx.Error
}

func (r *repo) ListStages(ctx context.Context, db *gorm.DB, orgID snowflake.ID) ([]domain.DealStage, error) {
	var stages []domain.DealStage
	err := db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("sort_order asc").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}
