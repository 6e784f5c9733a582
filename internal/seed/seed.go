package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	authdomain "github.com/onebase/onebase/internal/auth/domain"
	"github.com/onebase/onebase/internal/auth/password"
	"github.com/onebase/onebase/internal/config"
	dealdomain "github.com/onebase/onebase/internal/deal/domain"
	organizationdomain "github.com/onebase/onebase/internal/organization/domain"
	"gorm.io/gorm"
)

// EnsureMainOrgAndAdmin seeds the default organization, the admin user and
// the default deal pipeline for self-hosted bootstrap.
func EnsureMainOrgAndAdmin(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org, err := ensureOrgTx(ctx, tx, node, cfg.Bootstrap.DefaultOrgName)
		if err != nil {
			return err
		}
		if err := ensureAdminTx(ctx, tx, node, org.ID, cfg); err != nil {
			return err
		}
		return ensureDealStagesTx(ctx, tx, node, org.ID)
	})
}

func ensureOrgTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (organizationdomain.Organization, error) {
	orgSlug := slug.Make(name)

	var org organizationdomain.Organization
	err := tx.WithContext(ctx).Where("slug = ?", orgSlug).First(&org).Error
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return org, err
	}

	now := time.Now().UTC()
	org = organizationdomain.Organization{
		ID:        node.Generate(),
		Name:      name,
		Slug:      orgSlug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		return org, err
	}
	return org, nil
}

func ensureAdminTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, orgID snowflake.ID, cfg config.Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Bootstrap.DefaultAdminEmail))

	var user authdomain.User
	err := tx.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(cfg.Bootstrap.DefaultAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user = authdomain.User{
		ID:           node.Generate(),
		OrgID:        orgID,
		Email:        email,
		PasswordHash: &hashed,
		Role:         authdomain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&user).Error
}

func ensureDealStagesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, orgID snowflake.ID) error {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&dealdomain.DealStage{}).
		Where("org_id = ?", orgID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type stage struct {
		Name     string
		IsClosed bool
	}
	stages := []stage{
		{Name: "Lead"},
		{Name: "Qualified"},
		{Name: "Proposal"},
		{Name: "Negotiation"},
		{Name: "Won", IsClosed: true},
		{Name: "Lost", IsClosed: true},
	}

	now := time.Now().UTC()
	for i, s := range stages {
		record := dealdomain.DealStage{
			ID:        node.Generate(),
			OrgID:     orgID,
			Name:      s.Name,
			SortOrder: i + 1,
			IsClosed:  s.IsClosed,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}
