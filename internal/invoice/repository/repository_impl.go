package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/onebase/onebase/internal/invoice/domain"
	"github.com/onebase/onebase/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Omit("Items").Create(invoice).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) FindWithItems(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order asc, id asc")
		}).
		Where("org_id = ? AND id = ?", orgID, id).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter, page pagination.Pagination) ([]domain.InvoiceListRow, error) {
	var rows []domain.InvoiceListRow
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select("invoices.*, invoice_customers.name AS customer_name, invoice_customers.email AS customer_email").
		Joins("LEFT JOIN invoice_customers ON invoice_customers.id = invoices.customer_id").
		Where("invoices.org_id = ?", orgID)
	if filter.Status != "" {
		stmt = stmt.Where("invoices.status = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		stmt = stmt.Where("invoices.customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		stmt = stmt.Where(
			"LOWER(invoices.invoice_number) LIKE ? OR LOWER(invoices.notes) LIKE ? OR LOWER(invoice_customers.name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	err := page.Apply(stmt).
		Order("invoices.issue_date desc, invoices.invoice_number desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) MaxSequence(ctx context.Context, db *gorm.DB, orgID snowflake.ID, numberPrefix string) (int, error) {
	var numbers []string
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("org_id = ? AND invoice_number LIKE ?", orgID, numberPrefix+"%").
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return 0, err
	}
	// Lexical MAX is wrong once explicit numbers mix digit widths, so the
	// sequence is extracted per row.
	max := 0
	for _, number := range numbers {
		suffix, ok := strings.CutPrefix(number, numberPrefix)
		if !ok {
			continue
		}
		if seq := parseSequence(suffix); seq > max {
			max = seq
		}
	}
	return max, nil
}

func (r *repo) NumberExists(ctx context.Context, db *gorm.DB, orgID snowflake.ID, number string, excludeID snowflake.ID) (bool, error) {
	var count int64
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("org_id = ? AND invoice_number = ?", orgID, number)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, fields map[string]any) error {
	tx := db.WithContext(ctx).
		Model(&domain.Invoice{}).
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

func (r *repo) DeleteItems(ctx context.Context, db *gorm.DB, orgID, invoiceID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("org_id = ? AND invoice_id = ?", orgID, invoiceID).
		Delete(&domain.InvoiceItem{}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (int64, error) {
	tx := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Delete(&domain.Invoice{})
	return tx.RowsAffected, tx.Error
}

func parseSequence(suffix string) int {
	seq := 0
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return 0
		}
		seq = seq*10 + int(c-'0')
	}
	return seq
}
