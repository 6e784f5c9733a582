// Package tenancy guards cross-entity references inside a single organization.
package tenancy

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Owned reports whether the row of model T with the given id belongs to orgID.
// Models passed here must carry org_id and id columns.
func Owned[T any](ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(new(T)).
		Where("org_id = ? AND id = ?", orgID, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// EnsureOwned returns notOwnedErr when the referenced row does not exist in the
// caller's organization. A nil id pointer passes, references are optional.
func EnsureOwned[T any](ctx context.Context, db *gorm.DB, orgID snowflake.ID, id *snowflake.ID, notOwnedErr error) error {
	if id == nil || *id == 0 {
		return nil
	}
	ok, err := Owned[T](ctx, db, orgID, *id)
	if err != nil {
		return err
	}
	if !ok {
		return notOwnedErr
	}
	return nil
}
