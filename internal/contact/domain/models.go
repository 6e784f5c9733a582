package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Contact represents a person, optionally tied to an account.
type Contact struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID  `gorm:"column:org_id;not null;index" json:"org_id"`
	AccountID *snowflake.ID `gorm:"column:account_id;index" json:"account_id,omitempty"`
	FirstName string        `gorm:"column:first_name;type:text;not null" json:"first_name"`
	LastName  string        `gorm:"column:last_name;type:text;not null" json:"last_name"`
	Email     string        `gorm:"type:text" json:"email,omitempty"`
	Phone     string        `gorm:"type:text" json:"phone,omitempty"`
	Title     string        `gorm:"type:text" json:"title,omitempty"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Contact) TableName() string { return "contacts" }
