package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Account represents a company the organization does business with.
type Account struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"column:org_id;not null;index" json:"org_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Industry  string       `gorm:"type:text" json:"industry,omitempty"`
	Website   string       `gorm:"type:text" json:"website,omitempty"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Notes     string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "accounts" }
