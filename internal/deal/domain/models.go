package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DealStage is a pipeline step deals move through.
type DealStage struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"column:org_id;not null;index" json:"org_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	SortOrder int          `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	IsClosed  bool         `gorm:"column:is_closed;not null;default:false" json:"is_closed"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (DealStage) TableName() string { return "deal_stages" }

// Deal represents a sales opportunity against an account.
type Deal struct {
	ID                snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID             snowflake.ID  `gorm:"column:org_id;not null;index" json:"org_id"`
	AccountID         snowflake.ID  `gorm:"column:account_id;not null;index" json:"account_id"`
	PrimaryContactID  *snowflake.ID `gorm:"column:primary_contact_id" json:"primary_contact_id,omitempty"`
	StageID           snowflake.ID  `gorm:"column:stage_id;not null;index" json:"stage_id"`
	Name              string        `gorm:"type:text;not null" json:"name"`
	AmountCents       int64         `gorm:"column:amount_cents;not null;default:0" json:"amount_cents"`
	Currency          string        `gorm:"type:text;not null" json:"currency"`
	ExpectedCloseDate *time.Time    `gorm:"column:expected_close_date" json:"expected_close_date,omitempty"`
	CreatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Deal) TableName() string { return "deals" }
