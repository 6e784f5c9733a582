package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	TypeNote    = "note"
	TypeCall    = "call"
	TypeMeeting = "meeting"
)

// Activity is a timeline entry (note, call or meeting) linked to CRM records.
type Activity struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	OrgID           snowflake.ID  `gorm:"column:org_id;not null;index" json:"org_id"`
	Type            string        `gorm:"type:text;not null" json:"type"`
	Subject         string        `gorm:"type:text" json:"subject,omitempty"`
	Body            string        `gorm:"type:text" json:"body,omitempty"`
	OccurredAt      time.Time     `gorm:"column:occurred_at;not null" json:"occurred_at"`
	AccountID       *snowflake.ID `gorm:"column:account_id;index" json:"account_id,omitempty"`
	ContactID       *snowflake.ID `gorm:"column:contact_id;index" json:"contact_id,omitempty"`
	DealID          *snowflake.ID `gorm:"column:deal_id;index" json:"deal_id,omitempty"`
	CreatedByUserID snowflake.ID  `gorm:"column:created_by_user_id;not null" json:"created_by_user_id"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Activity) TableName() string { return "activities" }

// ValidType reports whether the activity type is one of the known values.
func ValidType(value string) bool {
	switch value {
	case TypeNote, TypeCall, TypeMeeting:
		return true
	default:
		return false
	}
}
