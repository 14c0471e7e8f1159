package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEntryModel is append-only: rows are inserted by the recorder and
// never updated or deleted by the application.
type AuditEntryModel struct {
	AuditEntryId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:audit_entry_id" json:"audit_entry_id"`

	AuditEntryUserId *uuid.UUID `gorm:"type:uuid;column:audit_entry_user_id;index" json:"audit_entry_user_id,omitempty"`

	AuditEntryAction   string `gorm:"type:varchar(50);not null;column:audit_entry_action;index" json:"audit_entry_action"`
	AuditEntryResource string `gorm:"type:varchar(50);not null;column:audit_entry_resource;index" json:"audit_entry_resource"`

	AuditEntryChanges   datatypes.JSON `gorm:"column:audit_entry_changes" json:"audit_entry_changes,omitempty"`
	AuditEntryIpAddress *string        `gorm:"type:varchar(45);column:audit_entry_ip_address" json:"audit_entry_ip_address,omitempty"`

	AuditEntryCreatedAt time.Time `gorm:"column:audit_entry_created_at;autoCreateTime;index" json:"audit_entry_created_at"`
}

func (AuditEntryModel) TableName() string { return "audit_entries" }
