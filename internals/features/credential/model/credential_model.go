package model

import (
	"time"

	"github.com/google/uuid"
)

// CredentialModel is the barcode/QR identity token bound to one user.
// Invariant: at most one active credential per user; issuing a new one
// deactivates the previous in the same transaction.
type CredentialModel struct {
	CredentialId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:credential_id" json:"credential_id"`

	CredentialUserId uuid.UUID `gorm:"type:uuid;not null;column:credential_user_id;index" json:"credential_user_id"`
	CredentialToken  string    `gorm:"type:varchar(255);uniqueIndex;not null;column:credential_token" json:"-"`

	CredentialGeneratedAt time.Time  `gorm:"column:credential_generated_at;autoCreateTime" json:"credential_generated_at"`
	CredentialExpiresAt   *time.Time `gorm:"column:credential_expires_at;index:ix_credentials_active_expires" json:"credential_expires_at,omitempty"`
	CredentialIsActive    bool       `gorm:"not null;default:true;column:credential_is_active;index:ix_credentials_active_expires" json:"credential_is_active"`
}

func (CredentialModel) TableName() string { return "credentials" }
