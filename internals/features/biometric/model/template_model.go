package model

import (
	"time"

	"github.com/google/uuid"
)

// BiometricTemplateModel stores one descriptor per (user, modality).
// The embedding is an opaque blob of little-endian float32 values;
// re-enrollment overwrites in place.
type BiometricTemplateModel struct {
	BiometricTemplateId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:biometric_template_id" json:"biometric_template_id"`

	BiometricTemplateUserId   uuid.UUID `gorm:"type:uuid;not null;column:biometric_template_user_id;uniqueIndex:ux_biometric_templates_user_modality" json:"biometric_template_user_id"`
	BiometricTemplateModality string    `gorm:"type:varchar(30);not null;default:'face';column:biometric_template_modality;uniqueIndex:ux_biometric_templates_user_modality" json:"biometric_template_modality"`

	BiometricTemplateModelName string `gorm:"type:varchar(50);not null;column:biometric_template_model_name" json:"biometric_template_model_name"`
	BiometricTemplateEmbedding []byte `gorm:"type:bytea;not null;column:biometric_template_embedding" json:"-"`

	BiometricTemplateEnrolledAt     time.Time  `gorm:"column:biometric_template_enrolled_at;autoCreateTime" json:"biometric_template_enrolled_at"`
	BiometricTemplateLastVerifiedAt *time.Time `gorm:"column:biometric_template_last_verified_at" json:"biometric_template_last_verified_at,omitempty"`
}

func (BiometricTemplateModel) TableName() string { return "biometric_templates" }

const ModalityFace = "face"
