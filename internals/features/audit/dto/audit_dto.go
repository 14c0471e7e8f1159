package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "tapwork_backend/internals/features/audit/model"
)

/* =====================
 * FILTER (query)
 * ===================== */

type FilterAuditRequest struct {
	UserID   *uuid.UUID `query:"user_id" validate:"omitempty,uuid4"`
	Action   *string    `query:"action" validate:"omitempty,max=50"`
	Resource *string    `query:"resource" validate:"omitempty,max=50"`
	Start    *time.Time `query:"start" validate:"omitempty"`
	End      *time.Time `query:"end" validate:"omitempty"`
}

/* =====================
 * RESPONSE
 * ===================== */

type AuditEntryResponse struct {
	AuditEntryId        uuid.UUID      `json:"audit_entry_id"`
	AuditEntryUserId    *uuid.UUID     `json:"audit_entry_user_id,omitempty"`
	AuditEntryAction    string         `json:"audit_entry_action"`
	AuditEntryResource  string         `json:"audit_entry_resource"`
	AuditEntryChanges   datatypes.JSON `json:"audit_entry_changes,omitempty"`
	AuditEntryIpAddress *string        `json:"audit_entry_ip_address,omitempty"`
	AuditEntryCreatedAt time.Time      `json:"audit_entry_created_at"`
}

func FromModel(e *m.AuditEntryModel) AuditEntryResponse {
	return AuditEntryResponse{
		AuditEntryId:        e.AuditEntryId,
		AuditEntryUserId:    e.AuditEntryUserId,
		AuditEntryAction:    e.AuditEntryAction,
		AuditEntryResource:  e.AuditEntryResource,
		AuditEntryChanges:   e.AuditEntryChanges,
		AuditEntryIpAddress: e.AuditEntryIpAddress,
		AuditEntryCreatedAt: e.AuditEntryCreatedAt,
	}
}

func FromModels(entries []m.AuditEntryModel) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, FromModel(&entries[i]))
	}
	return out
}
