package service

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tapwork_backend/internals/features/audit/model"
)

type AuditService struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// Record appends an audit entry. Best-effort: a failure here is logged and
// swallowed so it can never roll back or fail the operation that
// triggered it. Always call it with the root DB handle, never inside the
// caller's transaction.
func (s *AuditService) Record(userID *uuid.UUID, action, resource string, changes interface{}, ip string) {
	var payload datatypes.JSON
	if changes != nil {
		raw, err := sonic.Marshal(changes)
		if err != nil {
			log.Printf("[WARN] audit: cannot marshal changes for %s/%s: %v", action, resource, err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	entry := model.AuditEntryModel{
		AuditEntryUserId:   userID,
		AuditEntryAction:   action,
		AuditEntryResource: resource,
		AuditEntryChanges:  payload,
	}
	if ip != "" {
		entry.AuditEntryIpAddress = &ip
	}

	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("[WARN] audit: insert failed for %s/%s: %v", action, resource, err)
	}
}
