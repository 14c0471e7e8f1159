package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tapwork_backend/internals/configs"
	"tapwork_backend/internals/features/credential/model"
	userModel "tapwork_backend/internals/features/users/user/model"
)

// ErrInvalidCredential is the single failure for unknown, inactive and
// expired tokens alike. Callers get no oracle on why a token failed.
var ErrInvalidCredential = errors.New("invalid credential")

type CredentialService struct {
	DB  *gorm.DB
	Cfg *configs.Settings
}

func New(db *gorm.DB, cfg *configs.Settings) *CredentialService {
	return &CredentialService{DB: db, Cfg: cfg}
}

// GenerateToken returns a cryptographically random opaque token.
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token generation failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// DefaultExpiry computes the expiry timestamp for a credential issued at
// the given instant.
func (s *CredentialService) DefaultExpiry(now time.Time) time.Time {
	return now.AddDate(0, 0, s.Cfg.CredentialExpiryDays)
}

// Issue creates a fresh active credential for the user, deactivating any
// prior one inside the given transaction so the one-active-per-user
// invariant holds even under concurrent issues.
func (s *CredentialService) Issue(tx *gorm.DB, userID uuid.UUID) (*model.CredentialModel, error) {
	// Serialize on the user row, not on the credential rows: locking a
	// credential SELECT cannot lock rows that do not exist yet, and a
	// READ COMMITTED re-read after a lock wait never surfaces a row the
	// winner inserted, so two issuers could both end up active. The
	// user row always exists and gives one lock point per identity.
	var owner userModel.UserModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("user_id").
		Where("user_id = ?", userID).
		Take(&owner).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&model.CredentialModel{}).
		Where("credential_user_id = ? AND credential_is_active = TRUE", userID).
		Update("credential_is_active", false).Error; err != nil {
		return nil, err
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	expiry := s.DefaultExpiry(time.Now().UTC())
	cred := model.CredentialModel{
		CredentialUserId:    userID,
		CredentialToken:     token,
		CredentialExpiresAt: &expiry,
		CredentialIsActive:  true,
	}
	if err := tx.Create(&cred).Error; err != nil {
		return nil, err
	}
	return &cred, nil
}

// Resolve maps an active, non-expired token to the owning user id.
// Unknown, inactive and expired tokens all return ErrInvalidCredential.
func (s *CredentialService) Resolve(token string, now time.Time) (uuid.UUID, error) {
	var cred model.CredentialModel
	err := s.DB.
		Where("credential_token = ? AND credential_is_active = TRUE", token).
		Where("credential_expires_at IS NULL OR credential_expires_at > ?", now).
		Take(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrInvalidCredential
		}
		return uuid.Nil, err
	}
	return cred.CredentialUserId, nil
}

// Revoke deactivates all active credentials for a user.
func (s *CredentialService) Revoke(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Model(&model.CredentialModel{}).
		Where("credential_user_id = ? AND credential_is_active = TRUE", userID).
		Update("credential_is_active", false).Error
}
