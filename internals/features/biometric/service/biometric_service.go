package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tapwork_backend/internals/configs"
	"tapwork_backend/internals/features/biometric/model"
	"tapwork_backend/internals/features/biometric/pipeline"
)

// ErrNotEnrolled is returned when an operation needs a face template
// the user never registered.
var ErrNotEnrolled = errors.New("no face template enrolled for this user")

// BiometricService owns template storage and verification. The pipeline
// does all image work; this layer only persists and compares.
type BiometricService struct {
	DB       *gorm.DB
	Cfg      *configs.Settings
	Pipeline *pipeline.Pipeline
}

func NewBiometricService(db *gorm.DB, cfg *configs.Settings, pl *pipeline.Pipeline) *BiometricService {
	return &BiometricService{DB: db, Cfg: cfg, Pipeline: pl}
}

// Available reports whether the face pipeline can run. When the cascade
// failed to load at startup the detector is nil and all biometric
// endpoints answer 503.
func (s *BiometricService) Available() bool {
	return s.Pipeline != nil && s.Pipeline.Detector != nil
}

// Enroll runs the full pipeline on the submitted image and upserts the
// resulting template. Re-enrollment replaces the previous descriptor
// and resets the verification timestamp.
func (s *BiometricService) Enroll(tx *gorm.DB, userID uuid.UUID, imageData string) (*model.BiometricTemplateModel, error) {
	vec, err := s.Pipeline.Run(imageData)
	if err != nil {
		return nil, err
	}

	tpl := model.BiometricTemplateModel{
		BiometricTemplateUserId:     userID,
		BiometricTemplateModality:   model.ModalityFace,
		BiometricTemplateModelName:  s.Cfg.FaceModel,
		BiometricTemplateEmbedding:  pipeline.EmbeddingToBytes(vec),
		BiometricTemplateEnrolledAt: time.Now(),
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "biometric_template_user_id"},
			{Name: "biometric_template_modality"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"biometric_template_model_name",
			"biometric_template_embedding",
			"biometric_template_enrolled_at",
		}),
	}).Create(&tpl).Error; err != nil {
		return nil, err
	}
	// Clear the stale verification mark after a replacement enroll.
	if err := tx.Model(&model.BiometricTemplateModel{}).
		Where("biometric_template_user_id = ? AND biometric_template_modality = ?", userID, model.ModalityFace).
		Update("biometric_template_last_verified_at", nil).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// VerifyFace compares a probe image against the user's stored template.
// A successful match bumps last_verified_at; a non-match is a normal
// result, not an error.
func (s *BiometricService) VerifyFace(userID uuid.UUID, imageData string) (pipeline.MatchResult, error) {
	var res pipeline.MatchResult

	var tpl model.BiometricTemplateModel
	err := s.DB.
		Where("biometric_template_user_id = ? AND biometric_template_modality = ?", userID, model.ModalityFace).
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res, ErrNotEnrolled
	}
	if err != nil {
		return res, err
	}

	stored, err := pipeline.BytesToEmbedding(tpl.BiometricTemplateEmbedding)
	if err != nil {
		return res, &pipeline.FaceRecognitionError{Op: "load template", Err: err}
	}

	probe, err := s.Pipeline.Run(imageData)
	if err != nil {
		return res, err
	}

	res = pipeline.Verify(probe, stored, s.Cfg.VerificationThreshold)
	if res.Match {
		now := time.Now()
		if err := s.DB.Model(&model.BiometricTemplateModel{}).
			Where("biometric_template_id = ?", tpl.BiometricTemplateId).
			Update("biometric_template_last_verified_at", now).Error; err != nil {
			log.Printf("[WARN] biometric: failed to bump last_verified_at for %s: %v", userID, err)
		}
	}
	return res, nil
}

// Status returns the user's template metadata, or ErrNotEnrolled.
func (s *BiometricService) Status(userID uuid.UUID) (*model.BiometricTemplateModel, error) {
	var tpl model.BiometricTemplateModel
	err := s.DB.
		Where("biometric_template_user_id = ? AND biometric_template_modality = ?", userID, model.ModalityFace).
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Delete removes the user's face template.
func (s *BiometricService) Delete(tx *gorm.DB, userID uuid.UUID) error {
	res := tx.
		Where("biometric_template_user_id = ? AND biometric_template_modality = ?", userID, model.ModalityFace).
		Delete(&model.BiometricTemplateModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotEnrolled
	}
	return nil
}
