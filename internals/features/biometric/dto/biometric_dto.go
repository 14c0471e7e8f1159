package dto

import (
	"time"

	"tapwork_backend/internals/features/biometric/model"
)

type RegisterFaceRequest struct {
	ImageData string `json:"image_data" validate:"required"`
}

type FaceStatusResponse struct {
	Enrolled       bool       `json:"enrolled"`
	ModelName      string     `json:"model_name,omitempty"`
	EnrolledAt     *time.Time `json:"enrolled_at,omitempty"`
	LastVerifiedAt *time.Time `json:"last_verified_at,omitempty"`
}

func StatusFromModel(tpl *model.BiometricTemplateModel) FaceStatusResponse {
	if tpl == nil {
		return FaceStatusResponse{Enrolled: false}
	}
	enrolledAt := tpl.BiometricTemplateEnrolledAt
	return FaceStatusResponse{
		Enrolled:       true,
		ModelName:      tpl.BiometricTemplateModelName,
		EnrolledAt:     &enrolledAt,
		LastVerifiedAt: tpl.BiometricTemplateLastVerifiedAt,
	}
}
