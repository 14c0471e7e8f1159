package controller

import (
	"bytes"
	"errors"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/credential/model"
	credentialService "tapwork_backend/internals/features/credential/service"
	userModel "tapwork_backend/internals/features/users/user/model"
	helper "tapwork_backend/internals/helpers"
)

type CredentialController struct {
	DB      *gorm.DB
	Service *credentialService.CredentialService
	Audit   *auditService.AuditService
}

func NewCredentialController(db *gorm.DB, svc *credentialService.CredentialService, audit *auditService.AuditService) *CredentialController {
	return &CredentialController{DB: db, Service: svc, Audit: audit}
}

/* ===================== MY BARCODE ===================== */
// GET /u/credential/me.png
// Renders the caller's employee number as a Code128 PNG. Requires an
// active credential; a revoked or missing credential yields 404.
func (ctrl *CredentialController) MyBarcodePNG(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var cred model.CredentialModel
	if err := ctrl.DB.
		Where("credential_user_id = ? AND credential_is_active = TRUE", userID).
		Take(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Credential not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).Take(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	buf, err := renderCode128PNG(user.UserEmployeeId)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render barcode")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf)
}

/* ===================== ADMIN REISSUE ===================== */
// POST /admin/users/:id/credential
func (ctrl *CredentialController) Reissue(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var cred *model.CredentialModel
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		cred, txErr = ctrl.Service.Issue(tx, userID)
		return txErr
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue credential")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "ISSUE", "credential", fiber.Map{
		"user":       userID,
		"credential": cred.CredentialId,
	}, helper.ClientIP(c))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Credential issued", cred)
}

/* ===================== ADMIN REVOKE ===================== */
// DELETE /admin/users/:id/credential
func (ctrl *CredentialController) Revoke(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	if err := ctrl.Service.Revoke(ctrl.DB, userID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke credential")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "REVOKE", "credential", fiber.Map{"user": userID}, helper.ClientIP(c))

	return helper.Success(c, "Credential revoked", nil)
}

func renderCode128PNG(data string) ([]byte, error) {
	bc, err := code128.Encode(data)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(bc, 300, 120)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
