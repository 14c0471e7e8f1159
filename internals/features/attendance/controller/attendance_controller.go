package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tapwork_backend/internals/features/attendance/dto"
	attendanceService "tapwork_backend/internals/features/attendance/service"
	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/biometric/pipeline"
	biometricService "tapwork_backend/internals/features/biometric/service"
	credentialService "tapwork_backend/internals/features/credential/service"
	notification "tapwork_backend/internals/features/notification/service"
	userModel "tapwork_backend/internals/features/users/user/model"
	helper "tapwork_backend/internals/helpers"
)

type AttendanceController struct {
	DB          *gorm.DB
	Service     *attendanceService.AttendanceService
	Credentials *credentialService.CredentialService
	Biometrics  *biometricService.BiometricService
	Audit       *auditService.AuditService
	Notifier    notification.Notifier
}

func NewAttendanceController(db *gorm.DB, svc *attendanceService.AttendanceService, creds *credentialService.CredentialService, bio *biometricService.BiometricService, audit *auditService.AuditService, notifier notification.Notifier) *AttendanceController {
	return &AttendanceController{DB: db, Service: svc, Credentials: creds, Biometrics: bio, Audit: audit, Notifier: notifier}
}

var validate = validator.New()

/* ===================== BARCODE SCAN ===================== */
// POST /scan
// Public endpoint for wall-mounted scanners. The credential token is the
// only proof of identity, so unknown, revoked and expired tokens all get
// the same 404.
func (ctrl *AttendanceController) Scan(c *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	now := time.Now()
	userID, err := ctrl.Credentials.Resolve(req.CodeData, now)
	if err != nil {
		if errors.Is(err, credentialService.ErrInvalidCredential) {
			// Audited without the reason class: the response gives no
			// oracle and neither does the log trail.
			ctrl.Audit.Record(nil, "SCAN_REJECTED", "credential", nil, helper.ClientIP(c))
			return fiber.NewError(fiber.StatusNotFound, "Credential not recognized")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	user, err := ctrl.loadActiveUser(userID)
	if err != nil {
		return err
	}

	outcome, err := ctrl.Service.RecordScan(user.UserId, "barcode", req.Location, req.Notes, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return ctrl.respondScan(c, user, outcome)
}

/* ===================== FACE SCAN ===================== */
// POST /face-scan
// Identity is claimed by employee number and proven by face match.
func (ctrl *AttendanceController) FaceScan(c *fiber.Ctx) error {
	if !ctrl.Biometrics.Available() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Face verification is not available")
	}

	var req dto.FaceScanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_employee_id = ?", req.EmployeeId).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Employee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}

	match, err := ctrl.Biometrics.VerifyFace(user.UserId, req.ImageData)
	if err != nil {
		if errors.Is(err, biometricService.ErrNotEnrolled) {
			return fiber.NewError(fiber.StatusNotFound, "No face template enrolled for this employee")
		}
		var gf *pipeline.GateFailure
		if errors.As(err, &gf) {
			return fiber.NewError(fiber.StatusBadRequest, gf.Message)
		}
		log.Printf("[ERROR] attendance: face verification for %s: %v", user.UserEmployeeId, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Face verification failed")
	}
	if !match.Match {
		return fiber.NewError(fiber.StatusUnauthorized,
			fmt.Sprintf("Face does not match (confidence %.1f%%)", match.Confidence))
	}

	outcome, err := ctrl.Service.RecordScan(user.UserId, "face", req.Location, req.Notes, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return ctrl.respondScan(c, &user, outcome)
}

/* ===================== MY HISTORY ===================== */
// GET /u/attendance/me?from=2026-08-01&to=2026-09-01&page=1&per_page=25
func (ctrl *AttendanceController) MyHistory(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid 'from' date, want YYYY-MM-DD")
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid 'to' date, want YYYY-MM-DD")
	}

	params := helper.ParsePaginationWith(c, helper.DefaultOpts)
	recs, total, err := ctrl.Service.History(userID, from, to, params.PerPage, params.Offset())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Attendance history", fiber.Map{
		"items":    dto.FromModels(recs),
		"total":    total,
		"page":     params.Page,
		"per_page": params.PerPage,
	})
}

/* ===================== SHARED ===================== */

func (ctrl *AttendanceController) loadActiveUser(userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Credential not recognized")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if !user.UserIsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}
	return &user, nil
}

func (ctrl *AttendanceController) respondScan(c *fiber.Ctx, user *userModel.UserModel, outcome *attendanceService.ScanOutcome) error {
	resp := dto.FromModel(outcome.Record)
	resp.ActionPerformed = outcome.Action

	ctrl.Audit.Record(&user.UserId, "ATTENDANCE_"+outcome.Action, "attendance_record",
		fiber.Map{"record_id": outcome.Record.AttendanceRecordId, "status": outcome.Record.AttendanceRecordStatus},
		helper.ClientIP(c))

	if user.NotificationEnabled("attendance") {
		notification.Dispatch(ctrl.Notifier, user.UserEmail, notification.EventAttendance, map[string]string{
			"action": outcome.Action,
			"status": outcome.Record.AttendanceRecordStatus,
			"time":   outcome.Record.AttendanceRecordCheckIn.Format(time.RFC3339),
		})
	}

	msg := "Checked in"
	if outcome.Action == attendanceService.ActionCheckOut {
		msg = "Checked out"
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, msg, resp)
}

func parseDateQuery(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
