package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tapwork_backend/internals/features/attendance/model"
	shiftModel "tapwork_backend/internals/features/organization/shift/model"
	userModel "tapwork_backend/internals/features/users/user/model"
)

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

// ScanOutcome is what a single scan did: the record it created or
// closed, and which of the two it was.
type ScanOutcome struct {
	Record *model.AttendanceRecordModel
	Action string
}

// NextTransition decides what a scan does given the identity's open
// records, newest first. No open record means a check-in; otherwise
// the scan closes the newest open record and returns it.
func NextTransition(open []model.AttendanceRecordModel) (string, *model.AttendanceRecordModel) {
	if len(open) == 0 {
		return ActionCheckIn, nil
	}
	return ActionCheckOut, &open[0]
}

// AttendanceService is the check-in/check-out state engine. A scan
// carries no intent: an identity with an open record checks out,
// anyone else checks in.
type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

// RecordScan flips the identity's presence state atomically. The user
// row is locked FOR UPDATE first so two concurrent scans for the same
// person serialize; scans for different people never contend.
func (s *AttendanceService) RecordScan(userID uuid.UUID, method, location, notes string, now time.Time) (*ScanOutcome, error) {
	var outcome ScanOutcome

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user userModel.UserModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Take(&user).Error; err != nil {
			return err
		}

		var open []model.AttendanceRecordModel
		if err := tx.
			Where("attendance_record_user_id = ? AND attendance_record_check_out IS NULL", userID).
			Order("attendance_record_check_in DESC").
			Find(&open).Error; err != nil {
			return err
		}

		if action, toClose := NextTransition(open); action == ActionCheckOut {
			// More than one open record should be impossible under the
			// row lock; if it happens anyway, close the newest and keep
			// going rather than wedging the employee in the IN state.
			if len(open) > 1 {
				log.Printf("[WARN] attendance: user %s has %d open records, closing the newest", userID, len(open))
			}
			rec := *toClose
			checkout := now
			updates := map[string]interface{}{"attendance_record_check_out": checkout}
			if notes != "" {
				updates["attendance_record_notes"] = notes
				rec.AttendanceRecordNotes = notes
			}
			if err := tx.Model(&model.AttendanceRecordModel{}).
				Where("attendance_record_id = ?", rec.AttendanceRecordId).
				Updates(updates).Error; err != nil {
				return err
			}
			rec.AttendanceRecordCheckOut = &checkout
			outcome = ScanOutcome{Record: &rec, Action: ActionCheckOut}
			return nil
		}

		status := model.StatusOnTime
		var shiftID *uuid.UUID
		if user.UserShiftId != nil {
			var shift shiftModel.ShiftModel
			if err := tx.Where("shift_id = ?", *user.UserShiftId).Take(&shift).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				// Dangling shift reference; treat as unscheduled.
			} else {
				shiftID = user.UserShiftId
				st, err := StatusForCheckIn(now, shift.ShiftStartTime, shift.ShiftGracePeriodMinutes)
				if err != nil {
					log.Printf("[WARN] attendance: shift %s has malformed start time %q: %v", shift.ShiftId, shift.ShiftStartTime, err)
				} else {
					status = st
				}
			}
		}

		rec := model.AttendanceRecordModel{
			AttendanceRecordUserId:   userID,
			AttendanceRecordShiftId:  shiftID,
			AttendanceRecordCheckIn:  now,
			AttendanceRecordStatus:   status,
			AttendanceRecordMethod:   method,
			AttendanceRecordLocation: location,
			AttendanceRecordNotes:    notes,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		outcome = ScanOutcome{Record: &rec, Action: ActionCheckIn}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// StatusForCheckIn decides lateness: late only when the check-in falls
// strictly after shift start plus grace, arriving exactly on the
// boundary is on time. startClock is "HH:MM" or "HH:MM:SS" wall time
// interpreted in the check-in's own location.
func StatusForCheckIn(checkIn time.Time, startClock string, graceMinutes int) (string, error) {
	h, m, sec, err := parseClock(startClock)
	if err != nil {
		return "", err
	}
	start := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), h, m, sec, 0, checkIn.Location())
	deadline := start.Add(time.Duration(graceMinutes) * time.Minute)
	if checkIn.After(deadline) {
		return model.StatusLate, nil
	}
	return model.StatusOnTime, nil
}

func parseClock(s string) (h, m, sec int, err error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("clock %q: want HH:MM or HH:MM:SS", s)
		}
	}
	return t.Hour(), t.Minute(), t.Second(), nil
}

// History returns a page of the user's records inside [from, to),
// newest first. Zero bounds mean unbounded.
func (s *AttendanceService) History(userID uuid.UUID, from, to time.Time, limit, offset int) ([]model.AttendanceRecordModel, int64, error) {
	q := s.DB.Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("attendance_record_check_in >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("attendance_record_check_in < ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recs []model.AttendanceRecordModel
	if err := q.
		Order("attendance_record_check_in DESC").
		Limit(limit).Offset(offset).
		Find(&recs).Error; err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}
