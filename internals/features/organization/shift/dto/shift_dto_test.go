package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	m "tapwork_backend/internals/features/organization/shift/model"
)

var validate = validator.New()

func TestCreateShiftRequestValidation(t *testing.T) {
	ok := CreateShiftRequest{
		ShiftName:               "Morning",
		ShiftStartTime:          "08:00",
		ShiftEndTime:            "17:00",
		ShiftGracePeriodMinutes: 15,
		ShiftWorkingDays:        []int{1, 2, 3, 4, 5},
	}
	assert.NoError(t, validate.Struct(ok))

	bad := ok
	bad.ShiftStartTime = "8am"
	assert.Error(t, validate.Struct(bad), "start time must be HH:MM")

	bad = ok
	bad.ShiftWorkingDays = []int{1, 7}
	assert.Error(t, validate.Struct(bad), "weekday numbers run 0..6")

	bad = ok
	bad.ShiftGracePeriodMinutes = 500
	assert.Error(t, validate.Struct(bad))
}

func TestCreateShiftRequestToModel(t *testing.T) {
	mdl := CreateShiftRequest{
		ShiftName:               "Night",
		ShiftStartTime:          "22:00",
		ShiftEndTime:            "06:00",
		ShiftGracePeriodMinutes: 10,
		ShiftWorkingDays:        []int{0, 6},
	}.ToModel()

	assert.Equal(t, "Night", mdl.ShiftName)
	assert.JSONEq(t, "[0,6]", string(mdl.ShiftWorkingDays))

	empty := CreateShiftRequest{ShiftName: "x", ShiftStartTime: "08:00", ShiftEndTime: "17:00"}.ToModel()
	assert.JSONEq(t, "[]", string(empty.ShiftWorkingDays), "nil working days stored as an empty array, not null")
}

func TestUpdateShiftRequestApplyToModel(t *testing.T) {
	mdl := m.ShiftModel{
		ShiftName:               "Morning",
		ShiftStartTime:          "08:00",
		ShiftEndTime:            "17:00",
		ShiftGracePeriodMinutes: 15,
	}

	grace := 30
	UpdateShiftRequest{ShiftGracePeriodMinutes: &grace}.ApplyToModel(&mdl)

	assert.Equal(t, 30, mdl.ShiftGracePeriodMinutes)
	assert.Equal(t, "Morning", mdl.ShiftName)
	assert.Equal(t, "08:00", mdl.ShiftStartTime)
}
