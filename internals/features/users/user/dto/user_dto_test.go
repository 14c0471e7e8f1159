package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	m "tapwork_backend/internals/features/users/user/model"
)

func TestUpdateUserRequestApplyToModel(t *testing.T) {
	shiftID := uuid.New()
	mdl := m.UserModel{
		UserEmail:     "old@example.com",
		UserFirstName: "Old",
		UserLastName:  "Name",
		UserIsActive:  true,
	}

	email := "new@example.com"
	inactive := false
	req := UpdateUserRequest{
		UserEmail:    &email,
		UserShiftId:  &shiftID,
		UserIsActive: &inactive,
	}
	req.ApplyToModel(&mdl)

	assert.Equal(t, "new@example.com", mdl.UserEmail)
	assert.Equal(t, &shiftID, mdl.UserShiftId)
	assert.False(t, mdl.UserIsActive)
	// Absent fields stay untouched.
	assert.Equal(t, "Old", mdl.UserFirstName)
	assert.Equal(t, "Name", mdl.UserLastName)
}

func TestUpdateUserRequestEmptyPatch(t *testing.T) {
	mdl := m.UserModel{UserEmail: "keep@example.com", UserIsActive: true}
	UpdateUserRequest{}.ApplyToModel(&mdl)
	assert.Equal(t, "keep@example.com", mdl.UserEmail)
	assert.True(t, mdl.UserIsActive)
}
