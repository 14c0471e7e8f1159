package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestNotificationEnabledDefaults(t *testing.T) {
	u := &UserModel{}
	assert.True(t, u.NotificationEnabled("attendance"), "no preferences at all defaults to enabled")

	u.UserNotificationPreferences = datatypes.JSON(`{"registration": false}`)
	assert.False(t, u.NotificationEnabled("registration"))
	assert.True(t, u.NotificationEnabled("attendance"), "missing key defaults to enabled")

	u.UserNotificationPreferences = datatypes.JSON(`{broken`)
	assert.True(t, u.NotificationEnabled("attendance"), "unreadable payload defaults to enabled")
}

func TestDefaultNotificationPreferences(t *testing.T) {
	u := &UserModel{UserNotificationPreferences: DefaultNotificationPreferences()}
	assert.True(t, u.NotificationEnabled("registration"))
	assert.True(t, u.NotificationEnabled("reset"))
	assert.True(t, u.NotificationEnabled("attendance"))
}
