package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapwork_backend/internals/features/attendance/model"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, 8, 31, hour, min, sec, 0, time.Local)
}

func TestNextTransition(t *testing.T) {
	newest := model.AttendanceRecordModel{AttendanceRecordId: uuid.New(), AttendanceRecordCheckIn: at(9, 0, 0)}
	older := model.AttendanceRecordModel{AttendanceRecordId: uuid.New(), AttendanceRecordCheckIn: at(8, 0, 0)}

	tests := []struct {
		name       string
		open       []model.AttendanceRecordModel
		wantAction string
		wantClose  *uuid.UUID
	}{
		{"no open record checks in", nil, ActionCheckIn, nil},
		{"one open record checks out", []model.AttendanceRecordModel{newest}, ActionCheckOut, &newest.AttendanceRecordId},
		{"several open records close the newest", []model.AttendanceRecordModel{newest, older}, ActionCheckOut, &newest.AttendanceRecordId},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, toClose := NextTransition(tt.open)
			assert.Equal(t, tt.wantAction, action)
			if tt.wantClose == nil {
				assert.Nil(t, toClose)
			} else {
				require.NotNil(t, toClose)
				assert.Equal(t, *tt.wantClose, toClose.AttendanceRecordId)
			}
		})
	}
}

// Drives NextTransition through a whole day of scans against an
// in-memory record set, the same shape RecordScan maintains in the
// database: every odd scan opens a record, every even scan closes the
// record the previous one opened, so n scans leave ceil(n/2) records.
func TestNextTransitionScanSequence(t *testing.T) {
	var records []model.AttendanceRecordModel

	openRecords := func() []model.AttendanceRecordModel {
		var open []model.AttendanceRecordModel
		for i := len(records) - 1; i >= 0; i-- {
			if records[i].AttendanceRecordCheckOut == nil {
				open = append(open, records[i])
			}
		}
		return open
	}

	const scans = 5
	var lastOpened uuid.UUID
	for n := 1; n <= scans; n++ {
		now := at(8, n, 0)
		action, toClose := NextTransition(openRecords())

		if n%2 == 1 {
			require.Equal(t, ActionCheckIn, action, "scan %d", n)
			require.Nil(t, toClose, "scan %d", n)
			rec := model.AttendanceRecordModel{
				AttendanceRecordId:      uuid.New(),
				AttendanceRecordCheckIn: now,
			}
			records = append(records, rec)
			lastOpened = rec.AttendanceRecordId
		} else {
			require.Equal(t, ActionCheckOut, action, "scan %d", n)
			require.NotNil(t, toClose, "scan %d", n)
			assert.Equal(t, lastOpened, toClose.AttendanceRecordId, "scan %d closes the record the previous scan opened", n)
			for i := range records {
				if records[i].AttendanceRecordId == toClose.AttendanceRecordId {
					records[i].AttendanceRecordCheckOut = &now
				}
			}
		}

		assert.Len(t, records, (n+1)/2, "after %d scans", n)
	}

	// The final scan left exactly one record open.
	assert.Len(t, openRecords(), 1)
}

func TestStatusValues(t *testing.T) {
	assert.Equal(t, "on-time", model.StatusOnTime)
	assert.Equal(t, "late", model.StatusLate)
}

func TestStatusForCheckIn(t *testing.T) {
	tests := []struct {
		name    string
		checkIn time.Time
		start   string
		grace   int
		want    string
	}{
		{"well before start", at(7, 30, 0), "08:00", 15, model.StatusOnTime},
		{"exactly at start", at(8, 0, 0), "08:00", 15, model.StatusOnTime},
		{"inside grace", at(8, 10, 0), "08:00", 15, model.StatusOnTime},
		{"exactly at grace boundary", at(8, 15, 0), "08:00", 15, model.StatusOnTime},
		{"one second past grace", at(8, 15, 1), "08:00", 15, model.StatusLate},
		{"well past grace", at(9, 0, 0), "08:00", 15, model.StatusLate},
		{"zero grace on the dot", at(8, 0, 0), "08:00", 0, model.StatusOnTime},
		{"zero grace one second late", at(8, 0, 1), "08:00", 0, model.StatusLate},
		{"seconds in start clock", at(8, 30, 30), "08:30:30", 0, model.StatusOnTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StatusForCheckIn(tt.checkIn, tt.start, tt.grace)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusForCheckInMalformedClock(t *testing.T) {
	_, err := StatusForCheckIn(at(8, 0, 0), "8am", 15)
	assert.Error(t, err)

	_, err = StatusForCheckIn(at(8, 0, 0), "", 15)
	assert.Error(t, err)

	_, err = StatusForCheckIn(at(8, 0, 0), "25:00", 15)
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, s, err := parseClock("09:15")
	require.NoError(t, err)
	assert.Equal(t, []int{9, 15, 0}, []int{h, m, s})

	h, m, s, err = parseClock("23:59:58")
	require.NoError(t, err)
	assert.Equal(t, []int{23, 59, 58}, []int{h, m, s})
}
