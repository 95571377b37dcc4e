package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// SLOT VALIDATION
// =============================================================================

func TestValidateSlot(t *testing.T) {
	cases := []struct {
		name string
		slot schedule.Slot
		want schedule.FailureCode // "" means valid
	}{
		{"valid", schedule.Slot{Start: "09:00", End: "17:00"}, ""},
		{"ends at midnight", schedule.Slot{Start: "22:00", End: "24:00"}, ""},
		{"bad start", schedule.Slot{Start: "9am", End: "17:00"}, schedule.FailureTimeFormat},
		{"bad end", schedule.Slot{Start: "09:00", End: "25:00"}, schedule.FailureTimeFormat},
		{"inverted", schedule.Slot{Start: "17:00", End: "09:00"}, schedule.FailureTimeOrder},
		{"zero length", schedule.Slot{Start: "09:00", End: "09:00"}, schedule.FailureTimeOrder},
		{"starts at 24:00", schedule.Slot{Start: "24:00", End: "24:00"}, schedule.FailureTimeOrder},
	}

	for _, tc := range cases {
		failure := schedule.ValidateSlot(tc.slot)
		if tc.want == "" {
			assert.Nil(t, failure, tc.name)
		} else {
			require.NotNil(t, failure, tc.name)
			assert.Equal(t, tc.want, failure.Code, tc.name)
		}
	}
}

func TestValidateSlotSet_RejectsOverlap(t *testing.T) {
	// GIVEN: Two slots where the second starts inside the first
	failure := schedule.ValidateSlotSet([]schedule.Slot{
		{Start: "09:00", End: "17:00"},
		{Start: "16:00", End: "20:00"},
	})

	require.NotNil(t, failure)
	assert.Equal(t, schedule.FailureSlotOverlap, failure.Code)
}

func TestValidateSlotSet_TouchingSlotsAllowed(t *testing.T) {
	assert.Nil(t, schedule.ValidateSlotSet([]schedule.Slot{
		{Start: "09:00", End: "12:00"},
		{Start: "12:00", End: "17:00"},
	}))
}

func TestValidateSlotSet_OrderIndependent(t *testing.T) {
	// Overlap detection must not depend on input order.
	failure := schedule.ValidateSlotSet([]schedule.Slot{
		{Start: "16:00", End: "20:00"},
		{Start: "09:00", End: "17:00"},
	})

	require.NotNil(t, failure)
	assert.Equal(t, schedule.FailureSlotOverlap, failure.Code)
}

// =============================================================================
// WEEKLY RECORDS
// =============================================================================

func TestValidateWeeklyRecord(t *testing.T) {
	valid := schedule.WeeklyRecord{
		Days:  []schedule.Weekday{schedule.Monday},
		Slots: []schedule.Slot{{Start: "09:00", End: "17:00"}},
	}
	assert.Nil(t, schedule.ValidateWeeklyRecord(valid))

	noDays := valid
	noDays.Days = nil
	failure := schedule.ValidateWeeklyRecord(noDays)
	require.NotNil(t, failure)
	assert.Equal(t, schedule.FailureDaysRequired, failure.Code)

	noSlots := valid
	noSlots.Slots = nil
	failure = schedule.ValidateWeeklyRecord(noSlots)
	require.NotNil(t, failure)
	assert.Equal(t, schedule.FailureSlotRequired, failure.Code)
}

func TestValidateWeeklyCoverage_RejectsDoubleClaimedWeekday(t *testing.T) {
	records := []schedule.WeeklyRecord{
		{Days: []schedule.Weekday{schedule.Monday, schedule.Tuesday}},
		{Days: []schedule.Weekday{schedule.Tuesday}},
	}

	failure := schedule.ValidateWeeklyCoverage(records)
	require.NotNil(t, failure)
	assert.Equal(t, schedule.FailureWeekdayOverlap, failure.Code)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestValidateHoliday_DateRangeRequirements(t *testing.T) {
	base := schedule.Holiday{
		Rule:       schedule.HolidayDateRange,
		RangeStart: "2026-07-01",
		RangeEnd:   "2026-07-14",
		Weekdays:   []schedule.Weekday{schedule.Monday},
		Closed:     true,
	}
	assert.Nil(t, schedule.ValidateHoliday(base))

	missing := base
	missing.RangeEnd = ""
	requireCode(t, schedule.ValidateHoliday(missing), schedule.FailureDateRangeRequired)

	noWeekdays := base
	noWeekdays.Weekdays = nil
	requireCode(t, schedule.ValidateHoliday(noWeekdays), schedule.FailureDateRangeWeekdaysMissing)

	malformed := base
	malformed.RangeStart = "01/07/2026"
	requireCode(t, schedule.ValidateHoliday(malformed), schedule.FailureDateRangeFormat)

	inverted := base
	inverted.RangeStart, inverted.RangeEnd = base.RangeEnd, base.RangeStart
	requireCode(t, schedule.ValidateHoliday(inverted), schedule.FailureDateRangeOrder)
}

func TestValidateHoliday_SingleDateRequirements(t *testing.T) {
	base := schedule.Holiday{
		Rule:       schedule.HolidaySingleDate,
		SingleDate: "2026-04-15",
		Closed:     true,
	}
	assert.Nil(t, schedule.ValidateHoliday(base))

	missing := base
	missing.SingleDate = ""
	requireCode(t, schedule.ValidateHoliday(missing), schedule.FailureSingleDateRequired)

	malformed := base
	malformed.SingleDate = "2026-02-30"
	requireCode(t, schedule.ValidateHoliday(malformed), schedule.FailureSingleDateFormat)
}

func TestValidateHoliday_OpenEntryNeedsValidSlots(t *testing.T) {
	open := schedule.Holiday{
		Rule:   schedule.HolidayEaster,
		Closed: false,
	}
	requireCode(t, schedule.ValidateHoliday(open), schedule.FailureSlotRequired)

	open.Slots = []schedule.Slot{
		{Start: "10:00", End: "14:00"},
		{Start: "13:00", End: "16:00"},
	}
	requireCode(t, schedule.ValidateHoliday(open), schedule.FailureSlotOverlap)
}

func TestValidateDateRangeOverlap(t *testing.T) {
	weekdayRange := func(start, end string, days ...schedule.Weekday) schedule.Holiday {
		return schedule.Holiday{
			Rule:       schedule.HolidayDateRange,
			RangeStart: start,
			RangeEnd:   end,
			Weekdays:   days,
		}
	}

	// Overlapping dates, overlapping weekdays: rejected.
	requireCode(t, schedule.ValidateDateRangeOverlap([]schedule.Holiday{
		weekdayRange("2026-07-01", "2026-07-14", schedule.Monday, schedule.Tuesday),
		weekdayRange("2026-07-10", "2026-07-20", schedule.Tuesday),
	}), schedule.FailureDateRangeOverlap)

	// Overlapping dates, disjoint weekdays: allowed.
	assert.Nil(t, schedule.ValidateDateRangeOverlap([]schedule.Holiday{
		weekdayRange("2026-07-01", "2026-07-14", schedule.Monday),
		weekdayRange("2026-07-10", "2026-07-20", schedule.Saturday),
	}))

	// Disjoint dates, same weekdays: allowed.
	assert.Nil(t, schedule.ValidateDateRangeOverlap([]schedule.Holiday{
		weekdayRange("2026-07-01", "2026-07-07", schedule.Monday),
		weekdayRange("2026-07-08", "2026-07-14", schedule.Monday),
	}))
}

// =============================================================================
// WHOLE-SCHEDULE AGGREGATION
// =============================================================================

func TestValidateEditSchedule_CollectsIssuesWithLocations(t *testing.T) {
	edit := schedule.EditSchedule{
		Timezone: "Europe/London",
		Weekly: []schedule.WeeklyRecord{
			{
				Days:  []schedule.Weekday{schedule.Monday},
				Slots: []schedule.Slot{{Start: "09:00", End: "17:00"}},
			},
			{
				Days: []schedule.Weekday{schedule.Monday}, // double-claims Monday
				Slots: []schedule.Slot{
					{Start: "17:00", End: "09:00"}, // inverted
				},
			},
		},
		SingleDates: []schedule.Holiday{
			{Rule: schedule.HolidaySingleDate, Closed: true}, // missing date
		},
	}

	issues := schedule.ValidateEditSchedule(edit)

	require.Len(t, issues, 3)
	codes := map[string]schedule.FailureCode{}
	for _, iss := range issues {
		codes[iss.Where] = iss.Code
	}
	assert.Equal(t, schedule.FailureTimeOrder, codes["days[1]"])
	assert.Equal(t, schedule.FailureWeekdayOverlap, codes["days"])
	assert.Equal(t, schedule.FailureSingleDateRequired, codes["singleDates[0]"])
}

func TestValidateEditSchedule_ValidScheduleHasNoIssues(t *testing.T) {
	assert.Empty(t, schedule.ValidateEditSchedule(sampleEditSchedule()))
}

func requireCode(t *testing.T, failure *schedule.Issue, want schedule.FailureCode) {
	t.Helper()
	require.NotNil(t, failure)
	assert.Equal(t, want, failure.Code)
}
