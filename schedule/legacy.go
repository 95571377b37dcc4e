/*
legacy.go - V1 schedule generation (per-weekday form)

PURPOSE:
  The first schedule generation stored one entry per weekday with an
  enabled flag and a slot list, and knew nothing about holidays or
  overrides. Old exports still arrive in this shape, and some consumers
  still want it back. FromV1 lifts a V1 schedule into the editing model;
  ToV1 lowers the weekly layer of an editing-model schedule.

LOSSINESS:
  ToV1 is lossy by design: holidays, date ranges and single-date
  overrides have no V1 representation and are dropped. FromV1 is not
  lossy; a V1 schedule carries no information the editing model cannot
  hold.

SEE ALSO:
  - convert.go: the editing model and V2 converters
*/
package schedule

import (
	"slices"
	"strings"
)

// DayHours is one weekday entry of the legacy V1 schedule.
type DayHours struct {
	Day     Weekday `json:"day"`
	Enabled bool    `json:"enabled"`
	Slots   []Slot  `json:"slots"`
}

// ScheduleV1 is the legacy per-weekday schedule generation.
type ScheduleV1 struct {
	Timezone      string     `json:"timezone"`
	EffectiveFrom string     `json:"effectiveFrom,omitempty"`
	Days          []DayHours `json:"days"`
}

// FromV1 lifts a V1 schedule into the editing model. Enabled weekdays
// with identical slot lists collapse into a single weekly record, so a
// standard Mon-Fri office week becomes one entry instead of five. Closed
// time defaults to Deny, which V1 left implicit.
func FromV1(v1 ScheduleV1) EditSchedule {
	edit := EditSchedule{
		Timezone:          v1.Timezone,
		EffectiveFrom:     v1.EffectiveFrom,
		Weekly:            []WeeklyRecord{},
		RecurringHolidays: []Holiday{},
		DateRanges:        []Holiday{},
		SingleDates:       []Holiday{},
	}

	grouped := map[string]int{} // slot signature -> index into edit.Weekly
	for _, day := range v1.Days {
		if !day.Enabled || !day.Day.Valid() {
			continue
		}
		signature := slotSignature(day.Slots)
		if index, ok := grouped[signature]; ok {
			edit.Weekly[index].Days = append(edit.Weekly[index].Days, day.Day)
			edit.Weekly[index].Name = weekdayListLabel(edit.Weekly[index].Days)
			continue
		}
		grouped[signature] = len(edit.Weekly)
		edit.Weekly = append(edit.Weekly, WeeklyRecord{
			Name:         day.Day.Label(),
			Days:         []Weekday{day.Day},
			Slots:        copySlots(day.Slots),
			ClosedAction: OutcomeDeny,
		})
	}

	return edit
}

// ToV1 lowers the weekly layer of an editing-model schedule to the V1
// form. All seven weekdays are always emitted; a weekday no record claims
// comes back disabled with no slots. Holiday layers are dropped.
func ToV1(edit EditSchedule) ScheduleV1 {
	v1 := ScheduleV1{
		Timezone:      edit.Timezone,
		EffectiveFrom: edit.EffectiveFrom,
		Days:          make([]DayHours, 0, len(Weekdays)),
	}

	for _, weekday := range Weekdays {
		entry := DayHours{Day: weekday, Slots: []Slot{}}
		for _, record := range edit.Weekly {
			if slices.Contains(record.Days, weekday) {
				entry.Enabled = true
				entry.Slots = copySlots(record.Slots)
				break
			}
		}
		v1.Days = append(v1.Days, entry)
	}

	return v1
}

// slotSignature canonically encodes a slot list so identical weekday
// schedules can be grouped. Order matters: V1 forms kept slots sorted.
func slotSignature(slots []Slot) string {
	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		parts = append(parts, slot.Start+"-"+slot.End+"@"+string(slot.Action))
	}
	return strings.Join(parts, "|")
}
