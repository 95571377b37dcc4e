/*
summary.go - Open-time aggregation over a resolved date range

PURPOSE:
  Computes how much open time a schedule grants over a span of days: per
  day, in total, and per outcome. The admin calendar shows this next to
  the week and month views so an operator can sanity-check a schedule
  ("44 open hours this week") without reading every rule.

PRECISION:
  Durations are exact decimal hours (a 09:00-10:30 slot is 1.5 hours,
  never 1.4999...). Minutes are the unit of record; hours are derived.
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// DaySummary is the open-time total for one resolved day.
type DaySummary struct {
	Date      string          `json:"date"`
	Weekday   Weekday         `json:"weekday"`
	RuleName  string          `json:"ruleName"`
	Matched   bool            `json:"matched"`
	OpenHours decimal.Decimal `json:"openHours"`
}

// RangeSummary aggregates open time over consecutive days.
type RangeSummary struct {
	From           string                        `json:"from"`
	Days           int                           `json:"days"`
	TotalOpenHours decimal.Decimal               `json:"totalOpenHours"`
	ByOutcome      map[OutcomeID]decimal.Decimal `json:"byOutcome"`
	PerDay         []DaySummary                  `json:"perDay"`
}

// Summarize resolves `days` consecutive dates starting at from and
// aggregates their open time. Slots that fail to parse contribute
// nothing; validation owns rejecting them.
func Summarize(s Schedule, from time.Time, days int) RangeSummary {
	start := DateOnly(from)
	summary := RangeSummary{
		From:           FormatISODate(start),
		Days:           days,
		TotalOpenHours: decimal.Zero,
		ByOutcome:      map[OutcomeID]decimal.Decimal{},
		PerDay:         make([]DaySummary, 0, days),
	}

	for i := 0; i < days; i++ {
		resolution := Resolve(s, AddDays(start, i))

		dayMinutes := 0
		for _, slot := range resolution.Slots {
			minutes, ok := slotMinutes(slot)
			if !ok {
				continue
			}
			dayMinutes += minutes
			hours := hoursFromMinutes(minutes)
			existing, present := summary.ByOutcome[slot.Action]
			if !present {
				existing = decimal.Zero
			}
			summary.ByOutcome[slot.Action] = existing.Add(hours)
		}

		openHours := hoursFromMinutes(dayMinutes)
		summary.TotalOpenHours = summary.TotalOpenHours.Add(openHours)
		summary.PerDay = append(summary.PerDay, DaySummary{
			Date:      resolution.Date,
			Weekday:   resolution.Weekday,
			RuleName:  resolution.RuleName,
			Matched:   resolution.Matched,
			OpenHours: openHours,
		})
	}

	return summary
}

func slotMinutes(slot Slot) (int, bool) {
	start, okStart := ParseTimeOfDay(slot.Start)
	end, okEnd := ParseTimeOfDay(slot.End)
	if !okStart || !okEnd || end <= start {
		return 0, false
	}
	return end - start, true
}

func hoursFromMinutes(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}
