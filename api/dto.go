/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine model from the external API contract: the calendar views get
  display-ready dates and labels, error responses get a stable shape.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

NOTE ON SCHEDULE BODIES:
  Schedule documents (V1, editing model, V2) cross the wire in their own
  interchange shapes, which the schedule package already defines JSON
  codecs for. They are not re-wrapped here.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/resolve.go: DayResolution, the source of the day DTOs
*/
package api

import (
	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// CALENDAR VIEWS
// =============================================================================

// DayDTO is one resolved day, with display fields the calendar renders
// directly.
type DayDTO struct {
	Date         string             `json:"date"`
	DisplayDate  string             `json:"displayDate"`
	Weekday      schedule.Weekday   `json:"weekday"`
	WeekdayLabel string             `json:"weekdayLabel"`
	Matched      bool               `json:"matched"`
	RuleName     string             `json:"ruleName"`
	Scope        schedule.Scope     `json:"scope,omitempty"`
	Slots        []schedule.Slot    `json:"slots"`
	ClosedAction schedule.OutcomeID `json:"closedAction"`
	ClosedReason string             `json:"closedReason,omitempty"`
	Shadowed     []string           `json:"shadowed"`
}

// WeekDTO is the 7-day view starting on a Monday.
type WeekDTO struct {
	Start string   `json:"start"`
	Days  []DayDTO `json:"days"`
}

// MonthCellDTO is one cell of the 42-cell month grid. Leading and
// trailing cells belong to the neighboring months.
type MonthCellDTO struct {
	DayDTO
	InCurrentMonth bool `json:"inCurrentMonth"`
}

// MonthDTO is the 6-week month grid view.
type MonthDTO struct {
	Month string         `json:"month"`
	Cells []MonthCellDTO `json:"cells"`
}

func newDayDTO(resolution schedule.DayResolution) DayDTO {
	display := resolution.Date
	if parsed, err := schedule.ParseDate(resolution.Date); err == nil {
		display = schedule.FormatDisplayDate(parsed)
	}
	return DayDTO{
		Date:         resolution.Date,
		DisplayDate:  display,
		Weekday:      resolution.Weekday,
		WeekdayLabel: resolution.Weekday.Label(),
		Matched:      resolution.Matched,
		RuleName:     resolution.RuleName,
		Scope:        resolution.Scope,
		Slots:        resolution.Slots,
		ClosedAction: resolution.ClosedAction,
		ClosedReason: resolution.ClosedReason,
		Shadowed:     resolution.Shadowed,
	}
}

// =============================================================================
// TEMPLATES
// =============================================================================

// TemplateDTO is one holiday template, with its computed date for the
// requested year ("" when the template has no date, which stock
// templates always have).
type TemplateDTO struct {
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	ExampleDate string           `json:"exampleDate,omitempty"`
	Holiday     schedule.Holiday `json:"holiday"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Where string `json:"where,omitempty"`
}

// IssueDTO is one validation failure.
type IssueDTO struct {
	Code  string `json:"code"`
	Where string `json:"where,omitempty"`
}

// ValidationErrorResponse carries every validation failure of a
// rejected schedule document.
type ValidationErrorResponse struct {
	Error  string     `json:"error"`
	Issues []IssueDTO `json:"issues"`
}
