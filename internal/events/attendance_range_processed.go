package events

import "time"

const AttendanceRangeProcessedTopic = "attendance.range.v1"

// AttendanceRangeProcessedEvent announces that the records for a date range
// were recomputed and replaced. Consumers treat it as a cache invalidation
// signal; the payload carries the range, not the records.
type AttendanceRangeProcessedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	ProcessedCount int       `json:"processed_count"`
	EmployeeCount  int       `json:"employee_count"`
	OccurredAt     time.Time `json:"occurred_at"`
}
