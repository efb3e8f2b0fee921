package types

import "time"

// Todo priorities, highest first. New tasks default to Triage until someone
// decides where they land.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
	PriorityTriage = "Triage"
)

// Todo statuses.
const (
	TodoStatusPending    = "Pending"
	TodoStatusInProgress = "In Progress"
	TodoStatusDone       = "Done"
)

var validTodoPriorities = map[string]bool{
	PriorityHigh:   true,
	PriorityMedium: true,
	PriorityLow:    true,
	PriorityTriage: true,
}

var validTodoStatuses = map[string]bool{
	TodoStatusPending:    true,
	TodoStatusInProgress: true,
	TodoStatusDone:       true,
}

// todoPriorityRank orders the default todo listing (High before Medium
// before Low before Triage).
var todoPriorityRank = map[string]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
	PriorityTriage: 3,
}

// TodoPriorityRank returns the sort rank for a priority. Unrecognized
// values sort last.
func TodoPriorityRank(priority string) int {
	if r, ok := todoPriorityRank[priority]; ok {
		return r
	}
	return len(todoPriorityRank)
}

// Todo is a work item on the engagement scratch list.
type Todo struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
	Category    string `json:"category"`
	Target      string `json:"target"`
	Notes       string `json:"notes,omitempty"`

	CreatedAt   time.Time  `json:"creation_date"`
	UpdatedAt   time.Time  `json:"last_modified_date"`
	CompletedAt *time.Time `json:"completion_date"`
}

// Validate checks the required field and enum values. It never substitutes
// a default for an invalid value.
func (t *Todo) Validate() error {
	if t.Description == "" {
		return ErrDescriptionEmpty
	}
	if !validTodoPriorities[t.Priority] {
		return ErrInvalidPriority
	}
	if !validTodoSeverities[t.Severity] {
		return ErrInvalidSeverity
	}
	if !validTodoStatuses[t.Status] {
		return ErrInvalidStatus
	}
	return nil
}

// SetStatus transitions the todo to the given status. Moving to Done stamps
// the completion date; moving away from Done clears it.
func (t *Todo) SetStatus(status string, now time.Time) error {
	if !validTodoStatuses[status] {
		return ErrInvalidStatus
	}
	t.Status = status
	if status == TodoStatusDone {
		if t.CompletedAt == nil {
			done := now
			t.CompletedAt = &done
		}
	} else {
		t.CompletedAt = nil
	}
	t.UpdatedAt = now
	return nil
}

// Backfill inserts defaults for fields absent from older on-disk records.
func (t *Todo) Backfill(now time.Time) {
	if t.Priority == "" {
		t.Priority = PriorityTriage
	}
	if t.Severity == "" {
		t.Severity = SeverityNone
	}
	if t.Status == "" {
		t.Status = TodoStatusPending
	}
	if t.Category == "" {
		t.Category = "General"
	}
	if t.Target == "" {
		t.Target = "N/A"
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
}
