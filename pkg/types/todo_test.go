package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTodo() Todo {
	return Todo{
		Description: "check robots.txt",
		Priority:    PriorityMedium,
		Severity:    SeverityNone,
		Status:      TodoStatusPending,
		Category:    "Recon",
		Target:      "blog.example.com",
	}
}

func TestTodoValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Todo)
		wantErr error
	}{
		{
			name:   "valid todo",
			mutate: func(t *Todo) {},
		},
		{
			name:    "empty description rejected",
			mutate:  func(t *Todo) { t.Description = "" },
			wantErr: ErrDescriptionEmpty,
		},
		{
			name:    "invalid priority rejected",
			mutate:  func(t *Todo) { t.Priority = "Urgent" },
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "invalid severity rejected",
			mutate:  func(t *Todo) { t.Severity = "Severe" },
			wantErr: ErrInvalidSeverity,
		},
		{
			name:    "finding-only severity rejected",
			mutate:  func(t *Todo) { t.Severity = SeverityNotApplicable },
			wantErr: ErrInvalidSeverity,
		},
		{
			name:    "invalid status rejected",
			mutate:  func(t *Todo) { t.Status = "Paused" },
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo := validTodo()
			tt.mutate(&todo)
			err := todo.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTodoSetStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	todo := validTodo()

	require.NoError(t, todo.SetStatus(TodoStatusDone, now))
	require.NotNil(t, todo.CompletedAt)
	assert.Equal(t, now, *todo.CompletedAt)
	assert.Equal(t, now, todo.UpdatedAt)

	// Already done: completion date is not re-stamped.
	require.NoError(t, todo.SetStatus(TodoStatusDone, later))
	require.NotNil(t, todo.CompletedAt)
	assert.Equal(t, now, *todo.CompletedAt)

	// Moving away from Done clears the completion date.
	require.NoError(t, todo.SetStatus(TodoStatusInProgress, later))
	assert.Nil(t, todo.CompletedAt)

	assert.ErrorIs(t, todo.SetStatus("Paused", later), ErrInvalidStatus)
	assert.Equal(t, TodoStatusInProgress, todo.Status)
}

func TestTodoBackfill(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var todo Todo
	todo.Description = "minimal"
	todo.Backfill(now)

	assert.Equal(t, PriorityTriage, todo.Priority)
	assert.Equal(t, SeverityNone, todo.Severity)
	assert.Equal(t, TodoStatusPending, todo.Status)
	assert.Equal(t, "General", todo.Category)
	assert.Equal(t, "N/A", todo.Target)
	assert.Equal(t, now, todo.CreatedAt)
	assert.Equal(t, now, todo.UpdatedAt)

	// Existing values survive.
	full := validTodo()
	full.CreatedAt = now.Add(-time.Hour)
	full.Backfill(now)
	assert.Equal(t, PriorityMedium, full.Priority)
	assert.Equal(t, "Recon", full.Category)
	assert.Equal(t, now.Add(-time.Hour), full.CreatedAt)
	assert.Equal(t, now.Add(-time.Hour), full.UpdatedAt)
}

func TestTodoPriorityRank(t *testing.T) {
	assert.Less(t, TodoPriorityRank(PriorityHigh), TodoPriorityRank(PriorityMedium))
	assert.Less(t, TodoPriorityRank(PriorityMedium), TodoPriorityRank(PriorityLow))
	assert.Less(t, TodoPriorityRank(PriorityLow), TodoPriorityRank(PriorityTriage))
	assert.Greater(t, TodoPriorityRank("bogus"), TodoPriorityRank(PriorityTriage))
}
