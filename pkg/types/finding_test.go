package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataPointsUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DataPoints
		wantErr error
	}{
		{
			name:  "object accepted",
			input: `{"port": 8080, "path": "/admin"}`,
			want:  DataPoints{"port": float64(8080), "path": "/admin"},
		},
		{
			name:  "empty object accepted",
			input: `{}`,
			want:  DataPoints{},
		},
		{
			name:  "null becomes empty map",
			input: `null`,
			want:  DataPoints{},
		},
		{
			name:    "array rejected",
			input:   `[1, 2]`,
			wantErr: ErrDataPointsNotObject,
		},
		{
			name:    "string rejected",
			input:   `"loose"`,
			wantErr: ErrDataPointsNotObject,
		},
		{
			name:    "number rejected",
			input:   `42`,
			wantErr: ErrDataPointsNotObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DataPoints
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestDataPointsRejectEnclosingRecord(t *testing.T) {
	var f Finding
	err := json.Unmarshal([]byte(`{"title": "x", "key_data_points": "scalar"}`), &f)
	assert.ErrorIs(t, err, ErrDataPointsNotObject)
}

func TestFindingValidate(t *testing.T) {
	valid := Finding{
		Title:      "Exposed admin panel",
		SourceType: SourceTypeToolOutput,
		Severity:   SeverityHigh,
		Confidence: ConfidenceMedium,
		Status:     FindingStatusOpen,
	}

	tests := []struct {
		name    string
		mutate  func(*Finding)
		wantErr error
	}{
		{name: "valid finding", mutate: func(f *Finding) {}},
		{name: "empty title", mutate: func(f *Finding) { f.Title = "" }, wantErr: ErrTitleEmpty},
		{name: "bad source type", mutate: func(f *Finding) { f.SourceType = "Psychic" }, wantErr: ErrInvalidSourceType},
		{name: "todo-only severity", mutate: func(f *Finding) { f.Severity = SeverityNone }, wantErr: ErrInvalidSeverity},
		{name: "bad confidence", mutate: func(f *Finding) { f.Confidence = "Sure" }, wantErr: ErrInvalidConfidence},
		{name: "bad status", mutate: func(f *Finding) { f.Status = "Resolved" }, wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindingBackfill(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	f := Finding{Title: "bare"}
	f.Backfill(now)

	assert.Equal(t, "N/A", f.TargetContext)
	assert.Equal(t, SourceTypeToolOutput, f.SourceType)
	assert.Equal(t, "UnknownTool", f.SourceToolName)
	assert.Equal(t, "General", f.Category)
	assert.Equal(t, "Observation", f.Type)
	assert.Equal(t, SeverityInformational, f.Severity)
	assert.Equal(t, ConfidenceMedium, f.Confidence)
	assert.Equal(t, FindingStatusOpen, f.Status)
	assert.NotNil(t, f.KeyDataPoints)
	assert.NotNil(t, f.Tags)
	assert.NotNil(t, f.AssetIDs)
	assert.Equal(t, now, f.CreatedAt)

	// Observation timestamps fall back to the bookkeeping creation time.
	assert.Equal(t, now, f.EventTime)
	assert.Equal(t, now, f.GeneratedTime)

	// Supplied observation timestamps survive.
	event := now.Add(-24 * time.Hour)
	g := Finding{Title: "timed", EventTime: event, GeneratedTime: event}
	g.Backfill(now)
	assert.Equal(t, event, g.EventTime)
}

func TestFindingHasAllTags(t *testing.T) {
	f := Finding{Tags: []string{"creds", "quickwin", "wordpress"}}

	assert.True(t, f.HasAllTags(nil))
	assert.True(t, f.HasAllTags([]string{"creds"}))
	assert.True(t, f.HasAllTags([]string{"creds", "wordpress"}))
	assert.False(t, f.HasAllTags([]string{"creds", "tls"}))
}

func TestFindingSeverityRank(t *testing.T) {
	order := []string{
		SeverityCritical, SeverityHigh, SeverityMedium,
		SeverityLow, SeverityInformational, SeverityNotApplicable,
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t, FindingSeverityRank(order[i-1]), FindingSeverityRank(order[i]))
	}
	assert.Greater(t, FindingSeverityRank("bogus"), FindingSeverityRank(SeverityNotApplicable))
}
