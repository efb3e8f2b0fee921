package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// Finding source types.
const (
	SourceTypeToolOutput    = "ToolOutput"
	SourceTypeLLMAnalysis   = "LLMAnalysis"
	SourceTypeManualEntry   = "ManualEntry"
	SourceTypeLLMSuggestion = "LLMSuggestion"
)

// Finding confidence levels.
const (
	ConfidenceCertain     = "Certain"
	ConfidenceHigh        = "High"
	ConfidenceMedium      = "Medium"
	ConfidenceLow         = "Low"
	ConfidenceSpeculative = "Speculative"
)

// Finding statuses.
const (
	FindingStatusOpen              = "Open"
	FindingStatusInvestigating     = "Investigating"
	FindingStatusNeedsVerification = "NeedsVerification"
	FindingStatusRemediated        = "Remediated"
	FindingStatusFalsePositive     = "FalsePositive"
	FindingStatusClosed            = "Closed"
)

var validSourceTypes = map[string]bool{
	SourceTypeToolOutput:    true,
	SourceTypeLLMAnalysis:   true,
	SourceTypeManualEntry:   true,
	SourceTypeLLMSuggestion: true,
}

var validConfidences = map[string]bool{
	ConfidenceCertain:     true,
	ConfidenceHigh:        true,
	ConfidenceMedium:      true,
	ConfidenceLow:         true,
	ConfidenceSpeculative: true,
}

var validFindingStatuses = map[string]bool{
	FindingStatusOpen:              true,
	FindingStatusInvestigating:     true,
	FindingStatusNeedsVerification: true,
	FindingStatusRemediated:        true,
	FindingStatusFalsePositive:     true,
	FindingStatusClosed:            true,
}

// DataPoints is the free-form string-keyed map attached to a finding.
// It must deserialize from a JSON object; scalars and arrays are rejected.
type DataPoints map[string]any

// UnmarshalJSON accepts a JSON object or null. Any other JSON value yields
// ErrDataPointsNotObject, which rejects the enclosing record.
func (d *DataPoints) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*d = DataPoints{}
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrDataPointsNotObject
	}
	var m map[string]any
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*d = m
	return nil
}

// Finding combines an internally assigned ID with the externally supplied
// insight ID of the observation it records. The event and generated
// timestamps describe the underlying observation; CreatedAt and UpdatedAt
// track bookkeeping on this side.
type Finding struct {
	ID        int    `json:"finding_id"`
	InsightID string `json:"insight_id"`

	TargetContext  string    `json:"target_context"`
	SourceType     string    `json:"source_type"`
	SourceToolName string    `json:"source_tool_name"`
	SourceRef      string    `json:"source_reference"`
	EventTime      time.Time `json:"timestamp_event_utc"`
	GeneratedTime  time.Time `json:"timestamp_generated_utc"`

	Category       string     `json:"category"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Severity       string     `json:"severity_assessment"`
	Confidence     string     `json:"confidence"`
	Status         string     `json:"status"`
	Recommendation string     `json:"actionable_recommendation"`
	KeyDataPoints  DataPoints `json:"key_data_points"`
	Tags           []string   `json:"tags"`
	Notes          string     `json:"notes"`
	RawSnippet     string     `json:"raw_input_snippet,omitempty"`

	CreatedAt time.Time `json:"date_added"`
	UpdatedAt time.Time `json:"last_updated"`

	AssetIDs        []int `json:"asset_ids"`
	LinkedPluginIDs []int `json:"linked_plugin_ids"`
	LinkedAjaxIDs   []int `json:"linked_ajax_ids"`
	LinkedTodoIDs   []int `json:"linked_todo_ids"`
}

// Validate checks the required title and enum values.
func (f *Finding) Validate() error {
	if f.Title == "" {
		return ErrTitleEmpty
	}
	if !validSourceTypes[f.SourceType] {
		return ErrInvalidSourceType
	}
	if !validFindingSeverities[f.Severity] {
		return ErrInvalidSeverity
	}
	if !validConfidences[f.Confidence] {
		return ErrInvalidConfidence
	}
	if !validFindingStatuses[f.Status] {
		return ErrInvalidStatus
	}
	return nil
}

// Backfill inserts defaults for fields absent from older on-disk records.
// Missing observation timestamps fall back to the bookkeeping creation time.
func (f *Finding) Backfill(now time.Time) {
	if f.TargetContext == "" {
		f.TargetContext = "N/A"
	}
	if f.SourceType == "" {
		f.SourceType = SourceTypeToolOutput
	}
	if f.SourceToolName == "" {
		f.SourceToolName = "UnknownTool"
	}
	if f.SourceRef == "" {
		f.SourceRef = "N/A"
	}
	if f.Category == "" {
		f.Category = "General"
	}
	if f.Type == "" {
		f.Type = "Observation"
	}
	if f.Description == "" {
		f.Description = "N/A"
	}
	if f.Severity == "" {
		f.Severity = SeverityInformational
	}
	if f.Confidence == "" {
		f.Confidence = ConfidenceMedium
	}
	if f.Status == "" {
		f.Status = FindingStatusOpen
	}
	if f.Recommendation == "" {
		f.Recommendation = "N/A"
	}
	if f.Notes == "" {
		f.Notes = "N/A"
	}
	if f.KeyDataPoints == nil {
		f.KeyDataPoints = DataPoints{}
	}
	if f.Tags == nil {
		f.Tags = []string{}
	}
	if f.AssetIDs == nil {
		f.AssetIDs = []int{}
	}
	if f.LinkedPluginIDs == nil {
		f.LinkedPluginIDs = []int{}
	}
	if f.LinkedAjaxIDs == nil {
		f.LinkedAjaxIDs = []int{}
	}
	if f.LinkedTodoIDs == nil {
		f.LinkedTodoIDs = []int{}
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = f.CreatedAt
	}
	if f.EventTime.IsZero() {
		f.EventTime = f.CreatedAt
	}
	if f.GeneratedTime.IsZero() {
		f.GeneratedTime = f.CreatedAt
	}
}

// HasAllTags reports whether the finding carries every one of the given
// tags. An empty tag list matches any finding.
func (f *Finding) HasAllTags(tags []string) bool {
	for _, want := range tags {
		found := false
		for _, have := range f.Tags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
