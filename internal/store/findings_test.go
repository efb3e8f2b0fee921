package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

func TestAddFindingDefaults(t *testing.T) {
	s := newTestStore(t)

	f, err := s.AddFinding(types.Finding{
		Title: "Directory listing on /backups",
		Tags:  []string{"QuickWin", "exposure"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.ID)
	assert.NotEmpty(t, f.InsightID)
	assert.Equal(t, types.SourceTypeManualEntry, f.SourceType)
	assert.Equal(t, types.SeverityInformational, f.Severity)
	assert.Equal(t, types.FindingStatusOpen, f.Status)
	assert.Equal(t, []string{"exposure", "quickwin"}, f.Tags)
	assert.Equal(t, f.CreatedAt, f.EventTime)

	loaded := s.Findings()
	require.Len(t, loaded, 1)
	assert.Equal(t, f.InsightID, loaded[0].InsightID)
}

func TestAddFindingPreservesInsightID(t *testing.T) {
	s := newTestStore(t)

	f, err := s.AddFinding(types.Finding{
		Title:     "Known insight",
		InsightID: "ext-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "ext-0001", f.InsightID)
}

func TestUpdateFindingPreservesCreatedAt(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := base
	s := newTestStore(t).WithClock(func() time.Time { return clock })

	f, err := s.AddFinding(types.Finding{Title: "original"})
	require.NoError(t, err)

	clock = base.Add(time.Hour)
	f.Status = types.FindingStatusInvestigating
	updated, err := s.UpdateFinding(f)
	require.NoError(t, err)

	assert.Equal(t, base, updated.CreatedAt)
	assert.Equal(t, clock, updated.UpdatedAt)
	assert.Equal(t, types.FindingStatusInvestigating, updated.Status)
}

func TestListFindingsFilterAndSort(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddFinding(types.Finding{Title: "info note", Severity: types.SeverityInformational})
	require.NoError(t, err)
	_, err = s.AddFinding(types.Finding{Title: "rce", Severity: types.SeverityCritical, Tags: []string{"rce"}})
	require.NoError(t, err)
	_, err = s.AddFinding(types.Finding{Title: "weak tls", Severity: types.SeverityLow})
	require.NoError(t, err)

	bySeverity := s.ListFindings(query.FindingFilter{}, query.FindingSortSeverity)
	require.Len(t, bySeverity, 3)
	assert.Equal(t, "rce", bySeverity[0].Title)
	assert.Equal(t, "weak tls", bySeverity[1].Title)
	assert.Equal(t, "info note", bySeverity[2].Title)

	critical := s.ListFindings(query.FindingFilter{Severity: types.SeverityCritical}, "")
	require.Len(t, critical, 1)

	tagged := s.ListFindings(query.FindingFilter{Tags: []string{"rce"}}, "")
	require.Len(t, tagged, 1)
	assert.Equal(t, "rce", tagged[0].Title)
}
