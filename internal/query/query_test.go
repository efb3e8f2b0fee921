package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quietriot-sec/fieldcase/pkg/types"
)

func TestFilterConjunction(t *testing.T) {
	nums := []int{1, 2, 3, 4, 5, 6}

	even := func(n int) bool { return n%2 == 0 }
	big := func(n int) bool { return n > 3 }

	assert.Equal(t, []int{4, 6}, Filter(nums, even, big))
	assert.Equal(t, nums, Filter(nums))
	assert.Empty(t, Filter([]int{}, even))
}

func TestSortByStable(t *testing.T) {
	type rec struct {
		key int
		tag string
	}
	records := []rec{{2, "a"}, {1, "b"}, {2, "c"}, {1, "d"}}
	SortBy(records, func(a, b rec) bool { return a.key < b.key })

	assert.Equal(t, []rec{{1, "b"}, {1, "d"}, {2, "a"}, {2, "c"}}, records)
}

func TestFindingFilterConjunction(t *testing.T) {
	f := types.Finding{
		TargetContext:  "blog.example.com",
		SourceToolName: "nuclei",
		Category:       "Web",
		Type:           "Vulnerability",
		Severity:       types.SeverityHigh,
		Status:         types.FindingStatusOpen,
		Tags:           []string{"tls", "web"},
	}

	assert.True(t, FindingFilter{}.Match(f))
	assert.True(t, FindingFilter{Target: "blog", Severity: types.SeverityHigh}.Match(f))
	assert.True(t, FindingFilter{SourceTool: "NUCLEI", Category: "web"}.Match(f))
	assert.True(t, FindingFilter{Tags: []string{"tls", "web"}}.Match(f))

	// One failing predicate fails the whole filter.
	assert.False(t, FindingFilter{Target: "blog", Severity: types.SeverityLow}.Match(f))
	assert.False(t, FindingFilter{Tags: []string{"tls", "rce"}}.Match(f))
	assert.False(t, FindingFilter{Status: types.FindingStatusClosed}.Match(f))
}

func TestPluginFilterHasCVE(t *testing.T) {
	withCVE := types.Plugin{Slug: "a", CVEIDs: []string{"CVE-2023-0001"}}
	without := types.Plugin{Slug: "b", CVEIDs: []string{}}

	assert.True(t, PluginFilter{HasCVE: "y"}.Match(withCVE))
	assert.False(t, PluginFilter{HasCVE: "y"}.Match(without))
	assert.True(t, PluginFilter{HasCVE: "n"}.Match(without))
	assert.False(t, PluginFilter{HasCVE: "n"}.Match(withCVE))
	assert.True(t, PluginFilter{}.Match(withCVE))
	assert.True(t, PluginFilter{}.Match(without))
}

func TestAjaxFilterNameSubstring(t *testing.T) {
	a := types.AjaxAction{Name: "wpforms_submit_entry", TestStatus: types.AjaxStatusPending}

	assert.True(t, AjaxFilter{Name: "submit"}.Match(a))
	assert.True(t, AjaxFilter{Name: "WPFORMS"}.Match(a))
	assert.False(t, AjaxFilter{Name: "export"}.Match(a))
}

func TestMatchPortProto(t *testing.T) {
	services := []types.Service{
		{Port: 443, Protocol: "tcp"},
		{Port: 53, Protocol: "udp"},
	}

	tests := []struct {
		token string
		want  bool
	}{
		{"443/tcp", true},
		{"443/udp", false},
		{"443", true},
		{"53", true},
		{"/udp", true},
		{"/tcp", true},
		{"8080", false},
		{"/icmp", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPortProto(services, tt.token))
		})
	}
}

func TestSortFindings(t *testing.T) {
	findings := []types.Finding{
		{Title: "b low", Severity: types.SeverityLow},
		{Title: "a critical", Severity: types.SeverityCritical},
		{Title: "c critical", Severity: types.SeverityCritical},
	}

	SortFindings(findings, FindingSortSeverity)
	assert.Equal(t, "a critical", findings[0].Title)
	assert.Equal(t, "c critical", findings[1].Title)
	assert.Equal(t, "b low", findings[2].Title)

	SortFindings(findings, FindingSortTitle)
	assert.Equal(t, "a critical", findings[0].Title)
	assert.Equal(t, "b low", findings[1].Title)
	assert.Equal(t, "c critical", findings[2].Title)
}
