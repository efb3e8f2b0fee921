package query

import (
	"strconv"
	"strings"

	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// An empty field on any filter matches all values of that field.

// TodoFilter selects todos. Status, priority, and severity are exact;
// category and target are exact but case-insensitive.
type TodoFilter struct {
	Status   string
	Priority string
	Severity string
	Category string
	Target   string
}

// Match reports whether the todo satisfies every set field.
func (f TodoFilter) Match(t types.Todo) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Severity != "" && t.Severity != f.Severity {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Target != "" && !strings.EqualFold(t.Target, f.Target) {
		return false
	}
	return true
}

// SortTodos orders todos by priority rank then ID, or by creation time
// newest first when newestFirst is set.
func SortTodos(todos []types.Todo, newestFirst bool) {
	if newestFirst {
		SortBy(todos, func(a, b types.Todo) bool {
			return a.CreatedAt.After(b.CreatedAt)
		})
		return
	}
	SortBy(todos, func(a, b types.Todo) bool {
		ra, rb := types.TodoPriorityRank(a.Priority), types.TodoPriorityRank(b.Priority)
		if ra != rb {
			return ra < rb
		}
		return a.ID < b.ID
	})
}

// PluginFilter selects plugin records. HasCVE is "y" (must have CVEs),
// "n" (must have none), or empty (either).
type PluginFilter struct {
	Slug       string
	TargetHost string
	Status     string
	HasCVE     string
}

// Match reports whether the plugin satisfies every set field.
func (f PluginFilter) Match(p types.Plugin) bool {
	if f.Slug != "" && !strings.EqualFold(p.Slug, f.Slug) {
		return false
	}
	if f.TargetHost != "" && !strings.EqualFold(p.TargetHost, f.TargetHost) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	switch f.HasCVE {
	case "y":
		if len(p.CVEIDs) == 0 {
			return false
		}
	case "n":
		if len(p.CVEIDs) > 0 {
			return false
		}
	}
	return true
}

// SortPlugins orders plugin records by slug then observed version.
func SortPlugins(plugins []types.Plugin) {
	SortBy(plugins, func(a, b types.Plugin) bool {
		if a.Slug != b.Slug {
			return a.Slug < b.Slug
		}
		return a.VersionObserved < b.VersionObserved
	})
}

// AjaxFilter selects AJAX action records. Name is a case-insensitive
// substring match; the rest are exact.
type AjaxFilter struct {
	Name       string
	TargetHost string
	Status     string
	Privilege  string
}

// Match reports whether the action satisfies every set field.
func (f AjaxFilter) Match(a types.AjaxAction) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.TargetHost != "" && !strings.EqualFold(a.TargetHost, f.TargetHost) {
		return false
	}
	if f.Status != "" && a.TestStatus != f.Status {
		return false
	}
	if f.Privilege != "" && !strings.EqualFold(a.PrivilegeLevel, f.Privilege) {
		return false
	}
	return true
}

// SortAjax orders AJAX actions by name then target host.
func SortAjax(actions []types.AjaxAction) {
	SortBy(actions, func(a, b types.AjaxAction) bool {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.TargetHost < b.TargetHost
	})
}

// AssetFilter selects assets. Identifier, IP, hostname, OS, and service
// name are substring matches; tag is an exact case-insensitive match.
// PortProto accepts "80/tcp", a bare port "53", or a bare protocol "/udp".
type AssetFilter struct {
	Identifier  string
	IP          string
	Hostname    string
	Tag         string
	OS          string
	ServiceName string
	PortProto   string
}

// Match reports whether the asset satisfies every set field.
func (f AssetFilter) Match(a types.Asset) bool {
	if f.Identifier != "" && !strings.Contains(strings.ToLower(a.PrimaryIdentifier), strings.ToLower(f.Identifier)) {
		return false
	}
	if f.IP != "" && !anyContains(a.IPAddresses, f.IP) {
		return false
	}
	if f.Hostname != "" && !anyContains(a.Hostnames, f.Hostname) {
		return false
	}
	if f.Tag != "" && !anyEquals(a.EnvironmentTags, f.Tag) {
		return false
	}
	if f.OS != "" && !strings.Contains(strings.ToLower(a.OSDetails), strings.ToLower(f.OS)) {
		return false
	}
	if f.ServiceName != "" {
		found := false
		for _, svc := range a.Services {
			if strings.Contains(strings.ToLower(svc.Name), strings.ToLower(f.ServiceName)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PortProto != "" && !matchPortProto(a.Services, f.PortProto) {
		return false
	}
	return true
}

// matchPortProto tests the port/proto token against the asset's services.
func matchPortProto(services []types.Service, token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	for _, svc := range services {
		exact := strconv.Itoa(svc.Port) + "/" + strings.ToLower(svc.Protocol)
		if token == exact {
			return true
		}
		if port, err := strconv.Atoi(token); err == nil && svc.Port == port {
			return true
		}
		if strings.HasPrefix(token, "/") && strings.ToLower(svc.Protocol) == token[1:] {
			return true
		}
	}
	return false
}

// SortAssets orders assets by primary identifier, case-insensitively.
func SortAssets(assets []types.Asset) {
	SortBy(assets, func(a, b types.Asset) bool {
		return strings.ToLower(a.PrimaryIdentifier) < strings.ToLower(b.PrimaryIdentifier)
	})
}

// Finding sort modes.
const (
	FindingSortDate     = "date"
	FindingSortSeverity = "severity"
	FindingSortTitle    = "title"
)

// FindingFilter selects findings. Target is a substring match; source
// tool, category, and type are exact case-insensitive; severity and status
// are exact; Tags requires the finding to carry every listed tag.
type FindingFilter struct {
	Target     string
	SourceTool string
	Category   string
	Type       string
	Severity   string
	Status     string
	Tags       []string
}

// Match reports whether the finding satisfies every set field.
func (f FindingFilter) Match(rec types.Finding) bool {
	if f.Target != "" && !strings.Contains(strings.ToLower(rec.TargetContext), strings.ToLower(f.Target)) {
		return false
	}
	if f.SourceTool != "" && !strings.EqualFold(rec.SourceToolName, f.SourceTool) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(rec.Category, f.Category) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(rec.Type, f.Type) {
		return false
	}
	if f.Severity != "" && rec.Severity != f.Severity {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if len(f.Tags) > 0 && !rec.HasAllTags(f.Tags) {
		return false
	}
	return true
}

// SortFindings orders findings by the given mode: event time newest first
// (the default), severity rank then title, or title alone.
func SortFindings(findings []types.Finding, mode string) {
	switch mode {
	case FindingSortSeverity:
		SortBy(findings, func(a, b types.Finding) bool {
			ra, rb := types.FindingSeverityRank(a.Severity), types.FindingSeverityRank(b.Severity)
			if ra != rb {
				return ra < rb
			}
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		})
	case FindingSortTitle:
		SortBy(findings, func(a, b types.Finding) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		})
	default:
		SortBy(findings, func(a, b types.Finding) bool {
			return a.EventTime.After(b.EventTime)
		})
	}
}

func anyContains(values []string, want string) bool {
	want = strings.ToLower(want)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), want) {
			return true
		}
	}
	return false
}

func anyEquals(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
