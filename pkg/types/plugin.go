package types

import (
	"sort"
	"strings"
	"time"
)

// Plugin investigation statuses.
const (
	PluginStatusToInvestigate     = "To Investigate"
	PluginStatusNeedsVersionCheck = "Needs Version Check"
	PluginStatusKnownVulnerable   = "Known Vulnerable"
	PluginStatusTestingPoC        = "Testing PoC"
	PluginStatusPatched           = "Patched"
	PluginStatusNotVulnerable     = "Not Vulnerable"
	PluginStatusInformational     = "Informational"
	PluginStatusMonitor           = "Monitor"
)

var validPluginStatuses = map[string]bool{
	PluginStatusToInvestigate:     true,
	PluginStatusNeedsVersionCheck: true,
	PluginStatusKnownVulnerable:   true,
	PluginStatusTestingPoC:        true,
	PluginStatusPatched:           true,
	PluginStatusNotVulnerable:     true,
	PluginStatusInformational:     true,
	PluginStatusMonitor:           true,
}

// Plugin records one discovered plugin/component observation. The logical
// discriminator is the (slug, target host) pair: adding one slug against N
// hosts fans out into N records sharing the slug.
type Plugin struct {
	ID                 int      `json:"plugin_id"`
	Slug               string   `json:"plugin_slug"`
	TargetHost         string   `json:"target_host"`
	VersionObserved    string   `json:"version_observed"`
	OldestVersionKnown string   `json:"oldest_version_known"`
	Status             string   `json:"status"`
	CVEIDs             []string `json:"cve_ids"`
	SourcePath         string   `json:"source_of_discovery_path"`
	ReadmeSnippet      string   `json:"readme_content_snippet"`
	Notes              string   `json:"notes"`

	CreatedAt time.Time `json:"date_added"`
	UpdatedAt time.Time `json:"last_updated"`
}

// Validate checks the required slug and the status enum.
func (p *Plugin) Validate() error {
	if p.Slug == "" {
		return ErrSlugEmpty
	}
	if !validPluginStatuses[p.Status] {
		return ErrInvalidStatus
	}
	return nil
}

// Backfill inserts defaults for fields absent from older on-disk records.
func (p *Plugin) Backfill(now time.Time) {
	if p.Status == "" {
		p.Status = PluginStatusToInvestigate
	}
	if p.VersionObserved == "" {
		p.VersionObserved = "Unknown"
	}
	if p.OldestVersionKnown == "" {
		p.OldestVersionKnown = p.VersionObserved
	}
	if p.TargetHost == "" {
		p.TargetHost = "N/A"
	}
	if p.CVEIDs == nil {
		p.CVEIDs = []string{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
}

// NormalizeCVEs uppercases, trims, and deduplicates a list of CVE IDs,
// preserving first-seen order.
func NormalizeCVEs(cves []string) []string {
	out := make([]string, 0, len(cves))
	seen := make(map[string]bool, len(cves))
	for _, c := range cves {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// SortedSet trims, deduplicates, and sorts a list of strings. Used for
// IP address and hostname sets on assets.
func SortedSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// LowercaseSet lowercases every value and returns the sorted, deduplicated
// result. Used for hostname sets and finding tags.
func LowercaseSet(values []string) []string {
	lowered := make([]string, 0, len(values))
	for _, v := range values {
		lowered = append(lowered, strings.ToLower(v))
	}
	return SortedSet(lowered)
}
