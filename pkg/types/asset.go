package types

import (
	"net/netip"
	"strings"
	"time"
	"unicode"
)

// Asset types. HostIP is inferred when the primary identifier parses as an
// IPv4 literal; Hostname otherwise.
const (
	AssetTypeHostIP         = "HostIP"
	AssetTypeHostname       = "Hostname"
	AssetTypeWebsiteURL     = "WebsiteURL"
	AssetTypeNetworkService = "NetworkService"
	AssetTypeCloudResource  = "CloudResource"
	AssetTypeDomain         = "Domain"
	AssetTypeUnknown        = "Unknown"
)

// Asset statuses.
const (
	AssetStatusInScope        = "Active_InScope"
	AssetStatusOutOfScope     = "Active_OutOfScope"
	AssetStatusMonitored      = "Monitored"
	AssetStatusInvestigating  = "Investigating"
	AssetStatusDecommissioned = "Decommissioned"
	AssetStatusUnknown        = "Unknown"
)

// Service states.
const (
	ServiceStateOpen     = "open"
	ServiceStateClosed   = "closed"
	ServiceStateFiltered = "filtered"
	ServiceStateUnknown  = "unknown"
)

var validAssetTypes = map[string]bool{
	AssetTypeHostIP:         true,
	AssetTypeHostname:       true,
	AssetTypeWebsiteURL:     true,
	AssetTypeNetworkService: true,
	AssetTypeCloudResource:  true,
	AssetTypeDomain:         true,
	AssetTypeUnknown:        true,
}

var validAssetStatuses = map[string]bool{
	AssetStatusInScope:        true,
	AssetStatusOutOfScope:     true,
	AssetStatusMonitored:      true,
	AssetStatusInvestigating:  true,
	AssetStatusDecommissioned: true,
	AssetStatusUnknown:        true,
}

var validServiceStates = map[string]bool{
	ServiceStateOpen:     true,
	ServiceStateClosed:   true,
	ServiceStateFiltered: true,
	ServiceStateUnknown:  true,
}

// Service is a network service observed on an asset. Service IDs are scoped
// to the parent asset, and the (port, protocol) pair is unique per asset.
type Service struct {
	ID       int    `json:"service_id"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	State    string `json:"state"`
	Name     string `json:"service_name"`
	Product  string `json:"service_product,omitempty"`
	Version  string `json:"service_version,omitempty"`
	Banner   string `json:"banner,omitempty"`
	Notes    string `json:"notes_service,omitempty"`

	LastSeen time.Time `json:"last_seen_timestamp"`
}

// Validate checks the port range, protocol, and state.
func (s *Service) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return ErrInvalidPort
	}
	if s.Protocol != "tcp" && s.Protocol != "udp" {
		return ErrInvalidProtocol
	}
	if !validServiceStates[s.State] {
		return ErrInvalidServiceState
	}
	return nil
}

// Asset is a network asset (host, IP, site) under assessment, with embedded
// service sub-records and reverse links to related records.
type Asset struct {
	ID                int      `json:"asset_id"`
	Type              string   `json:"asset_type"`
	PrimaryIdentifier string   `json:"primary_identifier"`
	IPAddresses       []string `json:"ip_addresses"`
	Hostnames         []string `json:"hostnames"`
	OSDetails         string   `json:"os_details"`
	EnvironmentTags   []string `json:"environment_tags"`
	Description       string   `json:"description"`
	Status            string   `json:"status"`

	Services []Service `json:"services"`
	Notes    string    `json:"notes_asset"`

	CreatedAt time.Time `json:"date_added"`
	UpdatedAt time.Time `json:"last_updated"`

	LinkedFindingIDs []int `json:"linked_finding_ids"`
	LinkedPluginIDs  []int `json:"linked_plugin_ids"`
	LinkedAjaxIDs    []int `json:"linked_ajax_ids"`
	LinkedTodoIDs    []int `json:"linked_todo_ids"`
}

// Validate checks the required identifier and enum values.
func (a *Asset) Validate() error {
	if a.PrimaryIdentifier == "" {
		return ErrIdentifierEmpty
	}
	if !validAssetTypes[a.Type] {
		return ErrInvalidAssetType
	}
	if !validAssetStatuses[a.Status] {
		return ErrInvalidStatus
	}
	return nil
}

// Backfill inserts defaults for fields absent from older on-disk records.
// A loaded asset always has non-nil services and link arrays.
func (a *Asset) Backfill(now time.Time) {
	if a.Type == "" {
		a.Type = InferAssetType(a.PrimaryIdentifier)
	}
	if a.Status == "" {
		a.Status = AssetStatusInvestigating
	}
	if a.OSDetails == "" {
		a.OSDetails = "Unknown"
	}
	if a.IPAddresses == nil {
		a.IPAddresses = []string{}
	}
	if a.Hostnames == nil {
		a.Hostnames = []string{}
	}
	if a.EnvironmentTags == nil {
		a.EnvironmentTags = []string{}
	}
	if a.Services == nil {
		a.Services = []Service{}
	}
	if a.LinkedFindingIDs == nil {
		a.LinkedFindingIDs = []int{}
	}
	if a.LinkedPluginIDs == nil {
		a.LinkedPluginIDs = []int{}
	}
	if a.LinkedAjaxIDs == nil {
		a.LinkedAjaxIDs = []int{}
	}
	if a.LinkedTodoIDs == nil {
		a.LinkedTodoIDs = []int{}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	for i := range a.Services {
		if a.Services[i].LastSeen.IsZero() {
			a.Services[i].LastSeen = a.UpdatedAt
		}
	}
}

// Matches reports whether the identifier matches this asset's primary
// identifier or appears in its IP address or hostname sets. The comparison
// is case-insensitive.
func (a *Asset) Matches(identifier string) bool {
	want := strings.ToLower(strings.TrimSpace(identifier))
	if want == "" {
		return false
	}
	if strings.ToLower(a.PrimaryIdentifier) == want {
		return true
	}
	for _, ip := range a.IPAddresses {
		if strings.ToLower(ip) == want {
			return true
		}
	}
	for _, h := range a.Hostnames {
		if strings.ToLower(h) == want {
			return true
		}
	}
	return false
}

// NextServiceID allocates the next service ID scoped to this asset.
func (a *Asset) NextServiceID() int {
	max := 0
	for _, s := range a.Services {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

// FindService returns the service with the given (port, protocol) pair,
// or nil if the asset has none.
func (a *Asset) FindService(port int, protocol string) *Service {
	for i := range a.Services {
		if a.Services[i].Port == port && a.Services[i].Protocol == protocol {
			return &a.Services[i]
		}
	}
	return nil
}

// AddService validates and appends a service to the asset, allocating its
// scoped ID and stamping its last-seen time. Returns ErrDuplicateService if
// the (port, protocol) pair is already recorded on this asset.
func (a *Asset) AddService(svc Service, now time.Time) (*Service, error) {
	if svc.Protocol == "" {
		svc.Protocol = "tcp"
	}
	if svc.State == "" {
		svc.State = ServiceStateOpen
	}
	if svc.Name == "" {
		svc.Name = "Unknown"
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	if a.FindService(svc.Port, svc.Protocol) != nil {
		return nil, ErrDuplicateService
	}
	svc.ID = a.NextServiceID()
	svc.LastSeen = now
	a.Services = append(a.Services, svc)
	a.UpdatedAt = now
	return &a.Services[len(a.Services)-1], nil
}

// InferAssetType returns HostIP when the identifier parses as an IPv4
// literal and Hostname otherwise.
func InferAssetType(identifier string) string {
	if addr, err := netip.ParseAddr(identifier); err == nil && addr.Is4() {
		return AssetTypeHostIP
	}
	return AssetTypeHostname
}

// NormalizeTags title-cases, deduplicates, and sorts environment tags.
func NormalizeTags(tags []string) []string {
	titled := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		titled = append(titled, titleCase(t))
	}
	return SortedSet(titled)
}

// titleCase uppercases the first letter of each word and lowercases the rest.
func titleCase(s string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			if startOfWord {
				r = unicode.ToUpper(r)
			}
			startOfWord = false
		} else {
			startOfWord = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
