package types

import "time"

// Privilege levels required to invoke an AJAX action.
const (
	PrivilegeNone       = "nopriv"
	PrivilegeAuth       = "auth"
	PrivilegeAdmin      = "admin"
	PrivilegeCapability = "specific_capability"
	PrivilegeUnknown    = "Unknown"
)

// AJAX action test statuses.
const (
	AjaxStatusPending       = "Pending Test"
	AjaxStatusBenign        = "Tested - Benign"
	AjaxStatusInteresting   = "Tested - Interesting Output"
	AjaxStatusVulnerable    = "Tested - Vulnerable"
	AjaxStatusNeedsFollowup = "Needs Further Investigation"
	AjaxStatusMonitor       = "Monitor"
)

var validPrivilegeLevels = map[string]bool{
	PrivilegeNone:       true,
	PrivilegeAuth:       true,
	PrivilegeAdmin:      true,
	PrivilegeCapability: true,
	PrivilegeUnknown:    true,
}

var validAjaxStatuses = map[string]bool{
	AjaxStatusPending:       true,
	AjaxStatusBenign:        true,
	AjaxStatusInteresting:   true,
	AjaxStatusVulnerable:    true,
	AjaxStatusNeedsFollowup: true,
	AjaxStatusMonitor:       true,
}

// AjaxAction records one discovered AJAX endpoint and its testing state.
type AjaxAction struct {
	ID                int      `json:"ajax_id"`
	Name              string   `json:"action_name"`
	TargetHost        string   `json:"target_host"`
	PluginSourceSlug  string   `json:"plugin_source_slug"`
	PrivilegeLevel    string   `json:"privilege_level"`
	TestStatus        string   `json:"test_status"`
	HTTPMethods       []string `json:"http_methods_observed"`
	InterestingParams []string `json:"interesting_parameters"`
	CVEIDs            []string `json:"cve_ids_related"`
	Source            string   `json:"source_of_discovery"`
	Notes             string   `json:"notes"`

	CreatedAt time.Time `json:"date_added"`
	UpdatedAt time.Time `json:"last_updated"`
}

// Validate checks the required name and enum values.
func (a *AjaxAction) Validate() error {
	if a.Name == "" {
		return ErrActionNameEmpty
	}
	if !validPrivilegeLevels[a.PrivilegeLevel] {
		return ErrInvalidPrivilege
	}
	if !validAjaxStatuses[a.TestStatus] {
		return ErrInvalidStatus
	}
	return nil
}

// Backfill inserts defaults for fields absent from older on-disk records.
func (a *AjaxAction) Backfill(now time.Time) {
	if a.TargetHost == "" {
		a.TargetHost = "N/A"
	}
	if a.PluginSourceSlug == "" {
		a.PluginSourceSlug = "Unknown"
	}
	if a.PrivilegeLevel == "" {
		a.PrivilegeLevel = PrivilegeUnknown
	}
	if a.TestStatus == "" {
		a.TestStatus = AjaxStatusPending
	}
	if a.HTTPMethods == nil {
		a.HTTPMethods = []string{"GET", "POST"}
	}
	if a.InterestingParams == nil {
		a.InterestingParams = []string{}
	}
	if a.CVEIDs == nil {
		a.CVEIDs = []string{}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
}
