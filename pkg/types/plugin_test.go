package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluginValidate(t *testing.T) {
	p := Plugin{Slug: "contact-form-7", Status: PluginStatusToInvestigate}
	assert.NoError(t, p.Validate())

	p.Slug = ""
	assert.ErrorIs(t, p.Validate(), ErrSlugEmpty)

	p.Slug = "contact-form-7"
	p.Status = "Unknown Status"
	assert.ErrorIs(t, p.Validate(), ErrInvalidStatus)
}

func TestPluginBackfill(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	p := Plugin{Slug: "akismet"}
	p.Backfill(now)

	assert.Equal(t, PluginStatusToInvestigate, p.Status)
	assert.Equal(t, "Unknown", p.VersionObserved)
	assert.Equal(t, "Unknown", p.OldestVersionKnown)
	assert.Equal(t, "N/A", p.TargetHost)
	assert.NotNil(t, p.CVEIDs)
	assert.Equal(t, now, p.CreatedAt)

	// OldestVersionKnown inherits the observed version when absent.
	q := Plugin{Slug: "akismet", VersionObserved: "5.3"}
	q.Backfill(now)
	assert.Equal(t, "5.3", q.OldestVersionKnown)
}

func TestNormalizeCVEs(t *testing.T) {
	got := NormalizeCVEs([]string{
		"cve-2021-24867", " CVE-2021-24867 ", "CVE-2023-0001", "", "cve-2023-0001",
	})
	assert.Equal(t, []string{"CVE-2021-24867", "CVE-2023-0001"}, got)
}

func TestAjaxActionValidate(t *testing.T) {
	a := AjaxAction{
		Name:           "wpforms_submit",
		PrivilegeLevel: PrivilegeNone,
		TestStatus:     AjaxStatusPending,
	}
	assert.NoError(t, a.Validate())

	a.Name = ""
	assert.ErrorIs(t, a.Validate(), ErrActionNameEmpty)

	a.Name = "wpforms_submit"
	a.PrivilegeLevel = "root"
	assert.ErrorIs(t, a.Validate(), ErrInvalidPrivilege)

	a.PrivilegeLevel = PrivilegeAdmin
	a.TestStatus = "Skipped"
	assert.ErrorIs(t, a.Validate(), ErrInvalidStatus)
}

func TestAjaxActionBackfill(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a := AjaxAction{Name: "export_users"}
	a.Backfill(now)

	assert.Equal(t, "N/A", a.TargetHost)
	assert.Equal(t, PrivilegeUnknown, a.PrivilegeLevel)
	assert.Equal(t, AjaxStatusPending, a.TestStatus)
	assert.Equal(t, []string{"GET", "POST"}, a.HTTPMethods)
	assert.NotNil(t, a.InterestingParams)
	assert.NotNil(t, a.CVEIDs)

	// An explicit empty method list is preserved.
	b := AjaxAction{Name: "noop", HTTPMethods: []string{}}
	b.Backfill(now)
	assert.Empty(t, b.HTTPMethods)
}
