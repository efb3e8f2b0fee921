package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferAssetType(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
	}{
		{"10.0.0.5", AssetTypeHostIP},
		{"192.168.1.254", AssetTypeHostIP},
		{"blog.example.com", AssetTypeHostname},
		{"300.1.1.1", AssetTypeHostname},
		{"", AssetTypeHostname},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.want, InferAssetType(tt.identifier))
		})
	}
}

func TestAssetMatches(t *testing.T) {
	asset := Asset{
		PrimaryIdentifier: "Blog.Example.Com",
		IPAddresses:       []string{"10.0.0.5"},
		Hostnames:         []string{"www.example.com"},
	}

	tests := []struct {
		name       string
		identifier string
		want       bool
	}{
		{"primary identifier exact", "Blog.Example.Com", true},
		{"primary identifier case folded", "blog.example.COM", true},
		{"ip member", "10.0.0.5", true},
		{"hostname member", "WWW.example.com", true},
		{"whitespace trimmed", "  10.0.0.5  ", true},
		{"no match", "db.example.com", false},
		{"empty never matches", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, asset.Matches(tt.identifier))
		})
	}
}

func TestAssetAddService(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	asset := Asset{PrimaryIdentifier: "10.0.0.5"}

	svc, err := asset.AddService(Service{Port: 443, Name: "https"}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.ID)
	assert.Equal(t, "tcp", svc.Protocol)
	assert.Equal(t, ServiceStateOpen, svc.State)
	assert.Equal(t, now, svc.LastSeen)
	assert.Equal(t, now, asset.UpdatedAt)

	// Same port on the other protocol is a distinct service.
	svc2, err := asset.AddService(Service{Port: 443, Protocol: "udp"}, now)
	require.NoError(t, err)
	assert.Equal(t, 2, svc2.ID)
	assert.Equal(t, "Unknown", svc2.Name)

	_, err = asset.AddService(Service{Port: 443, Protocol: "tcp"}, now)
	assert.ErrorIs(t, err, ErrDuplicateService)

	_, err = asset.AddService(Service{Port: 70000}, now)
	assert.ErrorIs(t, err, ErrInvalidPort)

	_, err = asset.AddService(Service{Port: 80, Protocol: "icmp"}, now)
	assert.ErrorIs(t, err, ErrInvalidProtocol)
}

func TestAssetBackfill(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	asset := Asset{
		PrimaryIdentifier: "10.0.0.5",
		Services:          []Service{{ID: 1, Port: 22, Protocol: "tcp", State: "open", Name: "ssh"}},
	}
	asset.Backfill(now)

	assert.Equal(t, AssetTypeHostIP, asset.Type)
	assert.Equal(t, AssetStatusInvestigating, asset.Status)
	assert.Equal(t, "Unknown", asset.OSDetails)
	assert.NotNil(t, asset.IPAddresses)
	assert.NotNil(t, asset.Hostnames)
	assert.NotNil(t, asset.EnvironmentTags)
	assert.NotNil(t, asset.LinkedFindingIDs)
	assert.Equal(t, now, asset.CreatedAt)
	assert.Equal(t, now, asset.Services[0].LastSeen)
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"production", "DMZ", "  production  ", "", "internal net"})
	assert.Equal(t, []string{"Dmz", "Internal Net", "Production"}, got)
}

func TestSortedSet(t *testing.T) {
	got := SortedSet([]string{"b", "a", "b", " ", "c", ""})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestLowercaseSet(t *testing.T) {
	got := LowercaseSet([]string{"WWW.Example.Com", "www.example.com", "API.example.com"})
	assert.Equal(t, []string{"api.example.com", "www.example.com"}, got)
}
