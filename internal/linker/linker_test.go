package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quietriot-sec/fieldcase/pkg/types"
)

func TestFindingToAssets(t *testing.T) {
	assets := []types.Asset{
		{ID: 1, PrimaryIdentifier: "blog.example.com", Hostnames: []string{"www.example.com"}},
		{ID: 2, PrimaryIdentifier: "10.0.0.5", IPAddresses: []string{"10.0.0.5"}},
	}

	f := types.Finding{ID: 7, TargetContext: "BLOG.example.COM"}
	linked := FindingToAssets(&f, assets)

	assert.Equal(t, 1, linked)
	assert.Equal(t, []int{1}, f.AssetIDs)
	assert.Equal(t, []int{7}, assets[0].LinkedFindingIDs)
	assert.Empty(t, assets[1].LinkedFindingIDs)
}

func TestFindingToAssetsByMemberSets(t *testing.T) {
	assets := []types.Asset{
		{ID: 1, PrimaryIdentifier: "web-01", Hostnames: []string{"www.example.com"}},
		{ID: 2, PrimaryIdentifier: "db-01", IPAddresses: []string{"10.0.0.9"}},
	}

	byHostname := types.Finding{ID: 3, TargetContext: "www.example.com"}
	assert.Equal(t, 1, FindingToAssets(&byHostname, assets))
	assert.Equal(t, []int{1}, byHostname.AssetIDs)

	byIP := types.Finding{ID: 4, TargetContext: "10.0.0.9"}
	assert.Equal(t, 1, FindingToAssets(&byIP, assets))
	assert.Equal(t, []int{2}, byIP.AssetIDs)
}

func TestFindingToAssetsSkipsEmptyTargets(t *testing.T) {
	assets := []types.Asset{{ID: 1, PrimaryIdentifier: "n/a"}}

	for _, target := range []string{"", "  ", "N/A", "n/a"} {
		f := types.Finding{ID: 1, TargetContext: target}
		assert.Zero(t, FindingToAssets(&f, assets), "target %q", target)
		assert.Empty(t, f.AssetIDs)
	}
}

func TestFindingToAssetsNoMatch(t *testing.T) {
	assets := []types.Asset{{ID: 1, PrimaryIdentifier: "blog.example.com"}}

	f := types.Finding{ID: 1, TargetContext: "db.example.com"}
	assert.Zero(t, FindingToAssets(&f, assets))
	assert.Empty(t, f.AssetIDs)
	assert.Empty(t, assets[0].LinkedFindingIDs)
}

func TestFindingToAssetsIdempotent(t *testing.T) {
	assets := []types.Asset{{ID: 1, PrimaryIdentifier: "blog.example.com"}}

	f := types.Finding{ID: 5, TargetContext: "blog.example.com", AssetIDs: []int{1}}
	assets[0].LinkedFindingIDs = []int{5}

	assert.Zero(t, FindingToAssets(&f, assets))
	assert.Equal(t, []int{1}, f.AssetIDs)
	assert.Equal(t, []int{5}, assets[0].LinkedFindingIDs)
}
