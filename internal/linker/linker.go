// Package linker correlates findings with the assets they describe.
package linker

import (
	"strings"

	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// FindingToAssets links a finding to every asset whose primary identifier,
// IP set, or hostname set matches the finding's target context
// (case-insensitive). Both sides of the link are updated in memory; the
// caller persists. Returns the number of links added.
func FindingToAssets(f *types.Finding, assets []types.Asset) int {
	target := strings.TrimSpace(f.TargetContext)
	if target == "" || strings.EqualFold(target, "N/A") {
		return 0
	}

	linked := 0
	for i := range assets {
		if !assets[i].Matches(target) {
			continue
		}
		if containsInt(f.AssetIDs, assets[i].ID) {
			continue
		}
		f.AssetIDs = append(f.AssetIDs, assets[i].ID)
		if !containsInt(assets[i].LinkedFindingIDs, f.ID) {
			assets[i].LinkedFindingIDs = append(assets[i].LinkedFindingIDs, f.ID)
		}
		linked++
	}
	return linked
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
