package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// Assets loads the asset collection.
func (s *Store) Assets() []types.Asset {
	return loadCollection(s, assetsFile, (*types.Asset).Backfill)
}

// SaveAssets persists the full asset collection.
func (s *Store) SaveAssets(assets []types.Asset) error {
	return saveCollection(s, assetsFile, assets)
}

// AddAsset validates, normalizes, and appends a new asset. The primary
// identifier must be unique per project (case-insensitive); an IP-shaped
// identifier is folded into the IP set, any other into the hostname set.
func (s *Store) AddAsset(a types.Asset) (types.Asset, error) {
	a.PrimaryIdentifier = strings.TrimSpace(a.PrimaryIdentifier)
	if a.PrimaryIdentifier == "" {
		return types.Asset{}, types.ErrIdentifierEmpty
	}

	assets := s.Assets()
	for _, existing := range assets {
		if strings.EqualFold(existing.PrimaryIdentifier, a.PrimaryIdentifier) {
			return types.Asset{}, fmt.Errorf("%w: %s (asset %d)",
				types.ErrDuplicateIdentifier, existing.PrimaryIdentifier, existing.ID)
		}
	}

	now := s.now()
	a.Backfill(now)
	normalizeAssetSets(&a)
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := a.Validate(); err != nil {
		return types.Asset{}, err
	}

	a.ID = s.nextID(assetsFile, assetIDs(assets))
	assets = append(assets, a)
	if err := s.SaveAssets(assets); err != nil {
		return types.Asset{}, err
	}
	return a, nil
}

// AssetByID returns the asset with the given ID.
func (s *Store) AssetByID(id int) (types.Asset, error) {
	for _, a := range s.Assets() {
		if a.ID == id {
			return a, nil
		}
	}
	return types.Asset{}, fmt.Errorf("%w: asset %d", types.ErrNotFound, id)
}

// FindAsset resolves a reference that is either a numeric asset ID or an
// identifier matched case-insensitively against primary identifiers first,
// then IP and hostname membership.
func (s *Store) FindAsset(ref string) (types.Asset, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return types.Asset{}, types.ErrInvalidID
	}
	assets := s.Assets()
	if id, err := strconv.Atoi(ref); err == nil {
		for _, a := range assets {
			if a.ID == id {
				return a, nil
			}
		}
	}
	for _, a := range assets {
		if strings.EqualFold(a.PrimaryIdentifier, ref) {
			return a, nil
		}
	}
	for _, a := range assets {
		if a.Matches(ref) {
			return a, nil
		}
	}
	return types.Asset{}, fmt.Errorf("%w: asset %q", types.ErrNotFound, ref)
}

// UpdateAsset replaces the stored asset with the same ID, renormalizing its
// sets. Changing the primary identifier to one held by a different asset is
// rejected.
func (s *Store) UpdateAsset(a types.Asset) (types.Asset, error) {
	assets := s.Assets()
	idx := -1
	for i := range assets {
		if assets[i].ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.Asset{}, fmt.Errorf("%w: asset %d", types.ErrNotFound, a.ID)
	}
	for i := range assets {
		if i != idx && strings.EqualFold(assets[i].PrimaryIdentifier, a.PrimaryIdentifier) {
			return types.Asset{}, fmt.Errorf("%w: %s (asset %d)",
				types.ErrDuplicateIdentifier, assets[i].PrimaryIdentifier, assets[i].ID)
		}
	}

	normalizeAssetSets(&a)
	a.CreatedAt = assets[idx].CreatedAt
	a.UpdatedAt = s.now()
	if err := a.Validate(); err != nil {
		return types.Asset{}, err
	}

	assets[idx] = a
	if err := s.SaveAssets(assets); err != nil {
		return types.Asset{}, err
	}
	return a, nil
}

// RemoveAsset rewrites the collection without the given asset. Links held
// by findings are left dangling on purpose; removal does not cascade.
func (s *Store) RemoveAsset(id int) error {
	assets := s.Assets()
	kept := assets[:0]
	found := false
	for _, a := range assets {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return fmt.Errorf("%w: asset %d", types.ErrNotFound, id)
	}
	return s.SaveAssets(kept)
}

// AddService appends a service to the asset resolved by ref. The (port,
// protocol) pair must be unique within the asset.
func (s *Store) AddService(ref string, svc types.Service) (types.Asset, types.Service, error) {
	assets := s.Assets()
	idx, err := s.resolveAssetIndex(assets, ref)
	if err != nil {
		return types.Asset{}, types.Service{}, err
	}
	added, err := assets[idx].AddService(svc, s.now())
	if err != nil {
		return types.Asset{}, types.Service{}, err
	}
	result := *added
	if err := s.SaveAssets(assets); err != nil {
		return types.Asset{}, types.Service{}, err
	}
	return assets[idx], result, nil
}

// UpdateService replaces the service with svc.ID on the asset resolved by
// ref, refreshing its last-seen time. Moving it onto another service's
// (port, protocol) pair is rejected.
func (s *Store) UpdateService(ref string, svc types.Service) (types.Asset, error) {
	assets := s.Assets()
	idx, err := s.resolveAssetIndex(assets, ref)
	if err != nil {
		return types.Asset{}, err
	}
	asset := &assets[idx]

	svcIdx := -1
	for i := range asset.Services {
		if asset.Services[i].ID == svc.ID {
			svcIdx = i
			break
		}
	}
	if svcIdx < 0 {
		return types.Asset{}, fmt.Errorf("%w: service %d on asset %d", types.ErrNotFound, svc.ID, asset.ID)
	}
	for i := range asset.Services {
		if i != svcIdx && asset.Services[i].Port == svc.Port && asset.Services[i].Protocol == svc.Protocol {
			return types.Asset{}, types.ErrDuplicateService
		}
	}
	if err := svc.Validate(); err != nil {
		return types.Asset{}, err
	}

	now := s.now()
	svc.LastSeen = now
	asset.Services[svcIdx] = svc
	asset.UpdatedAt = now
	if err := s.SaveAssets(assets); err != nil {
		return types.Asset{}, err
	}
	return *asset, nil
}

// RemoveService deletes a service from the asset resolved by ref.
func (s *Store) RemoveService(ref string, serviceID int) (types.Asset, error) {
	assets := s.Assets()
	idx, err := s.resolveAssetIndex(assets, ref)
	if err != nil {
		return types.Asset{}, err
	}
	asset := &assets[idx]

	svcIdx := -1
	for i := range asset.Services {
		if asset.Services[i].ID == serviceID {
			svcIdx = i
			break
		}
	}
	if svcIdx < 0 {
		return types.Asset{}, fmt.Errorf("%w: service %d on asset %d", types.ErrNotFound, serviceID, asset.ID)
	}

	asset.Services = append(asset.Services[:svcIdx], asset.Services[svcIdx+1:]...)
	asset.UpdatedAt = s.now()
	if err := s.SaveAssets(assets); err != nil {
		return types.Asset{}, err
	}
	return *asset, nil
}

// ListAssets returns the assets matching the filter, ordered by primary
// identifier.
func (s *Store) ListAssets(filter query.AssetFilter) []types.Asset {
	matched := query.Filter(s.Assets(), filter.Match)
	query.SortAssets(matched)
	return matched
}

// normalizeAssetSets folds the primary identifier into the matching
// address set and renormalizes all three sets. Both add and update go
// through this so the primary identifier can never drop out of its set.
func normalizeAssetSets(a *types.Asset) {
	if types.InferAssetType(a.PrimaryIdentifier) == types.AssetTypeHostIP {
		a.IPAddresses = append(a.IPAddresses, a.PrimaryIdentifier)
	} else {
		a.Hostnames = append(a.Hostnames, a.PrimaryIdentifier)
	}
	a.IPAddresses = types.SortedSet(a.IPAddresses)
	a.Hostnames = types.LowercaseSet(a.Hostnames)
	a.EnvironmentTags = types.NormalizeTags(a.EnvironmentTags)
}

// resolveAssetIndex locates the asset referenced by a numeric ID or an
// identifier within the already-loaded slice.
func (s *Store) resolveAssetIndex(assets []types.Asset, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, types.ErrInvalidID
	}
	if id, err := strconv.Atoi(ref); err == nil {
		for i := range assets {
			if assets[i].ID == id {
				return i, nil
			}
		}
	}
	for i := range assets {
		if strings.EqualFold(assets[i].PrimaryIdentifier, ref) {
			return i, nil
		}
	}
	for i := range assets {
		if assets[i].Matches(ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: asset %q", types.ErrNotFound, ref)
}

func assetIDs(assets []types.Asset) []int {
	ids := make([]int, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}
	return ids
}
