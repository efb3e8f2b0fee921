package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// Findings loads the general findings collection.
func (s *Store) Findings() []types.Finding {
	return loadCollection(s, findingsFile, (*types.Finding).Backfill)
}

// SaveFindings persists the full findings collection.
func (s *Store) SaveFindings(findings []types.Finding) error {
	return saveCollection(s, findingsFile, findings)
}

// AddFinding validates and appends a manually entered finding. A missing
// insight ID is generated; tags are folded to a lowercase set. No asset
// linking happens here, that is the importer's job.
func (s *Store) AddFinding(f types.Finding) (types.Finding, error) {
	now := s.now()
	if f.InsightID == "" {
		f.InsightID = uuid.NewString()
	}
	if f.SourceType == "" {
		f.SourceType = types.SourceTypeManualEntry
	}
	f.Tags = types.LowercaseSet(f.Tags)
	f.CreatedAt = now
	f.UpdatedAt = now
	f.Backfill(now)
	if err := f.Validate(); err != nil {
		return types.Finding{}, err
	}

	findings := s.Findings()
	f.ID = s.nextID(findingsFile, findingIDs(findings))
	findings = append(findings, f)
	if err := s.SaveFindings(findings); err != nil {
		return types.Finding{}, err
	}
	return f, nil
}

// NextFindingID allocates an ID against the given in-memory collection
// through the same monotonic allocator AddFinding uses, so bulk callers
// holding the collection cannot reissue a removed record's ID.
func (s *Store) NextFindingID(findings []types.Finding) int {
	return s.nextID(findingsFile, findingIDs(findings))
}

// FindingByID returns the finding with the given ID.
func (s *Store) FindingByID(id int) (types.Finding, error) {
	for _, f := range s.Findings() {
		if f.ID == id {
			return f, nil
		}
	}
	return types.Finding{}, fmt.Errorf("%w: finding %d", types.ErrNotFound, id)
}

// UpdateFinding replaces the stored finding with the same ID, preserving
// its creation time.
func (s *Store) UpdateFinding(f types.Finding) (types.Finding, error) {
	findings := s.Findings()
	idx := -1
	for i := range findings {
		if findings[i].ID == f.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.Finding{}, fmt.Errorf("%w: finding %d", types.ErrNotFound, f.ID)
	}

	f.Tags = types.LowercaseSet(f.Tags)
	f.CreatedAt = findings[idx].CreatedAt
	f.UpdatedAt = s.now()
	if err := f.Validate(); err != nil {
		return types.Finding{}, err
	}

	findings[idx] = f
	if err := s.SaveFindings(findings); err != nil {
		return types.Finding{}, err
	}
	return f, nil
}

// RemoveFinding rewrites the collection without the given finding. Asset
// back-links to the removed ID are left in place.
func (s *Store) RemoveFinding(id int) error {
	findings := s.Findings()
	kept := findings[:0]
	found := false
	for _, f := range findings {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return fmt.Errorf("%w: finding %d", types.ErrNotFound, id)
	}
	return s.SaveFindings(kept)
}

// ListFindings returns the findings matching the filter in the requested
// sort order.
func (s *Store) ListFindings(filter query.FindingFilter, sortMode string) []types.Finding {
	matched := query.Filter(s.Findings(), filter.Match)
	query.SortFindings(matched, sortMode)
	return matched
}

func findingIDs(findings []types.Finding) []int {
	ids := make([]int, len(findings))
	for i, f := range findings {
		ids[i] = f.ID
	}
	return ids
}
