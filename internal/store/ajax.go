package store

import (
	"fmt"
	"strings"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// AjaxActions loads the AJAX action collection.
func (s *Store) AjaxActions() []types.AjaxAction {
	return loadCollection(s, ajaxFile, (*types.AjaxAction).Backfill)
}

// SaveAjaxActions persists the full AJAX action collection.
func (s *Store) SaveAjaxActions(actions []types.AjaxAction) error {
	return saveCollection(s, ajaxFile, actions)
}

// AddAjaxAction validates and appends a new AJAX action record.
func (s *Store) AddAjaxAction(a types.AjaxAction) (types.AjaxAction, error) {
	now := s.now()
	a.Backfill(now)
	a.HTTPMethods = upperSet(a.HTTPMethods)
	a.CVEIDs = types.NormalizeCVEs(a.CVEIDs)
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := a.Validate(); err != nil {
		return types.AjaxAction{}, err
	}

	actions := s.AjaxActions()
	a.ID = s.nextID(ajaxFile, ajaxIDs(actions))
	actions = append(actions, a)
	if err := s.SaveAjaxActions(actions); err != nil {
		return types.AjaxAction{}, err
	}
	return a, nil
}

// AjaxActionByID returns the AJAX action with the given ID.
func (s *Store) AjaxActionByID(id int) (types.AjaxAction, error) {
	for _, a := range s.AjaxActions() {
		if a.ID == id {
			return a, nil
		}
	}
	return types.AjaxAction{}, fmt.Errorf("%w: ajax action %d", types.ErrNotFound, id)
}

// UpdateAjaxAction replaces the stored AJAX action with the same ID.
func (s *Store) UpdateAjaxAction(a types.AjaxAction) (types.AjaxAction, error) {
	actions := s.AjaxActions()
	idx := -1
	for i := range actions {
		if actions[i].ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.AjaxAction{}, fmt.Errorf("%w: ajax action %d", types.ErrNotFound, a.ID)
	}

	a.HTTPMethods = upperSet(a.HTTPMethods)
	a.CVEIDs = types.NormalizeCVEs(a.CVEIDs)
	a.CreatedAt = actions[idx].CreatedAt
	a.UpdatedAt = s.now()
	if err := a.Validate(); err != nil {
		return types.AjaxAction{}, err
	}

	actions[idx] = a
	if err := s.SaveAjaxActions(actions); err != nil {
		return types.AjaxAction{}, err
	}
	return a, nil
}

// RemoveAjaxAction rewrites the collection without the given record.
func (s *Store) RemoveAjaxAction(id int) error {
	actions := s.AjaxActions()
	kept := actions[:0]
	found := false
	for _, a := range actions {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return fmt.Errorf("%w: ajax action %d", types.ErrNotFound, id)
	}
	return s.SaveAjaxActions(kept)
}

// ListAjaxActions returns the AJAX actions matching the filter, ordered by
// name then target host.
func (s *Store) ListAjaxActions(filter query.AjaxFilter) []types.AjaxAction {
	matched := query.Filter(s.AjaxActions(), filter.Match)
	query.SortAjax(matched)
	return matched
}

// upperSet uppercases, trims, and deduplicates, preserving first-seen order.
func upperSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func ajaxIDs(actions []types.AjaxAction) []int {
	ids := make([]int, len(actions))
	for i, a := range actions {
		ids[i] = a.ID
	}
	return ids
}
