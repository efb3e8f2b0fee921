package store

import (
	"fmt"
	"strings"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// Plugins loads the plugin collection.
func (s *Store) Plugins() []types.Plugin {
	return loadCollection(s, pluginsFile, (*types.Plugin).Backfill)
}

// SavePlugins persists the full plugin collection.
func (s *Store) SavePlugins(plugins []types.Plugin) error {
	return saveCollection(s, pluginsFile, plugins)
}

// AddPlugin records one plugin observation for each target host, fanning a
// single slug out into per-host records. With no hosts a single "N/A"
// record is created. Returns the created records.
func (s *Store) AddPlugin(p types.Plugin, hosts []string) ([]types.Plugin, error) {
	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	now := s.now()
	p.Backfill(now)
	p.CVEIDs = types.NormalizeCVEs(p.CVEIDs)
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if len(hosts) == 0 {
		hosts = []string{"N/A"}
	}

	plugins := s.Plugins()
	created := make([]types.Plugin, 0, len(hosts))
	for _, host := range hosts {
		rec := p
		rec.TargetHost = host
		rec.CVEIDs = append([]string(nil), p.CVEIDs...)
		rec.ID = s.nextID(pluginsFile, pluginIDs(plugins))
		plugins = append(plugins, rec)
		created = append(created, rec)
	}
	if err := s.SavePlugins(plugins); err != nil {
		return nil, err
	}
	return created, nil
}

// PluginByID returns the plugin record with the given ID.
func (s *Store) PluginByID(id int) (types.Plugin, error) {
	for _, p := range s.Plugins() {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Plugin{}, fmt.Errorf("%w: plugin %d", types.ErrNotFound, id)
}

// UpdatePlugin replaces the stored plugin record with the same ID.
func (s *Store) UpdatePlugin(p types.Plugin) (types.Plugin, error) {
	plugins := s.Plugins()
	idx := -1
	for i := range plugins {
		if plugins[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.Plugin{}, fmt.Errorf("%w: plugin %d", types.ErrNotFound, p.ID)
	}

	p.Slug = strings.ToLower(strings.TrimSpace(p.Slug))
	p.CVEIDs = types.NormalizeCVEs(p.CVEIDs)
	p.CreatedAt = plugins[idx].CreatedAt
	p.UpdatedAt = s.now()
	if err := p.Validate(); err != nil {
		return types.Plugin{}, err
	}

	plugins[idx] = p
	if err := s.SavePlugins(plugins); err != nil {
		return types.Plugin{}, err
	}
	return p, nil
}

// RemovePlugin rewrites the collection without the given plugin record.
func (s *Store) RemovePlugin(id int) error {
	plugins := s.Plugins()
	kept := plugins[:0]
	found := false
	for _, p := range plugins {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("%w: plugin %d", types.ErrNotFound, id)
	}
	return s.SavePlugins(kept)
}

// ListPlugins returns the plugin records matching the filter, ordered by
// slug then observed version.
func (s *Store) ListPlugins(filter query.PluginFilter) []types.Plugin {
	matched := query.Filter(s.Plugins(), filter.Match)
	query.SortPlugins(matched)
	return matched
}

func pluginIDs(plugins []types.Plugin) []int {
	ids := make([]int, len(plugins))
	for i, p := range plugins {
		ids[i] = p.ID
	}
	return ids
}
