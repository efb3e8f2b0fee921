// Package sqlite exports a project's collections into a single SQLite
// snapshot for ad-hoc querying with external tools.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quietriot-sec/fieldcase/internal/store"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// Schema DDL for the snapshot tables. List-valued record fields are stored
// as JSON text; finding-to-asset links additionally get a join table.
const (
	createTodos = `CREATE TABLE todos (
    id INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    priority TEXT NOT NULL,
    severity TEXT NOT NULL,
    status TEXT NOT NULL,
    category TEXT NOT NULL,
    target TEXT NOT NULL,
    notes TEXT,
    creation_date TEXT NOT NULL,
    last_modified_date TEXT NOT NULL,
    completion_date TEXT
);`

	createPlugins = `CREATE TABLE plugins (
    id INTEGER PRIMARY KEY,
    slug TEXT NOT NULL,
    target_host TEXT NOT NULL,
    version_observed TEXT,
    oldest_version_known TEXT,
    status TEXT NOT NULL,
    cve_ids TEXT NOT NULL,
    source_of_discovery TEXT,
    readme_snippet TEXT,
    notes TEXT,
    date_added TEXT NOT NULL,
    last_updated TEXT NOT NULL
);`

	createAjaxActions = `CREATE TABLE ajax_actions (
    id INTEGER PRIMARY KEY,
    action_name TEXT NOT NULL,
    target_host TEXT NOT NULL,
    plugin_source_slug TEXT,
    privilege_level TEXT NOT NULL,
    test_status TEXT NOT NULL,
    http_methods TEXT NOT NULL,
    interesting_parameters TEXT NOT NULL,
    cve_ids TEXT NOT NULL,
    source_of_discovery TEXT,
    notes TEXT,
    date_added TEXT NOT NULL,
    last_updated TEXT NOT NULL
);`

	createAssets = `CREATE TABLE assets (
    id INTEGER PRIMARY KEY,
    asset_type TEXT NOT NULL,
    primary_identifier TEXT NOT NULL,
    ip_addresses TEXT NOT NULL,
    hostnames TEXT NOT NULL,
    os_details TEXT,
    environment_tags TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL,
    notes TEXT,
    date_added TEXT NOT NULL,
    last_updated TEXT NOT NULL
);`

	createServices = `CREATE TABLE services (
    asset_id INTEGER NOT NULL,
    service_id INTEGER NOT NULL,
    port INTEGER NOT NULL,
    protocol TEXT NOT NULL,
    state TEXT NOT NULL,
    service_name TEXT NOT NULL,
    product TEXT,
    version TEXT,
    banner TEXT,
    notes TEXT,
    last_seen TEXT NOT NULL,
    PRIMARY KEY (asset_id, service_id),
    FOREIGN KEY (asset_id) REFERENCES assets(id)
);`

	createFindings = `CREATE TABLE findings (
    id INTEGER PRIMARY KEY,
    insight_id TEXT NOT NULL,
    target_context TEXT NOT NULL,
    source_type TEXT NOT NULL,
    source_tool TEXT NOT NULL,
    source_reference TEXT,
    timestamp_event_utc TEXT NOT NULL,
    timestamp_generated_utc TEXT NOT NULL,
    category TEXT NOT NULL,
    type TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    severity TEXT NOT NULL,
    confidence TEXT NOT NULL,
    status TEXT NOT NULL,
    recommendation TEXT,
    key_data_points TEXT NOT NULL,
    tags TEXT NOT NULL,
    notes TEXT,
    date_added TEXT NOT NULL,
    last_updated TEXT NOT NULL
);`

	createFindingAssets = `CREATE TABLE finding_assets (
    finding_id INTEGER NOT NULL,
    asset_id INTEGER NOT NULL,
    PRIMARY KEY (finding_id, asset_id)
);`
)

var schemaDDL = []string{
	createTodos,
	createPlugins,
	createAjaxActions,
	createAssets,
	createServices,
	createFindings,
	createFindingAssets,
}

// Export writes a fresh snapshot of every collection in the store to a
// SQLite database at path. An existing file at path is replaced.
func Export(s *store.Store, path string) error {
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening snapshot database: %w", err)
	}
	defer db.Close()

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating snapshot schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if err := exportTodos(tx, s.Todos()); err != nil {
		return err
	}
	if err := exportPlugins(tx, s.Plugins()); err != nil {
		return err
	}
	if err := exportAjaxActions(tx, s.AjaxActions()); err != nil {
		return err
	}
	if err := exportAssets(tx, s.Assets()); err != nil {
		return err
	}
	if err := exportFindings(tx, s.Findings()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

func exportTodos(tx *sql.Tx, todos []types.Todo) error {
	stmt, err := tx.Prepare(`INSERT INTO todos VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("preparing todos insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range todos {
		var completed any
		if t.CompletedAt != nil {
			completed = timestamp(*t.CompletedAt)
		}
		_, err := stmt.Exec(t.ID, t.Description, t.Priority, t.Severity, t.Status,
			t.Category, t.Target, t.Notes,
			timestamp(t.CreatedAt), timestamp(t.UpdatedAt), completed)
		if err != nil {
			return fmt.Errorf("inserting todo %d: %w", t.ID, err)
		}
	}
	return nil
}

func exportPlugins(tx *sql.Tx, plugins []types.Plugin) error {
	stmt, err := tx.Prepare(`INSERT INTO plugins VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("preparing plugins insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range plugins {
		_, err := stmt.Exec(p.ID, p.Slug, p.TargetHost, p.VersionObserved,
			p.OldestVersionKnown, p.Status, jsonList(p.CVEIDs),
			p.SourcePath, p.ReadmeSnippet, p.Notes,
			timestamp(p.CreatedAt), timestamp(p.UpdatedAt))
		if err != nil {
			return fmt.Errorf("inserting plugin %d: %w", p.ID, err)
		}
	}
	return nil
}

func exportAjaxActions(tx *sql.Tx, actions []types.AjaxAction) error {
	stmt, err := tx.Prepare(`INSERT INTO ajax_actions VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("preparing ajax insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range actions {
		_, err := stmt.Exec(a.ID, a.Name, a.TargetHost, a.PluginSourceSlug,
			a.PrivilegeLevel, a.TestStatus, jsonList(a.HTTPMethods),
			jsonList(a.InterestingParams), jsonList(a.CVEIDs),
			a.Source, a.Notes,
			timestamp(a.CreatedAt), timestamp(a.UpdatedAt))
		if err != nil {
			return fmt.Errorf("inserting ajax action %d: %w", a.ID, err)
		}
	}
	return nil
}

func exportAssets(tx *sql.Tx, assets []types.Asset) error {
	assetStmt, err := tx.Prepare(`INSERT INTO assets VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("preparing assets insert: %w", err)
	}
	defer assetStmt.Close()

	svcStmt, err := tx.Prepare(`INSERT INTO services VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("preparing services insert: %w", err)
	}
	defer svcStmt.Close()

	for _, a := range assets {
		_, err := assetStmt.Exec(a.ID, a.Type, a.PrimaryIdentifier,
			jsonList(a.IPAddresses), jsonList(a.Hostnames), a.OSDetails,
			jsonList(a.EnvironmentTags), a.Description, a.Status, a.Notes,
			timestamp(a.CreatedAt), timestamp(a.UpdatedAt))
		if err != nil {
			return fmt.Errorf("inserting asset %d: %w", a.ID, err)
		}
		for _, svc := range a.Services {
			_, err := svcStmt.Exec(a.ID, svc.ID, svc.Port, svc.Protocol, svc.State,
				svc.Name, svc.Product, svc.Version, svc.Banner, svc.Notes,
				timestamp(svc.LastSeen))
			if err != nil {
				return fmt.Errorf("inserting service %d/%d: %w", a.ID, svc.ID, err)
			}
		}
	}
	return nil
}

func exportFindings(tx *sql.Tx, findings []types.Finding) error {
	stmt, err := tx.Prepare(`INSERT INTO findings VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("preparing findings insert: %w", err)
	}
	defer stmt.Close()

	linkStmt, err := tx.Prepare(`INSERT OR IGNORE INTO finding_assets VALUES (?,?)`)
	if err != nil {
		return fmt.Errorf("preparing links insert: %w", err)
	}
	defer linkStmt.Close()

	for _, f := range findings {
		points, err := json.Marshal(f.KeyDataPoints)
		if err != nil {
			return fmt.Errorf("encoding data points for finding %d: %w", f.ID, err)
		}
		_, err = stmt.Exec(f.ID, f.InsightID, f.TargetContext, f.SourceType,
			f.SourceToolName, f.SourceRef,
			timestamp(f.EventTime), timestamp(f.GeneratedTime),
			f.Category, f.Type, f.Title, f.Description,
			f.Severity, f.Confidence, f.Status, f.Recommendation,
			string(points), jsonList(f.Tags), f.Notes,
			timestamp(f.CreatedAt), timestamp(f.UpdatedAt))
		if err != nil {
			return fmt.Errorf("inserting finding %d: %w", f.ID, err)
		}
		for _, assetID := range f.AssetIDs {
			if _, err := linkStmt.Exec(f.ID, assetID); err != nil {
				return fmt.Errorf("inserting link %d->%d: %w", f.ID, assetID, err)
			}
		}
	}
	return nil
}

func jsonList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
