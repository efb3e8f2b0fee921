package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quietriot-sec/fieldcase/internal/project"
	"github.com/quietriot-sec/fieldcase/internal/store"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	p, err := project.Create(t.TempDir(), "test")
	require.NoError(t, err)
	return store.New(p, zap.NewNop())
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestExportSnapshot(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddTodo(types.Todo{Description: "triage findings"})
	require.NoError(t, err)

	_, err = s.AddPlugin(types.Plugin{Slug: "akismet"}, []string{"blog.example.com"})
	require.NoError(t, err)

	_, err = s.AddAjaxAction(types.AjaxAction{Name: "wpforms_submit"})
	require.NoError(t, err)

	asset, err := s.AddAsset(types.Asset{PrimaryIdentifier: "blog.example.com"})
	require.NoError(t, err)
	_, _, err = s.AddService("blog.example.com", types.Service{Port: 443, Name: "https"})
	require.NoError(t, err)

	finding, err := s.AddFinding(types.Finding{
		Title:         "Exposed admin panel",
		TargetContext: "blog.example.com",
		Severity:      types.SeverityHigh,
		AssetIDs:      []int{asset.ID},
	})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, Export(s, out))

	db, err := sql.Open("sqlite", out)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, countRows(t, db, "todos"))
	assert.Equal(t, 1, countRows(t, db, "plugins"))
	assert.Equal(t, 1, countRows(t, db, "ajax_actions"))
	assert.Equal(t, 1, countRows(t, db, "assets"))
	assert.Equal(t, 1, countRows(t, db, "services"))
	assert.Equal(t, 1, countRows(t, db, "findings"))
	assert.Equal(t, 1, countRows(t, db, "finding_assets"))

	var title, severity string
	require.NoError(t, db.QueryRow(
		"SELECT title, severity FROM findings WHERE id = ?", finding.ID,
	).Scan(&title, &severity))
	assert.Equal(t, "Exposed admin panel", title)
	assert.Equal(t, types.SeverityHigh, severity)

	var port int
	var proto string
	require.NoError(t, db.QueryRow(
		"SELECT port, protocol FROM services WHERE asset_id = ?", asset.ID,
	).Scan(&port, &proto))
	assert.Equal(t, 443, port)
	assert.Equal(t, "tcp", proto)
}

func TestExportReplacesExistingSnapshot(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddTodo(types.Todo{Description: "first run"})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, Export(s, out))
	require.NoError(t, Export(s, out))

	db, err := sql.Open("sqlite", out)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, countRows(t, db, "todos"))
}

func TestExportEmptyProject(t *testing.T) {
	s := newTestStore(t)

	out := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, Export(s, out))

	db, err := sql.Open("sqlite", out)
	require.NoError(t, err)
	defer db.Close()

	assert.Zero(t, countRows(t, db, "findings"))
}
