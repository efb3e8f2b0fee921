package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietriot-sec/fieldcase/pkg/types"
)

func TestCreate(t *testing.T) {
	base := t.TempDir()

	p, err := Create(base, "acme-q3")
	require.NoError(t, err)
	assert.Equal(t, "acme-q3", p.Name)
	assert.Equal(t, filepath.Join(base, "acme-q3"), p.Root)

	for _, sub := range []string{"findings", "logs", "notes", "crawl_outputs"} {
		info, err := os.Stat(filepath.Join(p.Root, sub))
		require.NoError(t, err, sub)
		assert.True(t, info.IsDir(), sub)
	}
}

func TestCreateRejectsDuplicates(t *testing.T) {
	base := t.TempDir()

	_, err := Create(base, "acme")
	require.NoError(t, err)

	_, err = Create(base, "acme")
	assert.ErrorIs(t, err, types.ErrProjectExists)
}

func TestCreateRejectsBadNames(t *testing.T) {
	base := t.TempDir()

	for _, name := range []string{"", "has space", "dot.dot", "../escape", "semi;colon"} {
		_, err := Create(base, name)
		assert.ErrorIs(t, err, types.ErrInvalidProjectName, name)
	}
}

func TestOpen(t *testing.T) {
	base := t.TempDir()

	_, err := Open(base, "missing")
	assert.ErrorIs(t, err, types.ErrProjectNotFound)

	created, err := Create(base, "acme")
	require.NoError(t, err)

	opened, err := Open(base, "acme")
	require.NoError(t, err)
	assert.Equal(t, created.Root, opened.Root)
}

func TestList(t *testing.T) {
	base := t.TempDir()

	names, err := List(base)
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := Create(base, name)
		require.NoError(t, err)
	}
	// Stray files and oddly named directories are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(base, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(base, "bad name"), 0o755))

	names, err = List(base)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)

	// A missing base dir is an empty list, not an error.
	names, err = List(filepath.Join(base, "nowhere"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPath(t *testing.T) {
	p := &Project{Name: "acme", Root: "/data/acme"}
	assert.Equal(t, filepath.Join("/data/acme", "findings", "plugins.json"), p.Path("findings", "plugins.json"))
}
