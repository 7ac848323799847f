package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join(t.TempDir(), "preferences.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
	assert.Equal(t, ViewTable, got.ViewMode)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.yaml")

	require.NoError(t, Save(Preferences{ViewMode: ViewJSON}, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ViewJSON, got.ViewMode)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "preferences.yaml")

	require.NoError(t, Save(Preferences{ViewMode: ViewTable}, path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestLoadEmptyFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadUnknownViewModeFallsBack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view_mode: carousel\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ViewTable, got.ViewMode)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view_mode: [unclosed\n"), 0644))

	got, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Default(), got)
}

func TestSaveOverwritesPrevious(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.yaml")

	require.NoError(t, Save(Preferences{ViewMode: ViewJSON}, path))
	require.NoError(t, Save(Preferences{ViewMode: ViewTable}, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ViewTable, got.ViewMode)
}
