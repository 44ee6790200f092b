package paths_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/dedup/pkg/paths"
)

func TestConfigDirOverride(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "/custom/config")

	assert.Equal(t, "/custom/config", paths.ConfigDir())
	assert.Equal(t, filepath.Join("/custom/config", paths.ConfigFileName), paths.ConfigFilePath())
}

func TestDataDirOverride(t *testing.T) {
	t.Setenv(paths.EnvDataDir, "/custom/data")

	assert.Equal(t, "/custom/data", paths.DataDir())
}

func TestTrashDirOverride(t *testing.T) {
	t.Setenv(paths.EnvTrashDir, "/custom/trash")

	assert.Equal(t, "/custom/trash", paths.TrashDir())
}

func TestTrashDirFallsBackToDataHome(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("macOS resolves to ~/.Trash")
	}
	t.Setenv(paths.EnvTrashDir, "")
	t.Setenv(paths.EnvDataDir, "/custom/data")

	want := filepath.Join("/custom/data", "Trash", paths.TrashFilesDir)
	assert.Equal(t, want, paths.TrashDir())
}

func TestDefaultsAreRooted(t *testing.T) {
	// Without overrides every path must still be absolute
	assert.True(t, filepath.IsAbs(paths.ConfigDir()))
	assert.True(t, filepath.IsAbs(paths.DataDir()))
	assert.True(t, filepath.IsAbs(paths.StateDir()))
	assert.True(t, filepath.IsAbs(paths.LogFilePath()))
	assert.True(t, filepath.IsAbs(paths.TrashDir()))
}
