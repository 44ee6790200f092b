// Package paths provides centralized path handling for dedup.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dedup
	EnvConfigDir = "DEDUP_CONFIG_DIR"

	// EnvDataDir overrides the XDG data home the trash fallback
	// lives under
	EnvDataDir = "DEDUP_DATA_DIR"

	// EnvTrashDir overrides the trash directory files are moved to
	EnvTrashDir = "DEDUP_TRASH_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for dedup-specific files
	AppDirName = "dedup"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "dedup.toml"

	// LogFileName is the name of the log file
	LogFileName = "dedup.log"

	// TrashFilesDir is the files subdirectory of an XDG trash
	TrashFilesDir = "files"
)

// ConfigDir returns the configuration directory for dedup,
// honoring the DEDUP_CONFIG_DIR override.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the path of the user configuration file.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// DataDir returns the XDG data home, honoring the DEDUP_DATA_DIR
// override. The trash fallback directory lives under it.
func DataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	return xdg.DataHome
}

// StateDir returns the state directory used for logs.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path to the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// TrashDir returns the directory deleted files are moved to.
// Resolution order: DEDUP_TRASH_DIR, the user trash on macOS
// (~/.Trash), and the XDG trash files directory everywhere else.
func TrashDir() string {
	if dir := os.Getenv(EnvTrashDir); dir != "" {
		return dir
	}

	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".Trash")
		}
	}

	return filepath.Join(DataDir(), "Trash", TrashFilesDir)
}
