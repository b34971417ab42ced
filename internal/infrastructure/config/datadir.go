package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	// EnvDataDir data directory override
	EnvDataDir = "SB_DATA_DIR"
	// DefaultDataDirName default data directory under the home dir
	DefaultDataDirName = ".supportbrain"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// GetDataDir returns the root data directory
// SB_DATA_DIR wins, otherwise ~/.supportbrain/.
func GetDataDir() string {
	dataDirOnce.Do(func() {
		if dir := os.Getenv(EnvDataDir); dir != "" {
			dataDirPath = dir
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				dataDirPath = DefaultDataDirName
				return
			}
			dataDirPath = filepath.Join(homeDir, DefaultDataDirName)
		}
	})
	return dataDirPath
}

// ResetDataDir clears the cached data dir (tests only)
func ResetDataDir() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}
