package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName  = "foodlog"
	dbFileName  = "foodlog.db"
	logFileName = "foodlog.log"
)

// Dir is the per-user directory holding the database, config.yaml and logs.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func DefaultLogPath(dir string) string {
	return filepath.Join(dir, "logs", logFileName)
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
