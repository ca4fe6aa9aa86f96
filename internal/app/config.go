package app

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "FOODLOG"

// Config is the bootstrap configuration read before the database is opened.
type Config struct {
	DBPath   string
	Language string
	LogLevel string
	LogFile  string
}

// LoadConfig reads dir/config.yaml, then FOODLOG_* environment variables,
// which may come from a .env file in the working directory. Missing files are
// not an error.
func LoadConfig(dir string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db", filepath.Join(dir, dbFileName))
	v.SetDefault("language", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", DefaultLogPath(dir))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		DBPath:   strings.TrimSpace(v.GetString("db")),
		Language: strings.TrimSpace(v.GetString("language")),
		LogLevel: strings.TrimSpace(v.GetString("log.level")),
		LogFile:  strings.TrimSpace(v.GetString("log.file")),
	}, nil
}
