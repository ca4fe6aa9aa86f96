package foodlog

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/app"
	"github.com/foodlog/foodlog-cli/internal/db"
	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/service"
	"github.com/foodlog/foodlog-cli/internal/storage"
)

// session is what a command body gets: the open database, the loaded state
// and the logger for this run.
type session struct {
	db     *sql.DB
	state  *service.State
	cfg    app.Config
	logger hclog.Logger
}

func loadConfig() (app.Config, error) {
	dir, err := app.Dir()
	if err != nil {
		return app.Config{}, err
	}
	cfg, err := app.LoadConfig(dir)
	if err != nil {
		return app.Config{}, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func withDB(cmd *cobra.Command, run func(*session) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DBPath == "" {
		if cfg.DBPath, err = app.DefaultDBPath(); err != nil {
			return err
		}
	}
	logger, closer := app.NewLogger(cfg, verbose, cmd.ErrOrStderr())
	defer closer.Close()

	if err := app.EnsureDBDir(cfg.DBPath); err != nil {
		return err
	}
	sqldb, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	logger.Debug("database ready", "path", cfg.DBPath, "command", cmd.CommandPath())
	return run(&session{db: sqldb, cfg: cfg, logger: logger})
}

// withState is withDB plus the entry and profile state loaded from it.
func withState(cmd *cobra.Command, run func(*session) error) error {
	return withDB(cmd, func(s *session) error {
		st, err := service.OpenState(storage.NewSQLiteAdapter(s.db), service.Options{Logger: s.logger})
		if err != nil {
			return err
		}
		s.state = st
		return run(s)
	})
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseEntryTime accepts the stored layout or "YYYY-MM-DD HH:MM" and returns
// it in the stored layout. Empty means now.
func parseEntryTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().Format(model.TimeLayout), nil
	}
	for _, layout := range []string{model.TimeLayout, "2006-01-02 15:04", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.Format(model.TimeLayout), nil
		}
	}
	return "", fmt.Errorf("invalid --time %q (expected YYYY-MM-DDTHH:MM)", value)
}

func parseMonth(value string) (int, time.Month, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --month %q (expected YYYY-MM)", value)
	}
	return t.Year(), t.Month(), nil
}

// parseOptionalFloat maps "" to nil so a flag can clear a number.
func parseOptionalFloat(name, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, value)
	}
	return &v, nil
}

// placeholder stands in for an absent value on screen.
const placeholder = "—"

func textOrDash(v *string) string {
	if v == nil {
		return placeholder
	}
	return *v
}

func formatTarget(target *float64) string {
	if target == nil {
		return "not set"
	}
	return strconv.FormatFloat(*target, 'f', 0, 64) + " kcal"
}
