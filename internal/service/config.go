package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	ConfigReportLanguage = "report_language"
	ConfigHistoryDays    = "history_days"
)

var configValidators = map[string]func(string) error{
	ConfigReportLanguage: func(v string) error {
		_, err := ParseLanguage(v)
		return err
	},
	ConfigHistoryDays: func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("history_days must be a positive whole number")
		}
		return nil
	},
}

// ConfigKeys lists the preferences that can be set.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configValidators))
	for k := range configValidators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	check, ok := configValidators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	if err := check(value); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// HistoryDays reads the history window preference, falling back to 7.
func HistoryDays(db *sql.DB) (int, error) {
	v, ok, err := GetConfig(db, ConfigHistoryDays)
	if err != nil || !ok {
		return 7, err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 7, nil
	}
	return n, nil
}

// ReportLanguage reads the stored report language, falling back to English.
func ReportLanguage(db *sql.DB) (Language, error) {
	v, ok, err := GetConfig(db, ConfigReportLanguage)
	if err != nil || !ok {
		return LanguageEnglish, err
	}
	lang, err := ParseLanguage(v)
	if err != nil {
		return LanguageEnglish, nil
	}
	return lang, nil
}
