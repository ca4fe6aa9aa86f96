package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/foodlog/foodlog-cli/internal/model"
)

const BackupVersion = "1.0"

type BackupFormat string

const (
	FormatJSON BackupFormat = "json"
	FormatYAML BackupFormat = "yaml"
)

func ParseBackupFormat(value string) (BackupFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported backup format %q (use json or yaml)", value)
	}
}

// FormatFromPath guesses the format from the file extension, defaulting to json.
func FormatFromPath(path string) BackupFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

type BackupStats struct {
	TotalEntries int  `json:"totalEntries" yaml:"totalEntries"`
	HasProfile   bool `json:"hasProfile" yaml:"hasProfile"`
}

type BackupDocument struct {
	Version    string         `json:"version" yaml:"version"`
	ExportDate string         `json:"exportDate" yaml:"exportDate"`
	Profile    *model.Profile `json:"profile" yaml:"profile"`
	Entries    []model.Entry  `json:"entries" yaml:"entries"`
	Stats      BackupStats    `json:"stats" yaml:"stats"`
}

// RestoredState is what a decoded backup replaces the current state with.
type RestoredState struct {
	Profile *model.Profile
	Entries []model.Entry
}

func NewBackupDocument(profile *model.Profile, entries []model.Entry, now time.Time) BackupDocument {
	if entries == nil {
		entries = []model.Entry{}
	}
	return BackupDocument{
		Version:    BackupVersion,
		ExportDate: isoNow(now),
		Profile:    profile,
		Entries:    entries,
		Stats: BackupStats{
			TotalEntries: len(entries),
			HasProfile:   profile != nil,
		},
	}
}

func EncodeBackup(doc BackupDocument, format BackupFormat) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode backup: %w", err)
		}
		return append(b, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode backup: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode backup: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported backup format %q", format)
	}
}

// DecodeBackup parses a backup document. A document that does not parse or
// lacks version or entries is rejected with ErrInvalidBackupFormat.
func DecodeBackup(raw []byte, format BackupFormat) (RestoredState, error) {
	var doc BackupDocument
	switch format {
	case FormatJSON, "":
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return RestoredState{}, fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
		}
		var version any
		if v := fields["version"]; len(v) > 0 {
			if err := json.Unmarshal(v, &version); err != nil {
				return RestoredState{}, fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
			}
		}
		if !versionPresent(version) {
			return RestoredState{}, fmt.Errorf("%w: missing version", ErrInvalidBackupFormat)
		}
		if entries := bytes.TrimSpace(fields["entries"]); len(entries) == 0 || entries[0] != '[' {
			return RestoredState{}, fmt.Errorf("%w: missing entries", ErrInvalidBackupFormat)
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return RestoredState{}, fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
		}
	case FormatYAML:
		var fields map[string]any
		if err := yaml.Unmarshal(raw, &fields); err != nil {
			return RestoredState{}, fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
		}
		if !versionPresent(fields["version"]) {
			return RestoredState{}, fmt.Errorf("%w: missing version", ErrInvalidBackupFormat)
		}
		if _, ok := fields["entries"].([]any); !ok {
			return RestoredState{}, fmt.Errorf("%w: missing entries", ErrInvalidBackupFormat)
		}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return RestoredState{}, fmt.Errorf("%w: %v", ErrInvalidBackupFormat, err)
		}
	default:
		return RestoredState{}, fmt.Errorf("unsupported backup format %q", format)
	}
	if doc.Entries == nil {
		doc.Entries = []model.Entry{}
	}
	return RestoredState{Profile: doc.Profile, Entries: doc.Entries}, nil
}

// versionPresent treats an absent, null or blank version as missing.
func versionPresent(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	default:
		return true
	}
}

type BackupInfo struct {
	Path      string       `json:"path"`
	Format    BackupFormat `json:"format"`
	Checksum  string       `json:"checksum"`
	CreatedAt time.Time    `json:"created_at"`
	SizeBytes int64        `json:"size_bytes"`
}

// WriteBackupFile writes data to path with a sha256 sidecar next to it.
func WriteBackupFile(path string, data []byte, format BackupFormat) (BackupInfo, error) {
	if strings.TrimSpace(path) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum := checksumOf(data)
	if err := os.WriteFile(path+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: path, Format: format, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// ReadBackupFile reads a backup and, when a sha256 sidecar exists, checks it.
func ReadBackupFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	expected, err := os.ReadFile(path + ".sha256")
	switch {
	case err == nil:
		if strings.TrimSpace(string(expected)) != checksumOf(data) {
			return nil, fmt.Errorf("%w: checksum mismatch for %s", ErrUnreadableFile, path)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	return data, nil
}

func checksumOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
