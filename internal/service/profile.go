package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/storage"
)

// ProfileStore holds the single optional profile persisted under
// storage.KeyProfile. A cleared profile is stored as JSON null.
type ProfileStore struct {
	adapter storage.Adapter
	logger  hclog.Logger
	now     func() time.Time

	profile *model.Profile
}

func loadProfileStore(adapter storage.Adapter, opts Options) (*ProfileStore, error) {
	s := &ProfileStore{
		adapter: adapter,
		logger:  opts.Logger.Named("profile"),
		now:     opts.Now,
	}
	raw, ok, err := adapter.Get(storage.KeyProfile)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if ok && raw != "" && raw != "null" {
		var p model.Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode stored profile: %w", err)
		}
		s.profile = &p
	}
	return s, nil
}

// Get returns a copy of the profile, or nil when none is set.
func (s *ProfileStore) Get() *model.Profile {
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Set replaces the whole profile and stamps lastUpdated.
func (s *ProfileStore) Set(p model.Profile) (model.Profile, error) {
	if err := ValidateProfile(p); err != nil {
		return model.Profile{}, fmt.Errorf("set profile: %w", err)
	}
	p.LastUpdated = isoNow(s.now())
	if err := s.replace(&p); err != nil {
		return model.Profile{}, fmt.Errorf("set profile: %w", err)
	}
	s.logger.Debug("profile saved")
	return p, nil
}

func (s *ProfileStore) Clear() error {
	if err := s.replace(nil); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	s.logger.Debug("profile cleared")
	return nil
}

func (s *ProfileStore) replace(p *model.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.adapter.Set(storage.KeyProfile, string(b)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if p == nil {
		s.profile = nil
		return nil
	}
	cp := *p
	s.profile = &cp
	return nil
}
