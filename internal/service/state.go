package service

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/storage"
)

type Options struct {
	Logger   hclog.Logger
	Now      func() time.Time
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// State is the application state: the entry list and the optional profile,
// both loaded from the same adapter.
type State struct {
	Entries *EntryStore
	Profile *ProfileStore

	logger hclog.Logger
	now    func() time.Time
	loc    *time.Location
}

func OpenState(adapter storage.Adapter, opts Options) (*State, error) {
	opts = opts.withDefaults()
	entries, err := loadEntryStore(adapter, opts)
	if err != nil {
		return nil, err
	}
	profile, err := loadProfileStore(adapter, opts)
	if err != nil {
		return nil, err
	}
	return &State{
		Entries: entries,
		Profile: profile,
		logger:  opts.Logger,
		now:     opts.Now,
		loc:     opts.Location,
	}, nil
}

func (s *State) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *State) Location() *time.Location {
	return s.loc
}

// Target is the effective daily calorie target of the current profile.
func (s *State) Target() *float64 {
	return EffectiveTarget(s.Profile.Get())
}

func (s *State) Snapshot() BackupDocument {
	return NewBackupDocument(s.Profile.Get(), s.Entries.All(), s.now())
}

// Restore replaces the profile and the entries with the restored values. If
// saving the profile fails, the previous entries are written back.
func (s *State) Restore(r RestoredState) error {
	previous := s.Entries.All()
	entries := append([]model.Entry(nil), r.Entries...)
	reassignDuplicateIDs(entries, func(old, next int64) {
		s.logger.Warn("restore reassigned duplicate id", "old", old, "new", next)
	})
	if err := s.Entries.Replace(entries); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	var err error
	if r.Profile == nil {
		err = s.Profile.Clear()
	} else {
		p := *r.Profile
		err = s.Profile.replace(&p)
	}
	if err != nil {
		if rbErr := s.Entries.Replace(previous); rbErr != nil {
			s.logger.Error("restore rollback failed", "error", rbErr)
		}
		return fmt.Errorf("restore: %w", err)
	}
	s.logger.Info("state restored", "entries", len(entries), "profile", r.Profile != nil)
	return nil
}

// ProfileOrEmpty is used by forms that start from the saved profile.
func (s *State) ProfileOrEmpty() model.Profile {
	if p := s.Profile.Get(); p != nil {
		return *p
	}
	return model.Profile{}
}
