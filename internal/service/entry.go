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

// EntryStore owns the ordered list of entries persisted under
// storage.KeyEntries. Every mutation writes the whole list back; if the write
// fails the in-memory list is left as it was.
type EntryStore struct {
	adapter storage.Adapter
	logger  hclog.Logger
	now     func() time.Time
	loc     *time.Location

	entries []model.Entry
	lastID  int64
}

func loadEntryStore(adapter storage.Adapter, opts Options) (*EntryStore, error) {
	s := &EntryStore{
		adapter: adapter,
		logger:  opts.Logger.Named("entries"),
		now:     opts.Now,
		loc:     opts.Location,
	}
	raw, ok, err := adapter.Get(storage.KeyEntries)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	if ok && strings.TrimSpace(raw) != "" && strings.TrimSpace(raw) != "null" {
		if err := json.Unmarshal([]byte(raw), &s.entries); err != nil {
			return nil, fmt.Errorf("decode stored entries: %w", err)
		}
	}
	s.logger.Debug("entries loaded", "count", len(s.entries))
	return s, nil
}

func (s *EntryStore) persist(next []model.Entry) error {
	if next == nil {
		next = []model.Entry{}
	}
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := s.adapter.Set(storage.KeyEntries, string(b)); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	s.entries = next
	return nil
}

// nextID derives an id from the creation clock and moves it past every id
// already in use or handed out.
func (s *EntryStore) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	high := s.lastID
	for _, e := range s.entries {
		if e.ID > high {
			high = e.ID
		}
	}
	if id <= high {
		id = high + 1
	}
	return id
}

func (s *EntryStore) Add(d model.EntryDraft) (model.Entry, error) {
	if err := ValidateDraft(d); err != nil {
		return model.Entry{}, fmt.Errorf("add entry: %w", err)
	}
	now := s.now()
	e := model.Entry{
		ID:        s.nextID(now),
		FoodName:  strings.TrimSpace(d.FoodName),
		MealType:  strings.TrimSpace(d.MealType),
		Calories:  model.OptionalText(d.Calories),
		Size:      model.OptionalText(d.Size),
		Time:      strings.TrimSpace(d.Time),
		Comments:  model.OptionalText(d.Comments),
		CreatedAt: isoNow(now),
	}
	next := append(s.All(), e)
	if err := s.persist(next); err != nil {
		return model.Entry{}, fmt.Errorf("add entry: %w", err)
	}
	s.lastID = e.ID
	s.logger.Debug("entry added", "id", e.ID, "time", e.Time)
	return e, nil
}

func (s *EntryStore) indexOf(id int64) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Update merges patch over the entry with the given id. Id, createdAt and the
// entry's position are kept.
func (s *EntryStore) Update(id int64, patch model.EntryPatch) (model.Entry, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	e := s.entries[idx]
	if patch.FoodName != nil {
		e.FoodName = strings.TrimSpace(*patch.FoodName)
	}
	if patch.MealType != nil {
		e.MealType = strings.TrimSpace(*patch.MealType)
	}
	if patch.Time != nil {
		e.Time = strings.TrimSpace(*patch.Time)
	}
	if patch.Calories != nil {
		e.Calories = model.OptionalText(*patch.Calories)
	}
	if patch.Size != nil {
		e.Size = model.OptionalText(*patch.Size)
	}
	if patch.Comments != nil {
		e.Comments = model.OptionalText(*patch.Comments)
	}
	if err := ValidateDraft(draftOf(e)); err != nil {
		return model.Entry{}, fmt.Errorf("update entry %d: %w", id, err)
	}
	e.UpdatedAt = isoNow(s.now())

	next := s.All()
	next[idx] = e
	if err := s.persist(next); err != nil {
		return model.Entry{}, fmt.Errorf("update entry %d: %w", id, err)
	}
	s.logger.Debug("entry updated", "id", id)
	return e, nil
}

// Delete removes the entry if present and reports whether it was. The list is
// written back either way.
func (s *EntryStore) Delete(id int64) (bool, error) {
	next := make([]model.Entry, 0, len(s.entries))
	removed := false
	for _, e := range s.entries {
		if e.ID == id {
			removed = true
			continue
		}
		next = append(next, e)
	}
	if err := s.persist(next); err != nil {
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}
	s.logger.Debug("entry delete", "id", id, "removed", removed)
	return removed, nil
}

func (s *EntryStore) Get(id int64) (model.Entry, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return s.entries[idx], nil
}

// All returns a copy of every entry in storage order.
func (s *EntryStore) All() []model.Entry {
	out := make([]model.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *EntryStore) Len() int {
	return len(s.entries)
}

// ByDay returns the entries whose time falls on dateKey (YYYY-MM-DD).
func (s *EntryStore) ByDay(dateKey string) []model.Entry {
	out := make([]model.Entry, 0)
	for _, e := range s.entries {
		if DateKey(e) == dateKey {
			out = append(out, e)
		}
	}
	return out
}

// ByDateRange compares date keys as strings, both ends inclusive.
func (s *EntryStore) ByDateRange(from, to string) []model.Entry {
	out := make([]model.Entry, 0)
	for _, e := range s.entries {
		day := DateKey(e)
		if day >= from && day <= to {
			out = append(out, e)
		}
	}
	return out
}

// ByTimeRange compares full timestamps, both ends inclusive. A zero end
// leaves the range open. Entries whose time does not parse are skipped.
func (s *EntryStore) ByTimeRange(start, end time.Time) []model.Entry {
	out := make([]model.Entry, 0)
	for _, e := range s.entries {
		t, err := model.ParseEntryTime(e.Time, s.loc)
		if err != nil {
			continue
		}
		if t.Before(start) {
			continue
		}
		if !end.IsZero() && t.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Replace swaps the whole list, as a restore does.
func (s *EntryStore) Replace(entries []model.Entry) error {
	next := make([]model.Entry, len(entries))
	copy(next, entries)
	if err := s.persist(next); err != nil {
		return fmt.Errorf("replace entries: %w", err)
	}
	s.logger.Info("entries replaced", "count", len(next))
	return nil
}

// Submit routes a form submission: Creating adds, Editing overwrites every
// field of the entry being edited.
func (s *EntryStore) Submit(mode model.EntryMode, d model.EntryDraft) (model.Entry, error) {
	switch m := mode.(type) {
	case model.Creating:
		return s.Add(d)
	case model.Editing:
		if err := ValidateDraft(d); err != nil {
			return model.Entry{}, fmt.Errorf("update entry %d: %w", m.ID, err)
		}
		return s.Update(m.ID, model.PatchFromDraft(d))
	default:
		return model.Entry{}, fmt.Errorf("unknown entry mode %T", mode)
	}
}

func draftOf(e model.Entry) model.EntryDraft {
	return model.EntryDraft{
		FoodName: e.FoodName,
		MealType: e.MealType,
		Time:     e.Time,
	}
}
