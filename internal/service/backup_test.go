package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/service"
	"github.com/foodlog/foodlog-cli/internal/storage"
)

func sampleBackup() service.BackupDocument {
	profile := &model.Profile{
		Age:           ptr(30.0),
		Gender:        "female",
		Height:        ptr(165.0),
		Weight:        ptr(60.5),
		ActivityLevel: "light",
		Goal:          "maintain",
		LastUpdated:   "2024-03-01T10:00:00.000Z",
	}
	entries := []model.Entry{
		{ID: 1710489600000, FoodName: "Oatmeal", MealType: "breakfast", Calories: ptr("300"), Size: ptr("250"), Time: "2024-03-15T08:00", CreatedAt: "2024-03-15T08:01:00.000Z"},
		{ID: 1710489600001, FoodName: "Apple", MealType: "snack", Time: "2024-03-15T15:00", Comments: ptr("green"), CreatedAt: "2024-03-15T15:00:00.000Z", UpdatedAt: "2024-03-15T16:00:00.000Z"},
	}
	return service.NewBackupDocument(profile, entries, testNow)
}

func TestBackupRoundTrip(t *testing.T) {
	t.Parallel()
	doc := sampleBackup()
	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, 2, doc.Stats.TotalEntries)
	assert.True(t, doc.Stats.HasProfile)

	for _, format := range []service.BackupFormat{service.FormatJSON, service.FormatYAML} {
		raw, err := service.EncodeBackup(doc, format)
		require.NoError(t, err, format)
		restored, err := service.DecodeBackup(raw, format)
		require.NoError(t, err, format)
		assert.Equal(t, doc.Profile, restored.Profile, format)
		assert.Equal(t, doc.Entries, restored.Entries, format)
	}
}

func TestDecodeBackupRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"missing entries": `{"version":"1.0","profile":null}`,
		"missing version": `{"entries":[]}`,
		"null entries":    `{"version":"1.0","entries":null}`,
		"not json":        `version: [`,
	}
	for name, raw := range cases {
		_, err := service.DecodeBackup([]byte(raw), service.FormatJSON)
		assert.ErrorIs(t, err, service.ErrInvalidBackupFormat, name)
	}

	_, err := service.DecodeBackup([]byte("version: \"1.0\"\nprofile: null\n"), service.FormatYAML)
	assert.ErrorIs(t, err, service.ErrInvalidBackupFormat)
}

func TestDecodeBackupAcceptsLooseValues(t *testing.T) {
	t.Parallel()
	raw := `{"version":"1.0","exportDate":"x","profile":{"age":"30","height":180,"weight":"","gender":"male"},
"entries":[{"id":5,"foodName":"Egg","mealType":"breakfast","calories":78,"size":"","time":"2024-03-15T07:00","comments":null,"createdAt":"x"}]}`
	restored, err := service.DecodeBackup([]byte(raw), service.FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, restored.Profile)
	assert.Equal(t, 30.0, *restored.Profile.Age)
	assert.Nil(t, restored.Profile.Weight)
	require.Len(t, restored.Entries, 1)
	assert.Equal(t, "78", *restored.Entries[0].Calories)
	assert.Nil(t, restored.Entries[0].Size)
}

func TestDecodeYAMLBackupAcceptsLooseValues(t *testing.T) {
	t.Parallel()
	raw := `version: "1.0"
profile:
  age: "30"
  height: 180
  weight: ""
  dcr: "1900.5"
  gender: male
entries:
  - id: 5
    foodName: Egg
    mealType: breakfast
    calories: 78
    size: ""
    time: "2024-03-15T07:00"
    comments: ~
  - id: 6
    foodName: Toast
    mealType: breakfast
    calories: "120"
    size: 30
    time: "2024-03-15T07:05"
    comments: 42
`
	restored, err := service.DecodeBackup([]byte(raw), service.FormatYAML)
	require.NoError(t, err)
	require.NotNil(t, restored.Profile)
	assert.Equal(t, 30.0, *restored.Profile.Age)
	assert.Equal(t, 180.0, *restored.Profile.Height)
	assert.Nil(t, restored.Profile.Weight)
	assert.Equal(t, 1900.5, *restored.Profile.DCR)
	assert.Equal(t, "male", restored.Profile.Gender)

	require.Len(t, restored.Entries, 2)
	egg, toast := restored.Entries[0], restored.Entries[1]
	assert.Equal(t, int64(5), egg.ID)
	assert.Equal(t, "Egg", egg.FoodName)
	assert.Equal(t, "78", *egg.Calories)
	assert.Nil(t, egg.Size)
	assert.Nil(t, egg.Comments)
	assert.Equal(t, "120", *toast.Calories)
	assert.Equal(t, "30", *toast.Size)
	assert.Equal(t, "42", *toast.Comments)

	_, err = service.DecodeBackup([]byte("version: \"1.0\"\nprofile:\n  age: abc\nentries: []\n"), service.FormatYAML)
	assert.ErrorIs(t, err, service.ErrInvalidBackupFormat)
}

func TestDecodeBackupVersionCheckMatchesAcrossFormats(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		json string
		yaml string
	}{
		"blank":  {`{"version":"","entries":[]}`, "version: \"\"\nentries: []\n"},
		"spaces": {`{"version":"  ","entries":[]}`, "version: \"  \"\nentries: []\n"},
		"null":   {`{"version":null,"entries":[]}`, "version: null\nentries: []\n"},
		"absent": {`{"entries":[]}`, "entries: []\n"},
	}
	for name, c := range cases {
		_, err := service.DecodeBackup([]byte(c.json), service.FormatJSON)
		assert.ErrorIs(t, err, service.ErrInvalidBackupFormat, "json %s", name)
		_, err = service.DecodeBackup([]byte(c.yaml), service.FormatYAML)
		assert.ErrorIs(t, err, service.ErrInvalidBackupFormat, "yaml %s", name)
	}

	for _, format := range []service.BackupFormat{service.FormatJSON, service.FormatYAML} {
		raw := `{"version":"1.0","entries":[]}`
		_, err := service.DecodeBackup([]byte(raw), format)
		assert.NoError(t, err, format)
	}
}

func TestBackupFileChecksum(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "foodlog-backup.json")
	raw, err := service.EncodeBackup(sampleBackup(), service.FormatJSON)
	require.NoError(t, err)

	info, err := service.WriteBackupFile(path, raw, service.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, int64(len(raw)), info.SizeBytes)
	assert.FileExists(t, path+".sha256")

	got, err := service.ReadBackupFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	require.NoError(t, os.WriteFile(path, append(raw, ' '), 0o644))
	_, err = service.ReadBackupFile(path)
	assert.ErrorIs(t, err, service.ErrUnreadableFile)

	_, err = service.ReadBackupFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, service.ErrUnreadableFile)
}

func TestFormatDetection(t *testing.T) {
	t.Parallel()
	assert.Equal(t, service.FormatYAML, service.FormatFromPath("backup.YML"))
	assert.Equal(t, service.FormatJSON, service.FormatFromPath("backup.txt"))
	f, err := service.ParseBackupFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, service.FormatYAML, f)
	_, err = service.ParseBackupFormat("xml")
	assert.Error(t, err)
}

func TestStateRestoreReplacesEverything(t *testing.T) {
	t.Parallel()
	adapter := storage.NewMemoryAdapter()
	st := newTestState(t, adapter)
	_, err := st.Entries.Add(draft("Old", "lunch", "100", "2024-03-01T12:00"))
	require.NoError(t, err)

	doc := sampleBackup()
	raw, err := service.EncodeBackup(doc, service.FormatJSON)
	require.NoError(t, err)
	restored, err := service.DecodeBackup(raw, service.FormatJSON)
	require.NoError(t, err)
	require.NoError(t, st.Restore(restored))

	reopened := newTestState(t, adapter)
	assert.Equal(t, doc.Entries, reopened.Entries.All())
	assert.Equal(t, doc.Profile, reopened.Profile.Get())

	again := reopened.Snapshot()
	assert.Equal(t, doc.Entries, again.Entries)
	assert.Equal(t, doc.Profile, again.Profile)

	require.NoError(t, reopened.Restore(service.RestoredState{Entries: []model.Entry{}}))
	assert.Nil(t, reopened.Profile.Get())
	assert.Equal(t, 0, reopened.Entries.Len())
}

func TestStateRestoreRollsBackEntriesOnProfileFailure(t *testing.T) {
	t.Parallel()
	adapter := &profileFailingAdapter{MemoryAdapter: storage.NewMemoryAdapter()}
	st := newTestState(t, adapter)
	_, err := st.Entries.Add(draft("Keep", "lunch", "100", "2024-03-01T12:00"))
	require.NoError(t, err)

	adapter.fail = true
	err = st.Restore(service.RestoredState{Entries: []model.Entry{}, Profile: &model.Profile{Goal: "x"}})
	require.Error(t, err)
	require.Equal(t, 1, st.Entries.Len())
	assert.Equal(t, "Keep", st.Entries.All()[0].FoodName)
}

func TestStateRestoreReassignsDuplicateIDs(t *testing.T) {
	t.Parallel()
	adapter := storage.NewMemoryAdapter()
	st := newTestState(t, adapter)

	raw := `{"version":"1.0","entries":[
{"id":5,"foodName":"A","mealType":"lunch","time":"2024-03-15T12:00","createdAt":"x"},
{"id":5,"foodName":"B","mealType":"dinner","time":"2024-03-15T19:00","createdAt":"x"},
{"id":3,"foodName":"C","mealType":"snack","time":"2024-03-15T16:00","createdAt":"x"}]}`
	restored, err := service.DecodeBackup([]byte(raw), service.FormatJSON)
	require.NoError(t, err)
	require.NoError(t, st.Restore(restored))

	assert.Equal(t, int64(5), restored.Entries[1].ID, "restore must not edit the decoded document")

	a, err := st.Entries.Get(5)
	require.NoError(t, err)
	assert.Equal(t, "A", a.FoodName)
	b, err := st.Entries.Get(6)
	require.NoError(t, err)
	assert.Equal(t, "B", b.FoodName)
	c, err := st.Entries.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "C", c.FoodName)

	removed, err := st.Entries.Delete(5)
	require.NoError(t, err)
	assert.True(t, removed)
	require.Equal(t, 2, st.Entries.Len())
	_, err = st.Entries.Get(6)
	assert.NoError(t, err)

	reopened := newTestState(t, adapter)
	assert.Equal(t, 2, reopened.Entries.Len())
}

type profileFailingAdapter struct {
	*storage.MemoryAdapter
	fail bool
}

func (a *profileFailingAdapter) Set(key, value string) error {
	if a.fail && key == storage.KeyProfile {
		return assert.AnError
	}
	return a.MemoryAdapter.Set(key, value)
}
