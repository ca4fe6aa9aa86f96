package service_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/service"
	"github.com/foodlog/foodlog-cli/internal/storage"
)

func TestDoctorFindsAndFixesDuplicateIDs(t *testing.T) {
	t.Parallel()
	adapter := storage.NewMemoryAdapter()
	seeded := []model.Entry{
		{ID: 10, FoodName: "a", MealType: "lunch", Time: "2024-03-15T12:00"},
		{ID: 10, FoodName: "b", MealType: "lunch", Time: "2024-03-15T13:00"},
		{ID: 11, FoodName: "", MealType: "lunch", Time: "yesterday"},
	}
	raw, err := json.Marshal(seeded)
	require.NoError(t, err)
	require.NoError(t, adapter.Set(storage.KeyEntries, string(raw)))
	st := newTestState(t, adapter)

	report, err := service.RunDoctor(st, false)
	require.NoError(t, err)
	assert.False(t, report.Healthy())
	assert.Equal(t, []int64{10}, report.DuplicateIDs)
	assert.Equal(t, []int64{11}, report.UnparseableTimes)
	assert.Equal(t, []int64{11}, report.MissingFields)
	assert.Equal(t, 0, report.FixedIDs)

	report, err = service.RunDoctor(st, true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FixedIDs)

	all := st.Entries.All()
	assert.Equal(t, int64(10), all[0].ID)
	assert.Equal(t, int64(12), all[1].ID)

	report, err = service.RunDoctor(st, false)
	require.NoError(t, err)
	assert.Empty(t, report.DuplicateIDs)
}
