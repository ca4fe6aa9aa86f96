package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/storage"
)

func TestProfileSetStampsAndPersists(t *testing.T) {
	t.Parallel()
	adapter := storage.NewMemoryAdapter()
	st := newTestState(t, adapter)
	assert.Nil(t, st.Profile.Get())

	saved, err := st.Profile.Set(model.Profile{
		Age:           ptr(30.0),
		Gender:        "male",
		Height:        ptr(180.0),
		Weight:        ptr(80.0),
		ActivityLevel: "sedentary",
		Goal:          "maintain",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.LastUpdated)

	reopened := newTestState(t, adapter)
	got := reopened.Profile.Get()
	require.NotNil(t, got)
	assert.Equal(t, saved, *got)

	require.NoError(t, reopened.Profile.Clear())
	assert.Nil(t, newTestState(t, adapter).Profile.Get())
}

func TestProfileRejectsUnknownEnumValues(t *testing.T) {
	t.Parallel()
	st := newTestState(t, nil)

	_, err := st.Profile.Set(model.Profile{Gender: "robot"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gender must be one of")

	_, err = st.Profile.Set(model.Profile{ActivityLevel: "extreme"})
	require.Error(t, err)
	assert.Nil(t, st.Profile.Get())
}

func TestProfileGetReturnsCopy(t *testing.T) {
	t.Parallel()
	st := newTestState(t, nil)
	_, err := st.Profile.Set(model.Profile{Goal: "lose weight"})
	require.NoError(t, err)

	p := st.Profile.Get()
	p.Goal = "changed"
	assert.Equal(t, "lose weight", st.Profile.Get().Goal)
}
