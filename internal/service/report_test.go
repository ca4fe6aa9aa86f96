package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/service"
)

func reportEntries() []model.Entry {
	return []model.Entry{
		{ID: 3, FoodName: "Pasta", MealType: "dinner", Calories: ptr("700"), Time: "2024-03-15T19:00"},
		{ID: 1, FoodName: "Oatmeal", MealType: "breakfast", Calories: ptr("300"), Size: ptr("250"), Time: "2024-03-14T08:00", Comments: ptr("with honey")},
		{ID: 2, FoodName: "Salad", MealType: "lunch", Calories: ptr("500"), Time: "2024-03-15T12:00"},
	}
}

func reportOptions(lang service.Language) service.ReportOptions {
	return service.ReportOptions{Language: lang, Generated: testNow, Location: time.UTC}
}

func TestRenderReportEmptyFails(t *testing.T) {
	t.Parallel()
	out, err := service.RenderReport(nil, "Today", nil, reportOptions(service.LanguageEnglish))
	assert.ErrorIs(t, err, service.ErrEmptyExportSet)
	assert.Empty(t, out)
}

func TestRenderReportEnglish(t *testing.T) {
	t.Parallel()
	profile := &model.Profile{Age: ptr(30.0), Gender: "male", Height: ptr(180.0), Weight: ptr(80.0), DCR: ptr(1200.0), Goal: "maintain"}

	out, err := service.RenderReport(reportEntries(), "This Week", profile, reportOptions(service.LanguageEnglish))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "FOOD TRACKING DATA - This Week\n"))
	assert.Contains(t, out, "Generated: 2024-03-15 12:00:00\n")
	assert.Contains(t, out, "Total Entries: 3\n")
	assert.Contains(t, out, "USER PROFILE:\n")
	assert.Contains(t, out, "- Age: 30 years\n")
	assert.Contains(t, out, "- Daily calorie target: 1200 kcal (user-provided)\n")
	assert.NotContains(t, out, "Health conditions")
	assert.Contains(t, out, "ANALYSIS INSTRUCTIONS:")
	assert.Contains(t, out, "DATE: Thursday, March 14, 2024\n")
	assert.Contains(t, out, "1. Oatmeal\n   Meal Type: breakfast\n   Time: 08:00 AM\n   Calories: 300 kcal\n   Size: 250 grams\n   Comments: with honey\n")
	assert.Contains(t, out, "   Daily Total: 1 entries, 300 calories (-900 vs target), 250 grams\n")
	assert.Contains(t, out, "   Daily Total: 2 entries, 1200 calories (+0 vs target)\n")
	assert.Contains(t, out, "OVERALL SUMMARY:\n- Total entries: 3\n- Total calories: 1500 kcal\n")
	assert.Contains(t, out, "- Average calories per tracked day: 750 kcal\n")
	assert.Contains(t, out, "- Average difference vs target: -450 kcal\n")
	assert.Contains(t, out, "- Period: This Week\n")
	assert.Contains(t, out, "- Days tracked: 2\n")

	assert.Less(t, strings.Index(out, "USER PROFILE"), strings.Index(out, "ANALYSIS INSTRUCTIONS"))
	assert.Less(t, strings.Index(out, "March 14"), strings.Index(out, "March 15"))
	assert.Less(t, strings.Index(out, "Salad"), strings.Index(out, "Pasta"))
	assert.Contains(t, out, "1. Salad\n   Meal Type: lunch\n   Time: 12:00 PM\n   Calories: 500 kcal\n\n")
}

func TestRenderReportEstimatedTargetAndNoProfile(t *testing.T) {
	t.Parallel()
	profile := &model.Profile{Age: ptr(30.0), Gender: "male", Height: ptr(180.0), Weight: ptr(80.0), ActivityLevel: "sedentary", HealthConditions: "none known"}
	out, err := service.RenderReport(reportEntries(), "Today", profile, reportOptions(service.LanguageEnglish))
	require.NoError(t, err)
	assert.Contains(t, out, "- Daily calorie target: 2136 kcal (estimated — please verify)\n")
	assert.Contains(t, out, "- Health conditions: none known\n")

	out, err = service.RenderReport(reportEntries(), "Today", nil, reportOptions(service.LanguageEnglish))
	require.NoError(t, err)
	assert.NotContains(t, out, "USER PROFILE")
	assert.NotContains(t, out, "vs target")
	assert.Contains(t, out, "   Daily Total: 2 entries, 1200 calories\n")
}

func TestRenderReportZeroDCRHasNoTarget(t *testing.T) {
	t.Parallel()
	raw := []byte(`{"version":"1.0","profile":{"dcr":0,"goal":"maintain"},"entries":[]}`)
	restored, err := service.DecodeBackup(raw, service.FormatJSON)
	require.NoError(t, err)
	require.NotNil(t, restored.Profile)
	require.NotNil(t, restored.Profile.DCR)

	out, err := service.RenderReport(reportEntries(), "Today", restored.Profile, reportOptions(service.LanguageEnglish))
	require.NoError(t, err)
	assert.Contains(t, out, "- Daily calorie target: not available, profile is incomplete\n")
	assert.NotContains(t, out, "user-provided")
	assert.NotContains(t, out, "vs target")
	assert.NotContains(t, out, "Average difference vs target")
}

func TestRenderReportSpanish(t *testing.T) {
	t.Parallel()
	out, err := service.RenderReport(reportEntries(), "Hoy", nil, reportOptions(service.LanguageSpanish))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "DATOS DE SEGUIMIENTO DE ALIMENTOS - Hoy\n"))
	assert.Contains(t, out, "INSTRUCCIONES DE ANÁLISIS:")
	assert.Contains(t, out, "FECHA: jueves, 14 de marzo de 2024\n")
	assert.Contains(t, out, "   Hora: 08:00\n")
	assert.Contains(t, out, "RESUMEN GENERAL:\n")
	assert.NotContains(t, out, "ANALYSIS INSTRUCTIONS")
}

func TestSelectReportEntries(t *testing.T) {
	t.Parallel()
	st := newTestState(t, nil)
	for _, d := range []model.EntryDraft{
		draft("today", "lunch", "100", "2024-03-15T09:00"),
		draft("this week", "lunch", "100", "2024-03-10T09:00"),
		draft("this month", "lunch", "100", "2024-02-20T09:00"),
		draft("older", "lunch", "100", "2023-12-01T09:00"),
	} {
		_, err := st.Entries.Add(d)
		require.NoError(t, err)
	}

	got, label, err := service.SelectReportEntries(st, service.ReportRequest{Period: service.PeriodToday}, service.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Today", label)
	assert.Len(t, got, 1)

	got, _, err = service.SelectReportEntries(st, service.ReportRequest{Period: service.PeriodWeek}, service.LanguageEnglish)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, label, err = service.SelectReportEntries(st, service.ReportRequest{Period: service.PeriodMonth}, service.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "This Month (30 days)", label)
	assert.Len(t, got, 3)

	got, label, err = service.SelectReportEntries(st, service.ReportRequest{Period: service.PeriodCustom, From: "2023-12-01", To: "2024-02-20"}, service.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-01 to 2024-02-20", label)
	assert.Len(t, got, 2)

	_, _, err = service.SelectReportEntries(st, service.ReportRequest{Period: service.PeriodCustom, From: "2024-01-01"}, service.LanguageEnglish)
	assert.Error(t, err)
}
