package service

import (
	"math"
	"strings"

	"github.com/foodlog/foodlog-cli/internal/model"
)

var activityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryActive": 1.9,
}

// ActivityMultiplier falls back to the sedentary factor for unknown levels.
func ActivityMultiplier(level string) float64 {
	if m, ok := activityMultipliers[strings.TrimSpace(level)]; ok {
		return m
	}
	return activityMultipliers["sedentary"]
}

// BasalMetabolicRate uses the Mifflin-St Jeor equation. Any gender other than
// male or female uses the midpoint offset.
func BasalMetabolicRate(age float64, gender string, heightCm, weightKg float64) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*age
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return base + 5
	case "female":
		return base - 161
	default:
		return base - 78
	}
}

func TotalDailyEnergyExpenditure(bmr float64, activityLevel string) int {
	return int(math.Round(bmr * ActivityMultiplier(activityLevel)))
}

// TargetFor returns the daily calorie target for p. A positive user-provided
// dcr wins; otherwise the target is estimated and needs age, height and
// weight. A target that is not positive counts as no target.
func TargetFor(p *model.Profile) (float64, error) {
	if p == nil {
		return 0, ErrMissingEnergyInputs
	}
	if TargetIsUserProvided(p) {
		return *p.DCR, nil
	}
	if p.Age == nil || p.Height == nil || p.Weight == nil {
		return 0, ErrMissingEnergyInputs
	}
	bmr := BasalMetabolicRate(*p.Age, p.Gender, *p.Height, *p.Weight)
	tdee := float64(TotalDailyEnergyExpenditure(bmr, p.ActivityLevel))
	if tdee <= 0 {
		return 0, ErrMissingEnergyInputs
	}
	return tdee, nil
}

func EffectiveTarget(p *model.Profile) *float64 {
	v, err := TargetFor(p)
	if err != nil {
		return nil
	}
	return &v
}

// TargetIsUserProvided reports whether the effective target is the user's
// own dcr rather than an estimate.
func TargetIsUserProvided(p *model.Profile) bool {
	return p != nil && p.DCR != nil && *p.DCR > 0
}
