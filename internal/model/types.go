package model

import "time"

const (
	// TimeLayout is the local date-and-time layout entries are written with.
	TimeLayout = "2006-01-02T15:04"
	DateLayout = "2006-01-02"
)

var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// Entry is one logged food item. Calories, Size and Comments are nil when the
// value was not provided; nil means unknown, not zero.
type Entry struct {
	ID        int64   `json:"id" yaml:"id"`
	FoodName  string  `json:"foodName" yaml:"foodName"`
	MealType  string  `json:"mealType" yaml:"mealType"`
	Calories  *string `json:"calories" yaml:"calories"`
	Size      *string `json:"size" yaml:"size"`
	Time      string  `json:"time" yaml:"time"`
	Comments  *string `json:"comments" yaml:"comments"`
	CreatedAt string  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string  `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// EntryDraft is the input for a new entry.
type EntryDraft struct {
	FoodName string `validate:"required"`
	MealType string `validate:"required"`
	Calories string
	Size     string
	Time     string `validate:"required"`
	Comments string
}

// EntryPatch carries the fields to merge over an existing entry. A nil field
// keeps the current value. For the optional fields a pointer to "" clears it.
type EntryPatch struct {
	FoodName *string
	MealType *string
	Calories *string
	Size     *string
	Time     *string
	Comments *string
}

// PatchFromDraft turns a draft into a patch that overwrites every field, which
// is what submitting the edit form does.
func PatchFromDraft(d EntryDraft) EntryPatch {
	return EntryPatch{
		FoodName: &d.FoodName,
		MealType: &d.MealType,
		Calories: &d.Calories,
		Size:     &d.Size,
		Time:     &d.Time,
		Comments: &d.Comments,
	}
}

var (
	Genders        = []string{"male", "female", "other"}
	ActivityLevels = []string{"sedentary", "light", "moderate", "active", "veryActive"}
)

// Profile is the single user profile used to derive a daily energy target.
type Profile struct {
	Age              *float64 `json:"age" yaml:"age"`
	Gender           string   `json:"gender" yaml:"gender" validate:"omitempty,oneof=male female other"`
	Height           *float64 `json:"height" yaml:"height" validate:"omitempty,gt=0"`
	Weight           *float64 `json:"weight" yaml:"weight" validate:"omitempty,gt=0"`
	ActivityLevel    string   `json:"activityLevel" yaml:"activityLevel" validate:"omitempty,oneof=sedentary light moderate active veryActive"`
	Goal             string   `json:"goal" yaml:"goal"`
	DCR              *float64 `json:"dcr" yaml:"dcr" validate:"omitempty,gt=0"`
	HealthConditions string   `json:"healthConditions" yaml:"healthConditions"`
	AdditionalNotes  string   `json:"additionalNotes" yaml:"additionalNotes"`
	LastUpdated      string   `json:"lastUpdated" yaml:"lastUpdated"`
}

// EntryMode tells a form submission whether it creates or edits an entry.
type EntryMode interface {
	isEntryMode()
}

type Creating struct{}

type Editing struct {
	ID int64
}

func (Creating) isEntryMode() {}
func (Editing) isEntryMode()  {}

// ParseEntryTime parses the time formats an entry may carry. Times without a
// zone are read in loc.
func ParseEntryTime(value string, loc *time.Location) (time.Time, error) {
	layouts := []string{TimeLayout, "2006-01-02T15:04:05", time.RFC3339Nano}
	var err error
	for _, l := range layouts {
		var t time.Time
		if l == time.RFC3339Nano {
			t, err = time.Parse(l, value)
		} else {
			t, err = time.ParseInLocation(l, value, loc)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
