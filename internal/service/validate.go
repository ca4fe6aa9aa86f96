package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/foodlog/foodlog-cli/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDraft checks that the required entry fields are filled in.
func ValidateDraft(d model.EntryDraft) error {
	d.FoodName = strings.TrimSpace(d.FoodName)
	d.MealType = strings.TrimSpace(d.MealType)
	d.Time = strings.TrimSpace(d.Time)
	return describeValidation(validate.Struct(d))
}

func ValidateProfile(p model.Profile) error {
	return describeValidation(validate.Struct(p))
}

func describeValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
