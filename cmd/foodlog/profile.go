package foodlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the profile used for the daily calorie target",
}

var (
	profileAge        string
	profileGender     string
	profileHeight     string
	profileWeight     string
	profileActivity   string
	profileGoal       string
	profileDCR        string
	profileConditions string
	profileNotes      string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set profile fields; fields not given keep their value, an empty value clears one",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(s *session) error {
			p := s.state.ProfileOrEmpty()
			flags := cmd.Flags()
			updates := 0
			numbers := []struct {
				flag  string
				value string
				dst   **float64
			}{
				{"age", profileAge, &p.Age},
				{"height", profileHeight, &p.Height},
				{"weight", profileWeight, &p.Weight},
				{"dcr", profileDCR, &p.DCR},
			}
			for _, n := range numbers {
				if !flags.Changed(n.flag) {
					continue
				}
				v, err := parseOptionalFloat("--"+n.flag, n.value)
				if err != nil {
					return err
				}
				*n.dst = v
				updates++
			}
			texts := []struct {
				flag  string
				value string
				dst   *string
			}{
				{"gender", profileGender, &p.Gender},
				{"activity", profileActivity, &p.ActivityLevel},
				{"goal", profileGoal, &p.Goal},
				{"conditions", profileConditions, &p.HealthConditions},
				{"notes", profileNotes, &p.AdditionalNotes},
			}
			for _, tx := range texts {
				if flags.Changed(tx.flag) {
					*tx.dst = strings.TrimSpace(tx.value)
					updates++
				}
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			if _, err := s.state.Profile.Set(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved; daily target: %s\n", formatTarget(s.state.Target()))
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(s *session) error {
			p := s.state.Profile.Get()
			out := cmd.OutOrStdout()
			if p == nil {
				fmt.Fprintln(out, "No profile set")
				return nil
			}
			fmt.Fprintf(out, "Age: %s\n", numberOrDash(p.Age))
			fmt.Fprintf(out, "Gender: %s\n", orDash(p.Gender))
			fmt.Fprintf(out, "Height (cm): %s\n", numberOrDash(p.Height))
			fmt.Fprintf(out, "Weight (kg): %s\n", numberOrDash(p.Weight))
			fmt.Fprintf(out, "Activity level: %s\n", orDash(p.ActivityLevel))
			fmt.Fprintf(out, "Goal: %s\n", orDash(p.Goal))
			fmt.Fprintf(out, "Daily calorie requirement: %s\n", numberOrDash(p.DCR))
			fmt.Fprintf(out, "Health conditions: %s\n", orDash(p.HealthConditions))
			fmt.Fprintf(out, "Additional notes: %s\n", orDash(p.AdditionalNotes))
			fmt.Fprintf(out, "Last updated: %s\n", orDash(p.LastUpdated))
			return nil
		})
	},
}

var profileTargetCmd = &cobra.Command{
	Use:   "target",
	Short: "Show how the daily calorie target is derived",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(s *session) error {
			p := s.state.Profile.Get()
			out := cmd.OutOrStdout()
			if p != nil && p.Age != nil && p.Height != nil && p.Weight != nil {
				bmr := service.BasalMetabolicRate(*p.Age, p.Gender, *p.Height, *p.Weight)
				fmt.Fprintf(out, "BMR: %s kcal\n", formatFloat(bmr))
				fmt.Fprintf(out, "TDEE: %d kcal (activity x%s)\n", service.TotalDailyEnergyExpenditure(bmr, p.ActivityLevel), formatFloat(service.ActivityMultiplier(p.ActivityLevel)))
			}
			target, err := service.TargetFor(p)
			if errors.Is(err, service.ErrMissingEnergyInputs) {
				fmt.Fprintln(out, "Target: not available; set --dcr or age, height and weight")
				return nil
			}
			if err != nil {
				return err
			}
			source := "estimated"
			if service.TargetIsUserProvided(p) {
				source = "user-provided"
			}
			fmt.Fprintf(out, "Target: %s kcal (%s)\n", formatFloat(target), source)
			return nil
		})
	},
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(s *session) error {
			if err := s.state.Profile.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile cleared")
			return nil
		})
	},
}

func numberOrDash(v *float64) string {
	if v == nil {
		return placeholder
	}
	return formatFloat(*v)
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd, profileTargetCmd, profileClearCmd)

	f := profileSetCmd.Flags()
	f.StringVar(&profileAge, "age", "", "Age in years")
	f.StringVar(&profileGender, "gender", "", "Gender: "+strings.Join(model.Genders, ", "))
	f.StringVar(&profileHeight, "height", "", "Height in cm")
	f.StringVar(&profileWeight, "weight", "", "Weight in kg")
	f.StringVar(&profileActivity, "activity", "", "Activity level: "+strings.Join(model.ActivityLevels, ", "))
	f.StringVar(&profileGoal, "goal", "", "Goal, e.g. lose weight")
	f.StringVar(&profileDCR, "dcr", "", "Daily calorie requirement override in kcal")
	f.StringVar(&profileConditions, "conditions", "", "Health conditions")
	f.StringVar(&profileNotes, "notes", "", "Additional notes")
}
