package foodlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foodlog/foodlog-cli/internal/model"
	"github.com/foodlog/foodlog-cli/internal/service"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage food entries",
}

var (
	entryName     string
	entryMeal     string
	entryCalories string
	entrySize     string
	entryTime     string
	entryComments string
)

func entryDraftFromFlags() (model.EntryDraft, error) {
	when, err := parseEntryTime(entryTime)
	if err != nil {
		return model.EntryDraft{}, err
	}
	return model.EntryDraft{
		FoodName: entryName,
		MealType: entryMeal,
		Calories: entryCalories,
		Size:     entrySize,
		Time:     when,
		Comments: entryComments,
	}, nil
}

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := entryDraftFromFlags()
		if err != nil {
			return err
		}
		return withState(cmd, func(s *session) error {
			e, err := s.state.Entries.Submit(model.Creating{}, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d\n", e.ID)
			return nil
		})
	},
}

var entryEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an entry; flags that are not given keep their value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withState(cmd, func(s *session) error {
			current, err := s.state.Entries.Get(id)
			if err != nil {
				return err
			}
			d := model.EntryDraft{
				FoodName: current.FoodName,
				MealType: current.MealType,
				Calories: textOrEmpty(current.Calories),
				Size:     textOrEmpty(current.Size),
				Time:     current.Time,
				Comments: textOrEmpty(current.Comments),
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				d.FoodName = entryName
			}
			if flags.Changed("meal") {
				d.MealType = entryMeal
			}
			if flags.Changed("calories") {
				d.Calories = entryCalories
			}
			if flags.Changed("size") {
				d.Size = entrySize
			}
			if flags.Changed("comments") {
				d.Comments = entryComments
			}
			if flags.Changed("time") {
				if d.Time, err = parseEntryTime(entryTime); err != nil {
					return err
				}
			}
			e, err := s.state.Entries.Submit(model.Editing{ID: id}, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %d\n", e.ID)
			return nil
		})
	},
}

var entryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withState(cmd, func(s *session) error {
			e, err := s.state.Entries.Get(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %d\n", e.ID)
			fmt.Fprintf(out, "Food: %s\n", e.FoodName)
			fmt.Fprintf(out, "Meal: %s\n", e.MealType)
			fmt.Fprintf(out, "Time: %s\n", e.Time)
			fmt.Fprintf(out, "Calories: %s\n", textOrDash(e.Calories))
			fmt.Fprintf(out, "Size (g): %s\n", textOrDash(e.Size))
			fmt.Fprintf(out, "Comments: %s\n", textOrDash(e.Comments))
			fmt.Fprintf(out, "Created: %s\n", e.CreatedAt)
			if e.UpdatedAt != "" {
				fmt.Fprintf(out, "Updated: %s\n", e.UpdatedAt)
			}
			return nil
		})
	},
}

var (
	listDate     string
	listFromDate string
	listToDate   string
	listLimit    int
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withState(cmd, func(s *session) error {
			var entries []model.Entry
			switch {
			case listDate != "":
				entries = s.state.Entries.ByDay(listDate)
			case listFromDate != "" || listToDate != "":
				if listFromDate == "" || listToDate == "" {
					return fmt.Errorf("--from and --to must be used together")
				}
				entries = s.state.Entries.ByDateRange(listFromDate, listToDate)
			default:
				entries = s.state.Entries.All()
			}
			entries = service.SortByTime(entries, true, s.state.Location())
			if listLimit > 0 && len(entries) > listLimit {
				entries = entries[:listLimit]
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tMEAL\tFOOD\tKCAL\tGRAMS")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Time, e.MealType, e.FoodName, textOrDash(e.Calories), textOrDash(e.Size))
			}
			return nil
		})
	},
}

var entryDeleteYes bool

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withState(cmd, func(s *session) error {
			e, err := s.state.Entries.Get(id)
			if errors.Is(err, service.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "Entry %d not found; nothing deleted\n", id)
				return nil
			}
			if err != nil {
				return err
			}
			if !entryDeleteYes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete %q (%s, %s)?", e.FoodName, e.MealType, e.Time))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled; nothing changed")
					return nil
				}
			}
			if _, err := s.state.Entries.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			return nil
		})
	},
}

func textOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func addEntryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&entryName, "name", "", "Food name")
	cmd.Flags().StringVar(&entryMeal, "meal", "", "Meal type: "+strings.Join(model.MealTypes, ", "))
	cmd.Flags().StringVar(&entryCalories, "calories", "", "Calories (kcal)")
	cmd.Flags().StringVar(&entrySize, "size", "", "Portion size in grams")
	cmd.Flags().StringVar(&entryTime, "time", "", "Time YYYY-MM-DDTHH:MM (default now)")
	cmd.Flags().StringVar(&entryComments, "comments", "", "Optional comments")
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd, entryEditCmd, entryShowCmd, entryListCmd, entryDeleteCmd)

	addEntryFlags(entryAddCmd)
	addEntryFlags(entryEditCmd)
	_ = entryAddCmd.MarkFlagRequired("name")
	_ = entryAddCmd.MarkFlagRequired("meal")

	entryListCmd.Flags().StringVar(&listDate, "date", "", "Filter by date YYYY-MM-DD")
	entryListCmd.Flags().StringVar(&listFromDate, "from", "", "Filter from date YYYY-MM-DD")
	entryListCmd.Flags().StringVar(&listToDate, "to", "", "Filter to date YYYY-MM-DD")
	entryListCmd.Flags().IntVar(&listLimit, "limit", 50, "Result limit")
	entryDeleteCmd.Flags().BoolVarP(&entryDeleteYes, "yes", "y", false, "Delete without asking for confirmation")
}
