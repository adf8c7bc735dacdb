package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/store"

	"github.com/spf13/cobra"
)

var flagSnoozeUntil string

var payCmd = &cobra.Command{
	Use:   "pay <item-id>",
	Short: "Mark an obligation paid and advance its due date",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return updateItem(args[0], func(it model.RecurringItem, now time.Time) model.RecurringItem {
			return it.MarkPaid(now)
		})
	},
}

var snoozeCmd = &cobra.Command{
	Use:   "snooze <item-id>",
	Short: "Snooze an obligation until a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if _, ok := model.ParseDate(flagSnoozeUntil); !ok {
			return fmt.Errorf("invalid --until %q: want YYYY-MM-DD", flagSnoozeUntil)
		}
		status := string(model.StatusSnoozed)
		return updateItem(args[0], func(it model.RecurringItem, now time.Time) model.RecurringItem {
			return it.Apply(model.ItemPatch{Status: &status, SnoozeUntil: &flagSnoozeUntil}, now)
		})
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <item-id>",
	Short: "Mark an obligation resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		status := string(model.StatusResolved)
		noSnooze := ""
		return updateItem(args[0], func(it model.RecurringItem, now time.Time) model.RecurringItem {
			return it.Apply(model.ItemPatch{Status: &status, SnoozeUntil: &noSnooze}, now)
		})
	},
}

func init() {
	snoozeCmd.Flags().StringVar(&flagSnoozeUntil, "until", "", "Snooze until this date (YYYY-MM-DD)")
	_ = snoozeCmd.MarkFlagRequired("until")
	rootCmd.AddCommand(payCmd, snoozeCmd, resolveCmd)
}

// updateItem loads an obligation, applies fn and saves the result.
func updateItem(id string, fn func(model.RecurringItem, time.Time) model.RecurringItem) error {
	c, err := clock()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	it, err := st.GetItem(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("obligation %q not found", id)
		}
		return err
	}
	updated := fn(it, c.Now())
	if err := st.SaveItem(updated); err != nil {
		return err
	}

	due := "no date"
	if updated.HasDueDate() {
		due = model.FormatDate(updated.NextDueDate)
	}
	fmt.Printf("  %s: %s, next due %s\n", updated.Title, updated.Status, due)
	return nil
}
