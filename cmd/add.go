package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagAddTitle     string
	flagAddAmount    float64
	flagAddDue       string
	flagAddCategory  string
	flagAddFrequency string
	flagAddRisk      string
	flagAddRequired  bool
	flagAddTemplate  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring obligation to the selected ledger",
	Long: `Add a recurring obligation. Without --title an interactive form asks
for the fields. --template starts from one of the built-in templates
(license, civil_defense, insurance, ...).`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddTitle, "title", "", "Obligation title")
	addCmd.Flags().Float64Var(&flagAddAmount, "amount", 0, "Amount per occurrence (0 = unpriced)")
	addCmd.Flags().StringVar(&flagAddDue, "due", "", "Next due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&flagAddCategory, "category", "other", "system|operational|maintenance|marketing|other")
	addCmd.Flags().StringVar(&flagAddFrequency, "frequency", "monthly", "weekly|monthly|quarterly|semiannual|yearly|adhoc")
	addCmd.Flags().StringVar(&flagAddRisk, "risk", "", "low|medium|high")
	addCmd.Flags().BoolVar(&flagAddRequired, "required", false, "Mark as a required obligation")
	addCmd.Flags().StringVar(&flagAddTemplate, "template", "", "Start from a built-in template hint or title")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	c, err := clock()
	if err != nil {
		return err
	}
	id, err := ledgerID()
	if err != nil {
		return err
	}

	draft := model.ItemDraft{
		Title:       flagAddTitle,
		Category:    flagAddCategory,
		Frequency:   flagAddFrequency,
		RiskLevel:   flagAddRisk,
		Amount:      flagAddAmount,
		NextDueDate: flagAddDue,
		Required:    flagAddRequired,
	}
	if flagAddTemplate != "" {
		t, ok := config.FindTemplate(flagAddTemplate)
		if !ok {
			return fmt.Errorf("unknown template %q", flagAddTemplate)
		}
		amount := draft.Amount
		draft = t.Draft(flagAddDue)
		draft.Amount = amount
		if flagAddTitle != "" {
			draft.Title = flagAddTitle
		}
	}

	if draft.Title == "" {
		if err := runAddForm(&draft); err != nil {
			return err
		}
	}
	if strings.TrimSpace(draft.Title) == "" {
		return errors.New("title is required")
	}
	if draft.NextDueDate != "" {
		if _, ok := model.ParseDate(draft.NextDueDate); !ok {
			return fmt.Errorf("invalid due date %q: want YYYY-MM-DD", draft.NextDueDate)
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	if _, err := st.GetLedger(id); err != nil {
		return fmt.Errorf("ledger %q: %w", id, err)
	}

	item := model.NewRecurringItem(id, draft, c.Now(), model.UUIDGenerator{})
	if !model.ValidateRecurringItem(item) {
		return errors.New("obligation is missing required fields")
	}
	if err := st.SaveItem(item); err != nil {
		return err
	}

	amount := "unpriced"
	if item.IsPriced() {
		amount = cli.FormatMoney(item.Amount, currency())
	}
	fmt.Printf("  Added %s (%s, %s, %s)\n", item.Title, amount, item.Frequency, item.Category)
	fmt.Printf("  ID: %s\n", item.ID)
	return nil
}

// runAddForm fills draft interactively.
func runAddForm(draft *model.ItemDraft) error {
	amount := ""
	if draft.Amount > 0 {
		amount = strconv.FormatFloat(draft.Amount, 'f', -1, 64)
	}

	categories := make([]huh.Option[string], 0, len(model.Categories))
	for _, c := range model.Categories {
		categories = append(categories, huh.NewOption(string(c), string(c)))
	}
	frequencies := []huh.Option[string]{}
	for _, f := range []model.Frequency{model.Weekly, model.Monthly, model.Quarterly, model.Semiannual, model.Yearly, model.Adhoc} {
		frequencies = append(frequencies, huh.NewOption(string(f), string(f)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&draft.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Amount per occurrence").
				Description("Leave empty if the price is not known yet.").
				Value(&amount).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 {
						return errors.New("enter a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Next due date").
				Placeholder("YYYY-MM-DD").
				Value(&draft.NextDueDate).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, ok := model.ParseDate(s); !ok {
						return errors.New("use YYYY-MM-DD")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Category").Options(categories...).Value(&draft.Category),
			huh.NewSelect[string]().Title("Frequency").Options(frequencies...).Value(&draft.Frequency),
			huh.NewSelect[string]().
				Title("Risk").
				Options(
					huh.NewOption("unset", ""),
					huh.NewOption("low", "low"),
					huh.NewOption("medium", "medium"),
					huh.NewOption("high", "high"),
				).
				Value(&draft.RiskLevel),
			huh.NewConfirm().Title("Required?").Value(&draft.Required),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if s := strings.TrimSpace(amount); s != "" {
		draft.Amount, _ = strconv.ParseFloat(s, 64)
	}
	return nil
}
