package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagLedgerName    string
	flagLedgerSeed    bool
	flagLedgerDefault bool
	flagBudgetMonthly float64
	flagBudgetYearly  float64
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Create and list ledgers",
}

var ledgerCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Create a ledger, optionally seeded with common obligations",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerCreate,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledgers with record counts",
	RunE:  runLedgerList,
}

var ledgerBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Set monthly and yearly budget targets for the selected ledger",
	RunE:  runLedgerBudget,
}

func init() {
	ledgerCreateCmd.Flags().StringVar(&flagLedgerName, "name", "", "Display name")
	ledgerCreateCmd.Flags().BoolVar(&flagLedgerSeed, "seed", false, "Seed unpriced template obligations")
	ledgerCreateCmd.Flags().BoolVar(&flagLedgerDefault, "default", false, "Make this the default ledger in config")

	ledgerBudgetCmd.Flags().Float64Var(&flagBudgetMonthly, "monthly", 0, "Monthly outflow target")
	ledgerBudgetCmd.Flags().Float64Var(&flagBudgetYearly, "yearly", 0, "Yearly outflow target")

	ledgerCmd.AddCommand(ledgerCreateCmd, ledgerListCmd, ledgerBudgetCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func runLedgerCreate(_ *cobra.Command, args []string) error {
	c, err := clock()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id := args[0]
	if _, err := st.GetLedger(id); err == nil {
		return fmt.Errorf("ledger %q already exists", id)
	}

	now := c.Now()
	name := flagLedgerName
	if name == "" {
		name = id
	}
	if err := st.SaveLedger(model.Ledger{ID: id, Name: name, CreatedAt: now}); err != nil {
		return err
	}

	seeded := 0
	if flagLedgerSeed {
		// Seeded obligations fall due a month out so they surface in the
		// inbox as unpriced before they turn overdue.
		due := model.FormatDate(model.StartOfDay(now).AddDate(0, 1, 0))
		for _, t := range config.DefaultTemplates {
			item := model.NewRecurringItem(id, t.Draft(due), now, model.UUIDGenerator{})
			if err := st.SaveItem(item); err != nil {
				return fmt.Errorf("seed %q: %w", t.Title, err)
			}
			seeded++
		}
	}

	if flagLedgerDefault {
		appCfg.General.DefaultLedger = id
		if err := config.Save(appCfg); err != nil {
			return err
		}
	}

	fmt.Printf("  Created ledger %s (%s)\n", id, name)
	if seeded > 0 {
		fmt.Printf("  Seeded %d obligations; price them with `financeflow price`\n", seeded)
	}
	return nil
}

func runLedgerList(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ledgers, err := st.ListLedgers()
	if err != nil {
		return err
	}
	if len(ledgers) == 0 {
		fmt.Println(cli.RenderNote("No ledgers yet. Create one with `financeflow ledger create <id>`."))
		return nil
	}

	def := config.GetDefaultLedger(appCfg)
	rows := make([][]string, 0, len(ledgers))
	for _, l := range ledgers {
		items, err := st.ListItems(l.ID)
		if err != nil {
			return err
		}
		txs, err := st.ListTransactions(l.ID)
		if err != nil {
			return err
		}
		mark := ""
		if l.ID == def {
			mark = "*"
		}
		rows = append(rows, []string{
			mark + l.ID,
			l.Name,
			strconv.Itoa(len(items)),
			strconv.Itoa(len(txs)),
			cli.FormatMoney(l.Budgets.MonthlyTarget, currency()),
			cli.FormatMoney(l.Budgets.YearlyTarget, currency()),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Ledgers",
		Headers:  []string{"ID", "Name", "Items", "Txns", "Monthly Target", "Yearly Target"},
		Rows:     rows,
		TextCols: 2,
	}))
	return nil
}

func runLedgerBudget(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("monthly") && !cmd.Flags().Changed("yearly") {
		return errors.New("pass --monthly and/or --yearly")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := ledgerID()
	if err != nil {
		return err
	}
	l, err := st.GetLedger(id)
	if err != nil {
		return fmt.Errorf("ledger %q: %w", id, err)
	}

	b := l.Budgets
	if cmd.Flags().Changed("monthly") {
		b.MonthlyTarget = flagBudgetMonthly
	}
	if cmd.Flags().Changed("yearly") {
		b.YearlyTarget = flagBudgetYearly
	}
	b = b.Normalize()
	if err := st.SetBudgets(id, b); err != nil {
		return err
	}
	fmt.Printf("  Budgets for %s: %s / month, %s / year\n", id,
		cli.FormatMoney(b.MonthlyTarget, currency()), cli.FormatMoney(b.YearlyTarget, currency()))
	return nil
}
