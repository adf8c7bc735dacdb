package cmd

import (
	"fmt"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/config"

	"github.com/spf13/cobra"
)

var (
	flagPriceBase     float64
	flagPriceCity     string
	flagPriceSize     string
	flagPriceTemplate string
	flagPriceNoCity   bool
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Suggest a regional price for an obligation",
	Long: `Suggest a price as base x city factor x size factor, rounded to a whole
amount. With --template the base and city eligibility come from a built-in
template; without arguments every template is listed.`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().Float64Var(&flagPriceBase, "base", 0, "Base amount")
	priceCmd.Flags().StringVar(&flagPriceCity, "city", "", "City (default from config)")
	priceCmd.Flags().StringVar(&flagPriceSize, "size", "", "Office size small|medium|large (default from config)")
	priceCmd.Flags().StringVar(&flagPriceTemplate, "template", "", "Template hint or title")
	priceCmd.Flags().BoolVar(&flagPriceNoCity, "no-city", false, "Do not apply the city factor")
	rootCmd.AddCommand(priceCmd)
}

func runPrice(_ *cobra.Command, _ []string) error {
	city, size := appCfg.Pricing.City, appCfg.Pricing.Size
	if flagPriceCity != "" {
		city = flagPriceCity
	}
	if flagPriceSize != "" {
		size = flagPriceSize
	}
	cur := currency()

	if flagPriceTemplate == "" && flagPriceBase <= 0 {
		rows := make([][]string, 0, len(config.DefaultTemplates))
		for _, t := range config.DefaultTemplates {
			s := config.Suggest(config.PriceInput{Base: t.Typical, City: city, Size: size, Eligible: t.CityEligible})
			rows = append(rows, []string{
				t.Title,
				t.Hint,
				cli.FormatMoney(t.Band.Min, cur) + " - " + cli.FormatMoney(t.Band.Max, cur),
				cli.FormatMoney(s.Amount, cur),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:    fmt.Sprintf("Suggested prices (%s, %s)", config.NormalizeCity(city), config.NormalizeSize(size)),
			Headers:  []string{"Template", "Hint", "Band", "Suggested"},
			Rows:     rows,
			TextCols: 2,
		}))
		return nil
	}

	in := config.PriceInput{Base: flagPriceBase, City: city, Size: size, Eligible: !flagPriceNoCity}
	if flagPriceTemplate != "" {
		t, ok := config.FindTemplate(flagPriceTemplate)
		if !ok {
			return fmt.Errorf("unknown template %q", flagPriceTemplate)
		}
		if in.Base <= 0 {
			in.Base = t.Typical
		}
		in.Eligible = t.CityEligible && !flagPriceNoCity
	}

	s := config.Suggest(in)
	fmt.Print(cli.RenderKV([][2]string{
		{"Base", cli.FormatMoney(in.Base, cur)},
		{"City", fmt.Sprintf("%s (x%.2f)", s.City, s.CityFactor)},
		{"Size", fmt.Sprintf("%s (x%.2f)", s.Size, s.SizeFactor)},
		{"Suggested", cli.FormatMoney(s.Amount, cur)},
	}))
	return nil
}
