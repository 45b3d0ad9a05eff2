package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/calculation"
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/rpgo/household-planner/internal/output"
)

var purchasesCmd = &cobra.Command{
	Use:   "purchases <household-file> [purchase-name]",
	Short: "Show the payment schedule of major purchases",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPurchases,
}

func init() {
	rootCmd.AddCommand(purchasesCmd)
}

func runPurchases(cmd *cobra.Command, args []string) error {
	_, h, err := loadHousehold(args[0])
	if err != nil {
		return err
	}
	purchases := h.Purchases
	if len(args) == 2 {
		purchases = nil
		for _, mp := range h.Purchases {
			if mp.Name == args[1] {
				purchases = append(purchases, mp)
			}
		}
		if len(purchases) == 0 {
			return fmt.Errorf("purchase %q: %w", args[1], domain.ErrNotFound)
		}
	}

	out := cmd.OutOrStdout()
	if len(purchases) == 0 {
		fmt.Fprintln(out, "No major purchases.")
		return nil
	}
	for _, mp := range purchases {
		title := fmt.Sprintf("%s: %s in %d (cash)", mp.Name, output.FormatCurrency(mp.Amount), mp.Year)
		if mp.IsFinanced() {
			title = fmt.Sprintf("%s: %s in %d, %d years at %s, %s/month", mp.Name,
				output.FormatCurrency(mp.Amount), mp.Year, mp.FinancingYears,
				output.FormatRate(mp.InterestRate), output.FormatCurrency(calculation.MonthlyPayment(mp)))
		}
		t := output.Table{Title: title, Headers: []string{"Year", "Payment", "Interest", "Principal", "Balance"}}
		for _, row := range calculation.AmortizationSchedule(mp) {
			t.Rows = append(t.Rows, []string{
				fmt.Sprint(row.Year),
				output.FormatCurrency(row.Payment),
				output.FormatCurrency(row.Interest),
				output.FormatCurrency(row.Principal),
				output.FormatCurrency(row.Balance),
			})
		}
		fmt.Fprintln(out, output.RenderTable(t))
	}
	return nil
}
