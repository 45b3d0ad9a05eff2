package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/household-planner/internal/calculation"
	"github.com/rpgo/household-planner/internal/domain"
	"github.com/rpgo/household-planner/internal/output"
)

var flagFilingStatus string

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Split a retirement withdrawal across taxable, tax-free and tax-deferred accounts",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithdraw,
}

func init() {
	withdrawCmd.Flags().StringVar(&flagFilingStatus, "filing-status", "single", "Filing status (single, married, head_of_household)")
	rootCmd.AddCommand(withdrawCmd)
}

func runWithdraw(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("%w: amount %q: %v", domain.ErrInvalidInput, args[0], err)
	}
	status := domain.ParseFilingStatus(flagFilingStatus)
	tc := calculation.NewTaxCalculator2024()
	split := tc.SplitWithdrawal(status, amount)

	t := output.Table{
		Title:   fmt.Sprintf("Withdrawal of %s (%s)", output.FormatCurrency(amount), status),
		Headers: []string{"Source", "Amount"},
		Rows: [][]string{
			{"Taxable", output.FormatCurrency(split.Taxable)},
			{"Tax-free", output.FormatCurrency(split.TaxFree)},
			{"Tax-deferred", output.FormatCurrency(split.TaxDeferred)},
			{"Total", output.FormatCurrency(split.Total())},
		},
	}
	fmt.Fprint(cmd.OutOrStdout(), output.RenderTable(t))
	return nil
}
