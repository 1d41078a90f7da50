// Package fee handles the fee quote command
package fee

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/ledger/cmd/common"
	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/currencyutils"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Options are the fee command settings
type Options struct {
	Account string
	Rule    string
	Amount  string
	Custom  string
	All     bool
}

var opts Options

// Cmd represents the fee command
var Cmd = &cobra.Command{
	Use:   "fee",
	Short: "Compute the fee an account charges on an amount",
	Long: `Compute the fee an account charges on an amount. The rule is one of the account's
fee rules by name, "None" for no fee or "Custom" with --custom for a fixed fee.
With --all every rule of the account is quoted.`,
	Run: feeFunc,
}

func init() {
	Cmd.Flags().StringVar(&opts.Account, "account", "", "Account id")
	Cmd.Flags().StringVar(&opts.Rule, "rule", models.FeeNone, "Fee rule name, None or Custom")
	Cmd.Flags().StringVar(&opts.Amount, "amount", "", "Transaction amount")
	Cmd.Flags().StringVar(&opts.Custom, "custom", "0", "Fee amount used with --rule Custom")
	Cmd.Flags().BoolVar(&opts.All, "all", false, "Quote every fee rule of the account")
	_ = Cmd.MarkFlagRequired("account")
	_ = Cmd.MarkFlagRequired("amount")
}

func feeFunc(cmd *cobra.Command, args []string) {
	c := root.NewContainer()
	defer c.Close()

	out, err := Run(cmd.Context(), c, opts)
	if err != nil {
		root.Log.Fatalf("Error computing fee: %v", err)
	}
	if err := common.Emit(cmd.OutOrStdout(), root.SharedFlags.Output, out); err != nil {
		root.Log.Fatalf("Error writing fee: %v", err)
	}
}

// Run quotes the fee of o.Rule, or of every rule with o.All, on the given account
func Run(ctx context.Context, c *container.Container, o Options) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	amount, err := currencyutils.ParseAmount(o.Amount)
	if err != nil || amount.IsNegative() {
		return nil, fmt.Errorf("invalid --amount: %q", o.Amount)
	}
	custom := decimal.Zero
	if strings.TrimSpace(o.Custom) != "" {
		custom, err = currencyutils.ParseAmount(o.Custom)
		if err != nil || custom.IsNegative() {
			return nil, fmt.Errorf("invalid --custom: %q", o.Custom)
		}
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	account, ok := snap.Account(o.Account)
	if !ok {
		return nil, fmt.Errorf("unknown account: %q", o.Account)
	}

	selections := []string{o.Rule}
	if o.All {
		selections = make([]string, 0, len(account.FeeConfigs))
		for _, fc := range account.FeeConfigs {
			selections = append(selections, fc.Name)
		}
	}

	calc := c.GetFeeCalculator()
	quotes := make([]report.FeeQuote, 0, len(selections))
	for _, sel := range selections {
		f, err := calc.ResolveForAccount(sel, amount, custom, account)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, report.FeeQuote{
			AccountID: account.ID,
			Selection: models.NormalizeFeeSelection(&sel),
			Amount:    amount,
			Fee:       f,
		})
	}

	c.GetLogger().Debug("Quoted fees",
		logging.F(logging.FieldCount, len(quotes)),
		logging.F(logging.FieldAccountID, account.ID))

	return c.GetGenerator().Fee(quotes, c.GetConfig().Report.Format)
}
