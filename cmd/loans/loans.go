// Package loans handles the loan balance command
package loans

import (
	"context"

	"fjacquet/ledger/cmd/common"
	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/loan"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"

	"github.com/spf13/cobra"
)

// Options are the loans command settings
type Options struct {
	OpenOnly bool
	Type     string
}

var opts Options

// Cmd represents the loans command
var Cmd = &cobra.Command{
	Use:   "loans",
	Short: "Show what is still owed on each loan",
	Long: `Show what is still owed on each loan. Money lent out is repaid by income tagged
with the loan; money borrowed is repaid by expenses tagged with the loan.`,
	Run: loansFunc,
}

func init() {
	Cmd.Flags().BoolVar(&opts.OpenOnly, "open-only", false, "Hide settled loans")
	Cmd.Flags().StringVar(&opts.Type, "type", "", "Only show one loan type: lend or borrow")
}

func loansFunc(cmd *cobra.Command, args []string) {
	c := root.NewContainer()
	defer c.Close()

	out, err := Run(cmd.Context(), c, opts)
	if err != nil {
		root.Log.Fatalf("Error computing loan balances: %v", err)
	}
	if err := common.Emit(cmd.OutOrStdout(), root.SharedFlags.Output, out); err != nil {
		root.Log.Fatalf("Error writing loan balances: %v", err)
	}
}

// Run summarizes the loans of the store
func Run(ctx context.Context, c *container.Container, o Options) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var only models.LoanType
	if o.Type != "" {
		t, err := models.ParseLoanType(o.Type)
		if err != nil {
			return nil, err
		}
		only = t
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	all := loan.Summaries(snap.Loans, snap.Transactions)
	summaries := make([]loan.Summary, 0, len(all))
	for _, s := range all {
		if o.OpenOnly && s.Settled {
			continue
		}
		if only != "" && s.Loan.Type != only {
			continue
		}
		summaries = append(summaries, s)
	}

	c.GetLogger().Debug("Computed loan balances",
		logging.F(logging.FieldCount, len(summaries)),
		logging.F("lent_outstanding", loan.Outstanding(all, models.LoanLend).String()),
		logging.F("borrowed_outstanding", loan.Outstanding(all, models.LoanBorrow).String()))

	return c.GetGenerator().Loans(summaries, c.GetConfig().Report.Format)
}
