// Package budget handles the budget progress command
package budget

import (
	"context"
	"time"

	"fjacquet/ledger/cmd/common"
	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/aggregator"
	budgets "fjacquet/ledger/internal/budget"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/logging"

	"github.com/spf13/cobra"
)

// Options are the budget command settings
type Options struct {
	Period   common.PeriodFlags
	OverOnly bool
}

var opts Options

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Show budget progress for a period",
	Long: `Show how much of each category budget was spent in a period. Spending includes
fees; budgets on system categories such as Loan or TransactionFee are ignored.`,
	Run: budgetFunc,
}

func init() {
	opts.Period.Register(Cmd)
	Cmd.Flags().BoolVar(&opts.OverOnly, "over-only", false, "Only list budgets that are exceeded")
}

func budgetFunc(cmd *cobra.Command, args []string) {
	c := root.NewContainer()
	defer c.Close()

	out, err := Run(cmd.Context(), c, opts, time.Now())
	if err != nil {
		root.Log.Fatalf("Error evaluating budgets: %v", err)
	}
	if err := common.Emit(cmd.OutOrStdout(), root.SharedFlags.Output, out); err != nil {
		root.Log.Fatalf("Error writing budgets: %v", err)
	}
}

// Run evaluates every budget of the store against the selected period
func Run(ctx context.Context, c *container.Container, o Options, now time.Time) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := c.GetConfig()

	sel, err := o.Period.Selection(cfg.Period.DefaultGranularity, now)
	if err != nil {
		return nil, err
	}
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	r, err := c.GetAggregator().Build(snap.Transactions, aggregator.Request{
		Period:  sel,
		GroupBy: aggregator.GroupByCategory,
	})
	if err != nil {
		return nil, err
	}

	progress := budgets.EvaluateAll(r.Buckets, snap.Budgets)
	over := budgets.OverBudget(progress)
	for _, p := range over {
		c.GetLogger().Warn("Budget exceeded",
			logging.F(logging.FieldCategory, p.Category),
			logging.F(logging.FieldPeriod, r.Label))
	}
	if o.OverOnly {
		progress = over
	}

	return c.GetGenerator().Budgets(r.Label, progress, cfg.Report.Format)
}
