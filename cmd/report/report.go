// Package report handles the period report command
package report

import (
	"context"
	"time"

	"fjacquet/ledger/cmd/common"
	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/aggregator"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/filter"

	"github.com/spf13/cobra"
)

// Options are the report command settings
type Options struct {
	Period       common.PeriodFlags
	GroupBy      string
	ExcludeLoans bool
	Type         string
}

var opts Options

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Report spending for a period",
	Long: `Report spending for a period grouped by category or account, compared with the
previous period of the same length. Fees are reported under TransactionFee.`,
	Run: reportFunc,
}

func init() {
	opts.Period.Register(Cmd)
	Cmd.Flags().StringVar(&opts.GroupBy, "group-by", "category", "Grouping: category or account")
	Cmd.Flags().BoolVar(&opts.ExcludeLoans, "exclude-loans", false, "Leave out transactions tied to a loan")
	Cmd.Flags().StringVar(&opts.Type, "type", "", "Only keep one transaction type: expense, income or transfer")
}

func reportFunc(cmd *cobra.Command, args []string) {
	c := root.NewContainer()
	defer c.Close()

	if !cmd.Flags().Changed("exclude-loans") {
		opts.ExcludeLoans = root.AppConfig.Report.ExcludeLoans
	}

	out, err := Run(cmd.Context(), c, opts, time.Now())
	if err != nil {
		root.Log.Fatalf("Error building report: %v", err)
	}
	if err := common.Emit(cmd.OutOrStdout(), root.SharedFlags.Output, out); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
}

// Run builds the report selected by o and renders it in the configured format
func Run(ctx context.Context, c *container.Container, o Options, now time.Time) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := c.GetConfig()

	sel, err := o.Period.Selection(cfg.Period.DefaultGranularity, now)
	if err != nil {
		return nil, err
	}
	groupBy, err := aggregator.ParseGroupBy(o.GroupBy)
	if err != nil {
		return nil, err
	}
	txType, err := common.ParseType(o.Type)
	if err != nil {
		return nil, err
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	r, err := c.GetAggregator().Build(snap.Transactions, aggregator.Request{
		Period:  sel,
		GroupBy: groupBy,
		Options: filter.Options{ExcludeLoans: o.ExcludeLoans, Type: txType},
	})
	if err != nil {
		return nil, err
	}
	return c.GetGenerator().Report(r, cfg.Report.Format)
}

