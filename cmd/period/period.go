// Package period handles the period inspection command
package period

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/ledger/cmd/common"
	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/period"
	"fjacquet/ledger/internal/report"

	"github.com/spf13/cobra"
)

// Step directions
const (
	StepNext = "next"
	StepPrev = "prev"
)

// Options are the period command settings
type Options struct {
	Period common.PeriodFlags
	Step   string
	Count  int
}

var opts Options

// Cmd represents the period command
var Cmd = &cobra.Command{
	Use:   "period",
	Short: "Show the bounds and label of a period",
	Long: `Show the bounds and label of a period together with the period before it.
--step moves the selection one period forward (next) or backward (prev) first, and
--count lists that many consecutive periods.`,
	Run: periodFunc,
}

func init() {
	opts.Period.Register(Cmd)
	Cmd.Flags().StringVar(&opts.Step, "step", "", "Move the selection first: next or prev")
	Cmd.Flags().IntVar(&opts.Count, "count", 1, "Number of consecutive periods to list")
}

func periodFunc(cmd *cobra.Command, args []string) {
	c := root.NewContainer()
	defer c.Close()

	out, err := Run(c, opts, time.Now())
	if err != nil {
		root.Log.Fatalf("Error resolving period: %v", err)
	}
	if err := common.Emit(cmd.OutOrStdout(), root.SharedFlags.Output, out); err != nil {
		root.Log.Fatalf("Error writing period: %v", err)
	}
}

// Run resolves the selected period, and the ones after it when o.Count > 1
func Run(c *container.Container, o Options, now time.Time) ([]byte, error) {
	sel, err := o.Period.Selection(c.GetConfig().Period.DefaultGranularity, now)
	if err != nil {
		return nil, err
	}
	if o.Count < 1 {
		return nil, fmt.Errorf("--count must be at least 1, got %d", o.Count)
	}

	resolver := c.GetResolver()
	switch strings.ToLower(strings.TrimSpace(o.Step)) {
	case "":
	case StepNext:
		sel = step(resolver, sel, true)
	case StepPrev:
		sel = step(resolver, sel, false)
	default:
		return nil, fmt.Errorf("invalid --step %q: expected next or prev", o.Step)
	}

	infos := make([]report.PeriodInfo, 0, o.Count)
	for i := 0; i < o.Count; i++ {
		info, err := describe(resolver, sel)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
		sel = step(resolver, sel, true)
	}

	c.GetLogger().Debug("Resolved periods",
		logging.F(logging.FieldGranularity, string(sel.Granularity)),
		logging.F(logging.FieldCount, len(infos)))

	return c.GetGenerator().Period(infos, c.GetConfig().Report.Format)
}

// step moves sel one period. A custom window moves by its own length.
func step(r *period.Resolver, sel period.Selection, forward bool) period.Selection {
	sel.Anchor = r.Step(sel.Anchor, sel.Granularity, forward, sel.Custom)
	if sel.Granularity == period.Custom && sel.Custom != nil {
		rg := r.StepRange(*sel.Custom, forward)
		sel.Custom = &rg
	}
	return sel
}

func describe(r *period.Resolver, sel period.Selection) (report.PeriodInfo, error) {
	bounds, err := r.StrictBoundsOf(sel.Anchor, sel.Granularity, sel.Custom)
	if err != nil {
		return report.PeriodInfo{}, err
	}

	previous := r.PreviousPeriod(sel.Anchor, sel.Granularity, sel.Custom)
	previousLabel := period.RangeLabel(previous)
	if sel.Granularity != period.Custom {
		previousLabel = r.Label(previous.Start, sel.Granularity, nil)
	}

	return report.PeriodInfo{
		Granularity:   sel.Granularity,
		Label:         r.Label(sel.Anchor, sel.Granularity, sel.Custom),
		Range:         bounds,
		Days:          bounds.Days(),
		PreviousLabel: previousLabel,
		Previous:      previous,
	}, nil
}
