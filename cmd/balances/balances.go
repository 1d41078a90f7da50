// Package balances handles the account balance command
package balances

import (
	"context"

	"fjacquet/ledger/cmd/common"
	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/balance"
	"fjacquet/ledger/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the balances command
var Cmd = &cobra.Command{
	Use:   "balances",
	Short: "Show the current balance of every account",
	Long: `Show the current balance of every account: the initial balance plus income and
incoming transfers, minus expenses, outgoing transfers and their fees.`,
	Run: balancesFunc,
}

func balancesFunc(cmd *cobra.Command, args []string) {
	c := root.NewContainer()
	defer c.Close()

	out, err := Run(cmd.Context(), c)
	if err != nil {
		root.Log.Fatalf("Error computing balances: %v", err)
	}
	if err := common.Emit(cmd.OutOrStdout(), root.SharedFlags.Output, out); err != nil {
		root.Log.Fatalf("Error writing balances: %v", err)
	}
}

// Run derives the balance of every account in the store
func Run(ctx context.Context, c *container.Container) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetGenerator().Balances(balance.All(snap.Accounts, snap.Transactions), c.GetConfig().Report.Format)
}
