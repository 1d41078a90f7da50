package root_test

import (
	"testing"

	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "ledger", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "personal-finance ledger")
	assert.Contains(t, root.Cmd.Long, "ledger is a CLI tool")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Flags(t *testing.T) {
	flags := root.Cmd.PersistentFlags()

	configFlag := flags.Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	dataDirFlag := flags.Lookup("data-dir")
	require.NotNil(t, dataDirFlag)
	assert.Equal(t, "d", dataDirFlag.Shorthand)

	formatFlag := flags.Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)

	outputFlag := flags.Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	for _, name := range []string{"backend", "log-level", "log-format", "week-start"} {
		f := flags.Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "", f.DefValue, name)
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "probe"}
	cmd.Flags().AddFlagSet(root.Cmd.PersistentFlags())

	require.NoError(t, cmd.Flags().Parse([]string{"--data-dir", "/data", "--week-start", "sunday", "--format", "json"}))

	cfg := config.Default()
	root.ApplyFlags(cmd, cfg)

	assert.Equal(t, "/data", cfg.Data.Directory)
	assert.Equal(t, "sunday", cfg.Period.WeekStart)
	assert.Equal(t, "json", cfg.Report.Format)
	assert.Equal(t, "file", cfg.Data.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}
