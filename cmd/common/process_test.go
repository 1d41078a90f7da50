package common_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/ledger/cmd/common"
	"fjacquet/ledger/internal/ledgererror"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/period"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func TestPeriodFlags_Register(t *testing.T) {
	cmd := &cobra.Command{Use: "probe"}
	var f common.PeriodFlags
	f.Register(cmd)

	require.NoError(t, cmd.Flags().Parse([]string{"-g", "weekly", "-a", "2024-01-02"}))
	assert.Equal(t, "weekly", f.Granularity)
	assert.Equal(t, "2024-01-02", f.Anchor)
	assert.NotNil(t, cmd.Flags().Lookup("from"))
	assert.NotNil(t, cmd.Flags().Lookup("to"))
}

func TestPeriodFlags_Selection(t *testing.T) {
	tests := []struct {
		name        string
		flags       common.PeriodFlags
		granularity period.Granularity
		anchor      string
		custom      string
		wantErr     bool
		periodErr   bool
	}{
		{name: "defaults to today", granularity: period.Monthly, anchor: "2024-03-15"},
		{name: "explicit granularity and anchor", flags: common.PeriodFlags{Granularity: "year", Anchor: "2023-07-01"}, granularity: period.Yearly, anchor: "2023-07-01"},
		{name: "range implies custom", flags: common.PeriodFlags{From: "2024-01-10", To: "2024-01-20"}, granularity: period.Custom, anchor: "2024-01-10", custom: "2024-01-10..2024-01-20"},
		{name: "custom without range", flags: common.PeriodFlags{Granularity: "custom"}, wantErr: true, periodErr: true},
		{name: "custom with half a range", flags: common.PeriodFlags{Granularity: "custom", From: "2024-01-10"}, wantErr: true, periodErr: true},
		{name: "range with another granularity", flags: common.PeriodFlags{Granularity: "daily", From: "2024-01-10", To: "2024-01-11"}, wantErr: true, periodErr: true},
		{name: "unknown granularity", flags: common.PeriodFlags{Granularity: "hourly"}, wantErr: true, periodErr: true},
		{name: "bad anchor", flags: common.PeriodFlags{Anchor: "15/03/2024"}, wantErr: true},
		{name: "reversed range", flags: common.PeriodFlags{From: "2024-02-10", To: "2024-01-20"}, wantErr: true, periodErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := tt.flags.Selection("MONTHLY", today)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.periodErr, errors.Is(err, ledgererror.ErrInvalidPeriod))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.granularity, sel.Granularity)
			assert.Equal(t, tt.anchor, sel.Anchor.Format("2006-01-02"))
			if tt.custom == "" {
				assert.Nil(t, sel.Custom)
			} else {
				require.NotNil(t, sel.Custom)
				assert.Equal(t, tt.custom, sel.Custom.String())
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tp, err := common.ParseType("")
	require.NoError(t, err)
	assert.Nil(t, tp)

	tp, err = common.ParseType("income")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeIncome, *tp)

	_, err = common.ParseType("refund")
	assert.Error(t, err)
}

func TestEmit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, common.Emit(&buf, "", []byte("hello")))
	assert.Equal(t, "hello", buf.String())

	path := filepath.Join(t.TempDir(), "out", "report.csv")
	require.NoError(t, common.Emit(&buf, path, []byte("a,b\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
	assert.Equal(t, "hello", buf.String())
}
