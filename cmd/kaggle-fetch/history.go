package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kaggle-fetch/internal/ledger"
	"github.com/pdiddy/kaggle-fetch/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past downloads",
	Long: `History lists download requests recorded by the download command,
newest first. Skipped requests (local copy already up to date) are
included.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().String("format", "table", "output format: table, yaml or json")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	l, err := ledger.Open(types.LedgerConfig{Path: viper.GetString("ledger_path"), MaxResults: limit})
	if err != nil {
		return err
	}
	defer l.Close()

	ctx := cmd.Context()
	recs, err := l.List(ctx, limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if done, err := writeStructured(w, format, recs); done {
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No downloads recorded.")
		return nil
	}
	fmt.Fprintf(w, "%-20s  %-30s  %-24s  %10s  %s\n", "When", "Dataset", "File", "Bytes", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range recs {
		status := "saved"
		if r.Skipped {
			status = "skipped"
		}
		fmt.Fprintf(w, "%-20s  %-30s  %-24s  %10d  %s\n",
			r.At.Local().Format(time.DateTime), truncate(r.Dataset, 30), truncate(r.File, 24), r.Bytes, status)
	}
	return nil
}
