package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kaggle-fetch/internal/kaggle"
	"github.com/pdiddy/kaggle-fetch/internal/ledger"
	"github.com/pdiddy/kaggle-fetch/pkg/types"
)

const (
	defaultDataset = "cclark/product-item-data"
	defaultFile    = "sample-data.csv"
)

var downloadCmd = &cobra.Command{
	Use:   "download [owner/dataset[/version]] [file]",
	Short: "Download one file from a dataset",
	Long: `Download authenticates, then fetches a single file from a dataset and
writes it unmodified to --path. With no arguments it downloads
sample-data.csv from cclark/product-item-data. A local copy at least as new
as the server's copy is left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("path", ".", "destination directory")
	downloadCmd.Flags().Bool("force", false, "download even if the local copy is up to date")
	downloadCmd.Flags().BoolP("quiet", "q", false, "suppress status output")
	downloadCmd.Flags().Bool("no-history", false, "do not record this download in the history database")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	dataset, file := defaultDataset, defaultFile
	if len(args) > 0 {
		dataset = args[0]
	}
	if len(args) > 1 {
		file = args[1]
	}

	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	client, err := authenticatedClient()
	if err != nil {
		return err
	}

	ref, err := kaggle.ParseDatasetRef(dataset, client.Username())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rec, err := client.DownloadFile(ctx, ref, file, types.DownloadConfig{
		Path:  path,
		Force: force,
		Quiet: quiet,
	}, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if noHistory {
		return nil
	}
	if err := recordDownload(ctx, rec); err != nil {
		log.WithError(err).Warn("download not recorded in history")
	}
	return nil
}

func recordDownload(ctx context.Context, rec *types.DownloadRecord) error {
	l, err := ledger.Open(types.LedgerConfig{Path: viper.GetString("ledger_path")})
	if err != nil {
		return err
	}
	defer l.Close()
	return l.Record(ctx, rec)
}
