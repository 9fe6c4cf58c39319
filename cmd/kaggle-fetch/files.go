package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kaggle-fetch/internal/kaggle"
)

var filesCmd = &cobra.Command{
	Use:   "files [owner/dataset[/version]]",
	Short: "List the files in a dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFiles,
}

func init() {
	filesCmd.Flags().String("format", "table", "output format: table, yaml or json")

	rootCmd.AddCommand(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	dataset := defaultDataset
	if len(args) > 0 {
		dataset = args[0]
	}
	format, _ := cmd.Flags().GetString("format")

	client, err := authenticatedClient()
	if err != nil {
		return err
	}
	ref, err := kaggle.ParseDatasetRef(dataset, client.Username())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	files, err := client.ListFiles(ctx, ref)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if done, err := writeStructured(w, format, files); done {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintf(w, "No files in %s.\n", ref)
		return nil
	}
	fmt.Fprintf(w, "%-40s  %12s  %s\n", "Name", "Bytes", "Created")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, f := range files {
		fmt.Fprintf(w, "%-40s  %12d  %s\n", truncate(f.Name, 40), f.TotalBytes, f.CreationDate)
	}
	return nil
}
