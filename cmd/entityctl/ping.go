package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the graph database is reachable",
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	catalog, err := openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog(ctx, catalog)

	if err := catalog.Driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("graph unreachable: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return err
}
