package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/supportbrain/backend/internal/wire"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the vector index is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(s *wire.Services) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			if err := s.Index.Ping(ctx); err != nil {
				_, _ = errColor.Println("vector index: unreachable")
				return err
			}
			_, _ = okColor.Println("vector index: ok")
			return nil
		})
	},
}

var seedsCmd = &cobra.Command{
	Use:   "sync-tenants",
	Short: "Load tenant seed files into the integration store once",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(func(s *wire.Services) error {
			n, err := s.Seeds.Sync(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = okColor.Printf("synced %d tenants\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(seedsCmd)
}
