package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/skydispatch/internal/backend"
	"github.com/mattjoyce/skydispatch/internal/storage"
)

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fixture documents and live flights into the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fx, err := storage.LoadFixtures(file)
			if err != nil {
				return err
			}

			local, err := backend.OpenLocal(cmd.Context(), cfg.Store.Local)
			if err != nil {
				return fmt.Errorf("open local store: %w", err)
			}
			defer local.Close()

			res, err := storage.Seed(cmd.Context(), fx, local.Documents, local.Realtime, time.Now())
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d documents and %d realtime nodes into %s\n",
				res.Documents, res.Nodes, cfg.Store.Local.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Fixtures YAML file")
	return cmd
}
