package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattjoyce/skydispatch/internal/backend"
)

func newKeyCmd() *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Inspect the configured service-account key",
	}
	keyCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Normalize and parse the private key without contacting any store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			key, err := backend.PrepareKey(cfg.Store.Firebase.PrivateKey)
			if err != nil {
				return fmt.Errorf("private key: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "private key OK")
			fmt.Fprintf(out, "fingerprint: %s\n", key.Fingerprint)
			fmt.Fprintf(out, "body_lines: %d\n", key.Lines)
			return nil
		},
	})
	return keyCmd
}
