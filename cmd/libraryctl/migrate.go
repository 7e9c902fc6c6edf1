package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(env environment) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, env, func(backend Backend) error {
				applied, err := backend.Migrate(cmd.Context())
				if err != nil {
					return err
				}

				if len(applied) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

					return nil
				}

				for _, version := range applied {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", version)
				}

				return nil
			})
		},
	}
}
