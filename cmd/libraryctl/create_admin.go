package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

type createAdminFlags struct {
	name  string
	email string
	phone string
}

func newCreateAdminCommand(env environment) *cobra.Command {
	var flags createAdminFlags

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Register an Admin user, e.g. the very first one",
		Long: "Register an Admin user. The password is prompted for without echo, " +
			"or read from the first line of stdin when stdin is not a terminal.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readConfirmedPassword(cmd, env)
			if err != nil {
				return err
			}

			return withBackend(cmd, env, func(backend Backend) error {
				userID := uuid.New()
				command := registeruser.BuildCommand(userID, flags.name, flags.email, flags.phone, password,
					string(core.RoleAdmin), time.Time{})

				if _, err = registeruser.NewCommandHandler(backend).Handle(cmd.Context(), command); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", core.NormalizeEmail(flags.email), userID)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&flags.email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&flags.phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func readConfirmedPassword(cmd *cobra.Command, env environment) (string, error) {
	password, err := env.readPassword("Password: ", cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}

	confirmation, err := env.readPassword("Repeat password: ", cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}

	if password != confirmation {
		return "", ErrPasswordMismatch
	}

	return password, nil
}
