package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-lifecycle-go/library/features/query/reports"
	"github.com/AntonStoeckl/library-lifecycle-go/library/shared/core"
)

type reportFlags struct {
	reportType string
	as         string
}

func newReportCommand(env environment) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and store a report, then print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, env, func(backend Backend) error {
				actor, err := staffPrincipal(cmd, backend, flags.as)
				if err != nil {
					return err
				}

				generated, err := reports.NewQueryHandler(backend).Handle(cmd.Context(), reports.BuildQuery(actor, flags.reportType))
				if err != nil {
					return err
				}

				return writeIndentedJSON(cmd.OutOrStdout(), map[string]any{
					"report_id":      generated.Report.ReportID,
					"report_type":    generated.Report.ReportType,
					"date_generated": generated.Report.DateGenerated,
					"data":           generated.Data,
				})
			})
		},
	}

	cmd.Flags().StringVar(&flags.reportType, "type", "", "report type, one of "+strings.Join(reports.Types, ", "))
	cmd.Flags().StringVar(&flags.as, "as", "", "email of the staff user the report is generated for (required)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

// staffPrincipal resolves the email of an Admin or Librarian.
func staffPrincipal(cmd *cobra.Command, backend Backend, email string) (core.Principal, error) {
	user, err := backend.FindUserByEmail(cmd.Context(), core.NormalizeEmail(email))
	if err != nil {
		return core.Principal{}, err
	}

	if user == nil {
		return core.Principal{}, core.NotFound("user", email)
	}

	principal := core.Principal{UserID: user.UserID, Role: user.Role}
	if !principal.IsStaff() {
		return core.Principal{}, fmt.Errorf("%w: %s is %s, reports need Admin or Librarian", core.ErrForbidden, email, user.Role)
	}

	return principal, nil
}
