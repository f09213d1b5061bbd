// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

func checkMark(ok bool) string {
	if ok {
		return text.FgGreen.Sprint("passed")
	}
	return text.FgRed.Sprint("failed")
}

// renderReport prints the verification outcome as a table for humans
func renderReport(report dtos.VerificationReport) string {
	tw := table.NewWriter()
	tw.SetAllowedRowLength(130)

	verdict := text.FgGreen.Sprint("VALID")
	if !report.Verified {
		verdict = text.FgRed.Sprint("INVALID")
	}
	tw.AppendRows([]table.Row{
		{"Credential", report.Credential.ID},
		{"Batch", report.Product.BatchID},
		{"Product", report.Product.Name},
		{"Issuer", report.Issuer.Name},
		{"Status", report.Credential.Status},
		{"Expires", report.Credential.ExpiresAt.Format("2006-01-02")},
		{"Verifications", report.Credential.VerificationCount},
	})
	tw.AppendSeparator()

	checks := report.VerificationResult.Checks
	tw.AppendRows([]table.Row{
		{"Not expired", checkMark(checks.NotExpired)},
		{"Not revoked", checkMark(checks.NotRevoked)},
		{"Signature present", checkMark(checks.SignaturePresent)},
		{"Issuer trusted", checkMark(checks.IssuerTrusted)},
	})
	tw.AppendSeparator()

	tw.AppendRow(table.Row{"Result", verdict})
	if len(report.VerificationResult.Errors) > 0 {
		tw.AppendRow(table.Row{"Errors", text.WrapText(strings.Join(report.VerificationResult.Errors, "\n"), 80)})
	}
	return tw.Render()
}

func NewVerifyCommand() *cobra.Command {
	verify := cobra.Command{
		Use:   "verify <credentialId>",
		Short: "Verify a credential and print the report",
		Long:  `Accepts the credential urn, the bare uuid or the decoded content of a qr code.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			conn, err := connect()
			if err != nil {
				return err
			}
			defer conn.Close()

			var credentialService shared.CredentialService
			if err := populate(conn, &credentialService); err != nil {
				return err
			}

			report, err := credentialService.VerifyCredential(cmd.Context(), credentialIDFromArg(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(report)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
			return err
		},
	}
	verify.Flags().Bool("json", false, "print the raw verification report as json")
	return &verify
}
