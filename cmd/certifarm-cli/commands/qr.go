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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/certifarm/certifarm/qr"
	"github.com/certifarm/certifarm/shared"
)

// credentialIDFromArg accepts an id or a scanned qr payload
func credentialIDFromArg(arg string) string {
	if strings.HasPrefix(strings.TrimSpace(arg), "{") {
		if id, err := qr.DecodeCredentialID(arg); err == nil {
			return id
		}
	}
	return arg
}

func NewQRCommand() *cobra.Command {
	qrCmd := cobra.Command{
		Use:     "qr <credentialId>",
		Short:   "Render the qr code of a credential",
		Example: `  certifarm-cli qr urn:uuid:3b0c... --compact --out label.png`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compact, _ := cmd.Flags().GetBool("compact")
			out, _ := cmd.Flags().GetString("out")

			conn, err := connect()
			if err != nil {
				return err
			}
			defer conn.Close()

			var credentialService shared.CredentialService
			if err := populate(conn, &credentialService); err != nil {
				return err
			}

			payload, png, err := credentialService.RenderQRCode(cmd.Context(), credentialIDFromArg(args[0]), compact)
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), payload)
				return nil
			}
			if err := os.WriteFile(out, png, 0o600); err != nil {
				return fmt.Errorf("could not write qr image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(png))
			return nil
		},
	}
	qrCmd.Flags().Bool("compact", false, "encode the compact payload for small labels")
	qrCmd.Flags().String("out", "", "write the png image to this file instead of printing the payload")
	return &qrCmd
}
