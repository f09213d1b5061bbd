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
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/shared"
)

func NewWatchCommand() *cobra.Command {
	watch := cobra.Command{
		Use:   "watch",
		Short: "Print batch status changes as they are committed",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect()
			if err != nil {
				return err
			}
			defer conn.Close()

			broker := database.NewPostgreSQLBroker(conn.pool)
			defer broker.Close()

			events, err := broker.Subscribe(shared.BatchStatusChanged)
			if err != nil {
				return err
			}
			slog.Info("watching batch status changes")

			encoder := json.NewEncoder(cmd.OutOrStdout())
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case event, ok := <-events:
					if !ok {
						return nil
					}
					if err := encoder.Encode(event); err != nil {
						return err
					}
				}
			}
		},
	}
	return &watch
}
