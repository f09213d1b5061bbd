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
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/transformer"
	"github.com/certifarm/certifarm/utils"
)

// readSeed parses and validates a participants yaml file
func readSeed(path string) ([]models.Participant, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read seed file: %w", err)
	}
	var seed dtos.ParticipantSeed
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return nil, fmt.Errorf("could not parse seed file: %w", err)
	}
	if err := shared.V.Struct(seed); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return utils.Map(seed.Participants, transformer.ParticipantFromDTO), nil
}

func NewSeedCommand() *cobra.Command {
	seed := cobra.Command{
		Use:     "seed <participants.yaml>",
		Short:   "Insert or update participants from a yaml file",
		Example: `  certifarm-cli seed participants.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			participants, err := readSeed(args[0])
			if err != nil {
				return err
			}

			conn, err := connect()
			if err != nil {
				return err
			}
			defer conn.Close()

			var repository shared.ParticipantRepository
			var directory shared.ParticipantDirectory
			if err := populate(conn, &repository, &directory); err != nil {
				return err
			}
			if err := repository.Upsert(nil, participants); err != nil {
				return fmt.Errorf("could not store participants: %w", err)
			}
			directory.Invalidate()

			slog.Info("participants seeded", "count", len(participants))
			return nil
		},
	}
	return &seed
}
