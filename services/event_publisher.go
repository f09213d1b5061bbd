// Copyright (C) 2025 l3montree GmbH
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

package services

import (
	"context"
	"log/slog"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/shared"
)

// BrokerEventPublisher forwards committed transitions to the pubsub broker.
// Publishing is best effort, a failure is logged and never undoes the transition.
type BrokerEventPublisher struct {
	broker shared.PubSubBroker
}

var _ shared.EventPublisher = (*BrokerEventPublisher)(nil)

func NewBrokerEventPublisher(broker shared.PubSubBroker) *BrokerEventPublisher {
	return &BrokerEventPublisher{broker: broker}
}

func StatusChangeMessage(batch models.Batch, event models.BatchStatusEvent) shared.PubSubMessage {
	return shared.NewSimplePubSubMessage(shared.BatchStatusChanged, map[string]any{
		"id":        batch.ID.String(),
		"batchId":   batch.BatchID,
		"status":    string(event.Status),
		"changedBy": event.ChangedBy,
		"changedAt": event.CreatedAt,
		"remarks":   event.Remarks,
	})
}

func (p *BrokerEventPublisher) PublishStatusChange(ctx context.Context, batch models.Batch, event models.BatchStatusEvent) {
	if err := p.broker.Publish(ctx, StatusChangeMessage(batch, event)); err != nil {
		slog.Warn("could not publish batch status change", "batchId", batch.BatchID, "status", event.Status, "err", err)
	}
}
