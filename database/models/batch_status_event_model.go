package models

import (
	"time"

	"github.com/certifarm/certifarm/dtos"
	"github.com/google/uuid"
)

// BatchStatusEvent is one entry of a batch's append-only status history.
type BatchStatusEvent struct {
	ID        uuid.UUID        `json:"id" gorm:"primarykey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time        `json:"changedAt"`
	BatchID   uuid.UUID        `json:"batchId" gorm:"type:uuid;not null;index"`
	Status    dtos.BatchStatus `json:"status" gorm:"type:text;not null"`
	ChangedBy string           `json:"changedBy" gorm:"type:text;not null"`
	Remarks   string           `json:"remarks" gorm:"type:text"`
}

func (e BatchStatusEvent) TableName() string {
	return "batch_status_events"
}

func NewBatchStatusEvent(batchID uuid.UUID, status dtos.BatchStatus, changedBy, remarks string, at time.Time) BatchStatusEvent {
	return BatchStatusEvent{
		ID:        uuid.New(),
		CreatedAt: at,
		BatchID:   batchID,
		Status:    status,
		ChangedBy: changedBy,
		Remarks:   remarks,
	}
}
