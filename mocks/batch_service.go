package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

type BatchService struct {
	mock.Mock
}

var _ shared.BatchService = (*BatchService)(nil)

func NewBatchService(t testingT) *BatchService {
	m := &BatchService{}
	register(&m.Mock, t)
	return m
}

func (m *BatchService) CreateBatch(ctx context.Context, req dtos.CreateBatchRequest, ownerID string) (models.Batch, error) {
	args := m.Called(ctx, req, ownerID)
	return get[models.Batch](args, 0), args.Error(1)
}

func (m *BatchService) UpdateBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor, req dtos.UpdateBatchRequest) (models.Batch, error) {
	args := m.Called(ctx, id, actor, req)
	return get[models.Batch](args, 0), args.Error(1)
}

func (m *BatchService) AddDocument(ctx context.Context, id uuid.UUID, actor dtos.Actor, req dtos.AddDocumentRequest) (models.Batch, error) {
	args := m.Called(ctx, id, actor, req)
	return get[models.Batch](args, 0), args.Error(1)
}

func (m *BatchService) RejectBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor, reason string) (models.Batch, error) {
	args := m.Called(ctx, id, actor, reason)
	return get[models.Batch](args, 0), args.Error(1)
}

func (m *BatchService) ReadBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor) (models.Batch, error) {
	args := m.Called(ctx, id, actor)
	return get[models.Batch](args, 0), args.Error(1)
}

func (m *BatchService) BatchStatistics(ctx context.Context, actor dtos.Actor) (dtos.BatchStatsDTO, error) {
	args := m.Called(ctx, actor)
	return get[dtos.BatchStatsDTO](args, 0), args.Error(1)
}
