package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

type InspectionService struct {
	mock.Mock
}

var _ shared.InspectionService = (*InspectionService)(nil)

func NewInspectionService(t testingT) *InspectionService {
	m := &InspectionService{}
	register(&m.Mock, t)
	return m
}

func (m *InspectionService) StartInspection(ctx context.Context, batchID uuid.UUID, inspectorID string, inspectionType dtos.InspectionType) (models.Inspection, error) {
	args := m.Called(ctx, batchID, inspectorID, inspectionType)
	return get[models.Inspection](args, 0), args.Error(1)
}

func (m *InspectionService) SubmitInspectionResult(ctx context.Context, inspectionID uuid.UUID, actor dtos.Actor, req dtos.SubmitInspectionRequest) (models.Inspection, error) {
	args := m.Called(ctx, inspectionID, actor, req)
	return get[models.Inspection](args, 0), args.Error(1)
}

func (m *InspectionService) ReadInspection(ctx context.Context, inspectionID uuid.UUID) (models.Inspection, error) {
	args := m.Called(ctx, inspectionID)
	return get[models.Inspection](args, 0), args.Error(1)
}
