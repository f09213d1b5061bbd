package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

type CredentialService struct {
	mock.Mock
}

var _ shared.CredentialService = (*CredentialService)(nil)

func NewCredentialService(t testingT) *CredentialService {
	m := &CredentialService{}
	register(&m.Mock, t)
	return m
}

func (m *CredentialService) IssueCredential(ctx context.Context, batchID uuid.UUID, issuer dtos.IssuerIdentity) (models.Credential, error) {
	args := m.Called(ctx, batchID, issuer)
	return get[models.Credential](args, 0), args.Error(1)
}

func (m *CredentialService) RevokeCredential(ctx context.Context, credentialID string, actor dtos.Actor, reason string) (models.Credential, error) {
	args := m.Called(ctx, credentialID, actor, reason)
	return get[models.Credential](args, 0), args.Error(1)
}

func (m *CredentialService) VerifyCredential(ctx context.Context, credentialID string) (dtos.VerificationReport, error) {
	args := m.Called(ctx, credentialID)
	return get[dtos.VerificationReport](args, 0), args.Error(1)
}

func (m *CredentialService) GetCredentialByBatch(ctx context.Context, batchID uuid.UUID) (models.Credential, error) {
	args := m.Called(ctx, batchID)
	return get[models.Credential](args, 0), args.Error(1)
}

func (m *CredentialService) GetCredential(ctx context.Context, credentialID string) (models.Credential, error) {
	args := m.Called(ctx, credentialID)
	return get[models.Credential](args, 0), args.Error(1)
}

func (m *CredentialService) RenderQRCode(ctx context.Context, credentialID string, compact bool) (string, []byte, error) {
	args := m.Called(ctx, credentialID, compact)
	return args.String(0), get[[]byte](args, 1), args.Error(2)
}

func (m *CredentialService) ExpireCredentials(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
