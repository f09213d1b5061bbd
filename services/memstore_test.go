package services

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

// memStore is an in-memory stand-in for postgres. Transactions are serialized and
// rolled back on error, conditional updates behave like their sql counterparts.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	batches      map[uuid.UUID]models.Batch
	events       []models.BatchStatusEvent
	inspections  map[uuid.UUID]models.Inspection
	credentials  map[uuid.UUID]models.Credential
	participants map[string]models.Participant

	// afterBatchRead runs once the batch was read and the lock released, tests use it as a barrier
	afterBatchRead func()
	// incrementErr makes the verification counter fail
	incrementErr error
}

func newMemStore() *memStore {
	return &memStore{
		batches:      map[uuid.UUID]models.Batch{},
		inspections:  map[uuid.UUID]models.Inspection{},
		credentials:  map[uuid.UUID]models.Credential{},
		participants: map[string]models.Participant{},
	}
}

type memSnapshot struct {
	batches     map[uuid.UUID]models.Batch
	events      []models.BatchStatusEvent
	inspections map[uuid.UUID]models.Inspection
	credentials map[uuid.UUID]models.Credential
}

func (s *memStore) transaction(f func(tx shared.DB) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := memSnapshot{
		batches:     maps.Clone(s.batches),
		events:      slices.Clone(s.events),
		inspections: maps.Clone(s.inspections),
		credentials: maps.Clone(s.credentials),
	}
	s.mu.Unlock()

	if err := f(nil); err != nil {
		s.mu.Lock()
		s.batches, s.events, s.inspections, s.credentials = snap.batches, snap.events, snap.inspections, snap.credentials
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) history(batchID uuid.UUID) []models.BatchStatusEvent {
	var res []models.BatchStatusEvent
	for _, e := range s.events {
		if e.BatchID == batchID {
			res = append(res, e)
		}
	}
	return res
}

// memTransactioner implements the transaction part shared by every repository
type memTransactioner struct {
	store *memStore
}

func (m memTransactioner) Transaction(f func(tx shared.DB) error) error {
	return m.store.transaction(f)
}

func (m memTransactioner) GetDB(tx shared.DB) shared.DB { return tx }

type memBatchRepository struct {
	memTransactioner
}

var _ shared.BatchRepository = memBatchRepository{}

func (r memBatchRepository) Create(tx shared.DB, b *models.Batch) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.batches {
		if existing.BatchID == b.BatchID || existing.ID == b.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	stored := *b
	stored.StatusHistory = nil
	s.batches[b.ID] = stored
	return nil
}

func (r memBatchRepository) Read(id uuid.UUID) (models.Batch, error) {
	r.store.mu.Lock()
	b, ok := r.store.batches[id]
	r.store.mu.Unlock()
	if !ok {
		return models.Batch{}, gorm.ErrRecordNotFound
	}
	if r.store.afterBatchRead != nil {
		r.store.afterBatchRead()
	}
	b.Documents = slices.Clone(b.Documents)
	return b, nil
}

func (r memBatchRepository) ReadWithHistory(id uuid.UUID) (models.Batch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.batches[id]
	if !ok {
		return models.Batch{}, gorm.ErrRecordNotFound
	}
	b.StatusHistory = r.store.history(id)
	return b, nil
}

func (r memBatchRepository) UpdateDetails(tx shared.DB, batch *models.Batch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.batches[batch.ID]
	if !ok || (stored.Status != dtos.BatchStatusSubmitted && stored.Status != dtos.BatchStatusUnderInspection) {
		return shared.ErrConflict
	}
	stored.Product, stored.Origin, stored.Destination = batch.Product, batch.Origin, batch.Destination
	stored.Notes, stored.Priority, stored.UpdatedAt = batch.Notes, batch.Priority, batch.UpdatedAt
	r.store.batches[batch.ID] = stored
	return nil
}

func (r memBatchRepository) AppendDocument(tx shared.DB, id uuid.UUID, document models.Document) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.batches[id]
	if !ok {
		return false, nil
	}
	stored.Documents = append(slices.Clone(stored.Documents), document)
	r.store.batches[id] = stored
	return true, nil
}

func (r memBatchRepository) AssignQA(tx shared.DB, id uuid.UUID, qaID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored := r.store.batches[id]
	stored.AssignedQAID = &qaID
	r.store.batches[id] = stored
	return nil
}

// update applies f if the stored batch matches cond
func (r memBatchRepository) update(id uuid.UUID, cond func(models.Batch) bool, f func(*models.Batch)) bool {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.batches[id]
	if !ok || !cond(stored) {
		return false
	}
	f(&stored)
	stored.UpdatedAt = time.Now()
	r.store.batches[id] = stored
	return true
}

func (r memBatchRepository) AttachInspection(tx shared.DB, id uuid.UUID, inspectionID uuid.UUID) (bool, error) {
	return r.update(id, func(b models.Batch) bool {
		return b.Status == dtos.BatchStatusSubmitted && b.InspectionID == nil
	}, func(b *models.Batch) {
		b.Status = dtos.BatchStatusUnderInspection
		b.InspectionID = &inspectionID
	}), nil
}

func (r memBatchRepository) AttachCredential(tx shared.DB, id uuid.UUID, credentialID uuid.UUID) (bool, error) {
	return r.update(id, func(b models.Batch) bool {
		return b.Status == dtos.BatchStatusInspectionComplete && b.CredentialID == nil
	}, func(b *models.Batch) {
		b.Status = dtos.BatchStatusCertified
		b.CredentialID = &credentialID
	}), nil
}

func (r memBatchRepository) TransitionStatus(tx shared.DB, id uuid.UUID, from, to dtos.BatchStatus) (bool, error) {
	return r.update(id, func(b models.Batch) bool {
		return b.Status == from
	}, func(b *models.Batch) {
		b.Status = to
	}), nil
}

func (r memBatchRepository) matching(scope shared.BatchScope) []models.Batch {
	var res []models.Batch
	for _, b := range r.store.batches {
		if scope.OwnerID != nil && b.OwnerID != *scope.OwnerID {
			continue
		}
		if scope.AssignedQAID != nil && (b.AssignedQAID == nil || *b.AssignedQAID != *scope.AssignedQAID) {
			continue
		}
		res = append(res, b)
	}
	return res
}

func (r memBatchRepository) CountByStatus(scope shared.BatchScope) (map[dtos.BatchStatus]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res := map[dtos.BatchStatus]int64{}
	for _, b := range r.matching(scope) {
		res[b.Status]++
	}
	return res, nil
}

func (r memBatchRepository) CountCreatedSince(scope shared.BatchScope, since time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, b := range r.matching(scope) {
		if !b.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type memEventRepository struct {
	store *memStore
}

var _ shared.BatchStatusEventRepository = memEventRepository{}

func (r memEventRepository) Create(tx shared.DB, event *models.BatchStatusEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events = append(r.store.events, *event)
	return nil
}

type memInspectionRepository struct {
	memTransactioner
}

var _ shared.InspectionRepository = memInspectionRepository{}

func (r memInspectionRepository) Create(tx shared.DB, i *models.Inspection) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.inspections {
		if existing.BatchID == i.BatchID {
			return gorm.ErrDuplicatedKey
		}
	}
	now := time.Now()
	i.CreatedAt, i.UpdatedAt = now, now
	r.store.inspections[i.ID] = *i
	return nil
}

func (r memInspectionRepository) Read(id uuid.UUID) (models.Inspection, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	i, ok := r.store.inspections[id]
	if !ok {
		return models.Inspection{}, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r memInspectionRepository) Finalize(tx shared.DB, inspection *models.Inspection) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	stored, ok := r.store.inspections[inspection.ID]
	if !ok || stored.OverallResult != dtos.InspectionResultPending {
		return false, nil
	}
	r.store.inspections[inspection.ID] = *inspection
	return true, nil
}

type memCredentialRepository struct {
	memTransactioner
}

var _ shared.CredentialRepository = memCredentialRepository{}

func (r memCredentialRepository) Create(tx shared.DB, c *models.Credential) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.credentials {
		if existing.BatchID == c.BatchID || existing.CredentialID == c.CredentialID {
			return gorm.ErrDuplicatedKey
		}
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.store.credentials[c.ID] = *c
	return nil
}

func (r memCredentialRepository) Read(id uuid.UUID) (models.Credential, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.credentials[id]
	if !ok {
		return models.Credential{}, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r memCredentialRepository) find(pred func(models.Credential) bool) (models.Credential, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.credentials {
		if pred(c) {
			return c, nil
		}
	}
	return models.Credential{}, gorm.ErrRecordNotFound
}

func (r memCredentialRepository) FindByCredentialID(credentialID string) (models.Credential, error) {
	return r.find(func(c models.Credential) bool { return c.CredentialID == credentialID })
}

func (r memCredentialRepository) FindByBatchID(batchID uuid.UUID) (models.Credential, error) {
	return r.find(func(c models.Credential) bool { return c.BatchID == batchID })
}

func (r memCredentialRepository) IncrementVerificationCount(tx shared.DB, id uuid.UUID, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.incrementErr != nil {
		return r.store.incrementErr
	}
	c := r.store.credentials[id]
	c.VerificationCount++
	c.LastVerifiedAt = &at
	r.store.credentials[id] = c
	return nil
}

func (r memCredentialRepository) Revoke(tx shared.DB, id uuid.UUID, revokedBy, reason string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.credentials[id]
	if !ok || c.Status == dtos.CredentialStatusRevoked {
		return false, nil
	}
	c.Status = dtos.CredentialStatusRevoked
	c.RevokedAt, c.RevokedBy, c.RevocationReason = &at, &revokedBy, &reason
	r.store.credentials[id] = c
	return true, nil
}

func (r memCredentialRepository) ExpireBefore(tx shared.DB, now time.Time) ([]models.Credential, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var expired []models.Credential
	for id, c := range r.store.credentials {
		if c.Status == dtos.CredentialStatusActive && c.ExpiresAt.Before(now) {
			c.Status = dtos.CredentialStatusExpired
			r.store.credentials[id] = c
			expired = append(expired, c)
		}
	}
	return expired, nil
}

type memParticipantRepository struct {
	store *memStore
}

var _ shared.ParticipantRepository = memParticipantRepository{}

func (r memParticipantRepository) Read(id string) (models.Participant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.participants[id]
	if !ok {
		return models.Participant{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

// sorted returns every participant ordered by id
func (r memParticipantRepository) sorted() []models.Participant {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	res := slices.Collect(maps.Values(r.store.participants))
	slices.SortFunc(res, func(a, b models.Participant) int {
		return strings.Compare(a.ID, b.ID)
	})
	return res
}

func (r memParticipantRepository) FindActiveByRole(role dtos.Role) ([]models.Participant, error) {
	all := r.sorted()
	var res []models.Participant
	for _, p := range all {
		if p.Role == role && p.Active {
			res = append(res, p)
		}
	}
	return res, nil
}

func (r memParticipantRepository) Upsert(tx shared.DB, participants []models.Participant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range participants {
		r.store.participants[p.ID] = p
	}
	return nil
}
