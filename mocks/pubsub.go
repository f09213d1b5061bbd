package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/shared"
)

type eventStream = <-chan map[string]any

type PubSubBroker struct {
	mock.Mock
}

var _ shared.PubSubBroker = (*PubSubBroker)(nil)

func NewPubSubBroker(t testingT) *PubSubBroker {
	m := &PubSubBroker{}
	register(&m.Mock, t)
	return m
}

func (m *PubSubBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *PubSubBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	args := m.Called(topic)
	return get[eventStream](args, 0), args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

var _ shared.EventPublisher = (*EventPublisher)(nil)

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	register(&m.Mock, t)
	return m
}

func (m *EventPublisher) PublishStatusChange(ctx context.Context, batch models.Batch, event models.BatchStatusEvent) {
	m.Called(ctx, batch, event)
}

type AssignmentStrategy struct {
	mock.Mock
}

var _ shared.AssignmentStrategy = (*AssignmentStrategy)(nil)

func NewAssignmentStrategy(t testingT) *AssignmentStrategy {
	m := &AssignmentStrategy{}
	register(&m.Mock, t)
	return m
}

func (m *AssignmentStrategy) Assign(batch models.Batch) (*string, error) {
	args := m.Called(batch)
	return get[*string](args, 0), args.Error(1)
}
