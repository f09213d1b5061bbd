package daemons

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/certifarm/certifarm/mocks"
	"github.com/certifarm/certifarm/shared"
)

func TestRunOnce(t *testing.T) {
	t.Run("should report the number of expired credentials", func(t *testing.T) {
		service := mocks.NewCredentialService(t)
		service.On("ExpireCredentials", mock.Anything).Return(2, nil).Once()

		expired, err := NewExpiryDaemon(service, shared.Config{}).RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, expired)
	})

	t.Run("should wrap storage errors", func(t *testing.T) {
		service := mocks.NewCredentialService(t)
		service.On("ExpireCredentials", mock.Anything).Return(0, shared.ErrUnavailable).Once()

		_, err := NewExpiryDaemon(service, shared.Config{}).RunOnce(context.Background())
		assert.True(t, errors.Is(err, shared.ErrUnavailable))
	})
}

func TestNewExpiryDaemon(t *testing.T) {
	daemon := NewExpiryDaemon(mocks.NewCredentialService(t), shared.Config{})
	assert.Equal(t, shared.DefaultExpirySweepInterval, daemon.interval)
}

func TestStart(t *testing.T) {
	service := mocks.NewCredentialService(t)
	swept := make(chan struct{}, 4)
	service.On("ExpireCredentials", mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
		select {
		case swept <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	NewExpiryDaemon(service, shared.Config{ExpirySweepInterval: 10 * time.Millisecond}).Start(ctx)

	for range 2 {
		select {
		case <-swept:
		case <-time.After(time.Second):
			t.Fatal("expected the daemon to sweep")
		}
	}
	cancel()
}
