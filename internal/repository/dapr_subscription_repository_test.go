package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	dapr "github.com/dapr/go-sdk/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsletter-go/internal/models"
)

type mockStateSaver struct {
	mock.Mock
}

func (m *mockStateSaver) SaveState(ctx context.Context, storeName, key string, data []byte, meta map[string]string, so ...dapr.StateOption) error {
	args := m.Called(ctx, storeName, key, data, meta)
	return args.Error(0)
}

func TestDaprSubscriptionRepository_Insert(t *testing.T) {
	subscription := newTestSubscription(t)

	t.Run("saves json document", func(t *testing.T) {
		saver := &mockStateSaver{}
		saver.On("SaveState", mock.Anything, "statestore", StateKey(subscription), mock.Anything, map[string]string(nil)).
			Return(nil).
			Run(func(args mock.Arguments) {
				var stored models.Subscription
				require.NoError(t, json.Unmarshal(args.Get(3).([]byte), &stored))
				assert.Equal(t, subscription.ID, stored.ID)
				assert.Equal(t, subscription.Email, stored.Email)
				assert.Equal(t, subscription.Name, stored.Name)
			})

		repo := NewDaprSubscriptionRepository(saver, "statestore")
		require.NoError(t, repo.Insert(context.Background(), subscription))
		saver.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		saver := &mockStateSaver{}
		saver.On("SaveState", mock.Anything, "statestore", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("sidecar unavailable"))

		repo := NewDaprSubscriptionRepository(saver, "statestore")
		err := repo.Insert(context.Background(), subscription)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sidecar unavailable")
	})
}
