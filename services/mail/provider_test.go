package mail

import (
	"context"
	"testing"
	"time"

	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/logging"
	"github.com/feedchain/backend/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestProvideNotifier(t *testing.T) {
	cfg := testutils.GetTestConfig()
	db := testutils.SetupTestDB(t, models.All()...)

	t.Run("mail disabled", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		assert.Nil(t, ProvideNotifier(lc, cfg, db, nil, logging.NewNop()))
	})

	t.Run("stop drains pending sends", func(t *testing.T) {
		client := &MockMailClient{}
		svc, err := NewServiceWithClient(getTestMailConfig(), logging.NewNop(), client)
		require.NoError(t, err)

		donor := testutils.CreateUser(t, db, "owner@example.com", models.RoleDonor)
		post := testutils.CreateFoodPost(t, db, donor.ID, models.FoodPostClaimed, time.Now().Add(time.Hour))

		lc := fxtest.NewLifecycle(t)
		notifier := ProvideNotifier(lc, cfg, db, svc, logging.NewNop())
		require.NotNil(t, notifier)

		lc.RequireStart()
		notifier.FoodClaimed(context.Background(), post, models.Claim{ID: "c"})
		lc.RequireStop()

		assert.Len(t, client.messages, 1)
	})
}
