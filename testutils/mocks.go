package testutils

import (
	"context"

	"github.com/feedchain/backend/models"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) FoodClaimed(ctx context.Context, post models.FoodPost, claim models.Claim) {
	m.Called(ctx, post, claim)
}

func (m *MockNotifier) FoodDistributed(ctx context.Context, post models.FoodPost, claim models.Claim) {
	m.Called(ctx, post, claim)
}

type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
