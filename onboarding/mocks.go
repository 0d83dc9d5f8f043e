package onboarding

import (
	"context"

	"github.com/stretchr/testify/mock"

	"onboarder/models"
)

// MockRoster is a mock implementation of Roster
type MockRoster struct {
	mock.Mock
}

func (m *MockRoster) Lookup(email string) (*models.LearnerRecord, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnerRecord), args.Error(1)
}

// MockRecordAppender is a mock implementation of RecordAppender
type MockRecordAppender struct {
	mock.Mock
}

func (m *MockRecordAppender) AppendRow(ctx context.Context, values []interface{}) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

// MockGuildGateway is a mock implementation of GuildGateway
type MockGuildGateway struct {
	mock.Mock
}

func (m *MockGuildGateway) SendDM(ctx context.Context, userID, content string) error {
	args := m.Called(ctx, userID, content)
	return args.Error(0)
}

func (m *MockGuildGateway) AssignRole(ctx context.Context, guildID, userID, roleName string) error {
	args := m.Called(ctx, guildID, userID, roleName)
	return args.Error(0)
}

func (m *MockGuildGateway) GrantChannelAccess(ctx context.Context, channelID, userID string) error {
	args := m.Called(ctx, channelID, userID)
	return args.Error(0)
}
