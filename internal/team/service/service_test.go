package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	teamModel "github.com/idleforest/team-service/internal/team/model"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetByID(ctx context.Context, teamID string) (*teamModel.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*teamModel.Team), args.Error(1)
}

func (m *mockRepository) IsOwner(ctx context.Context, teamID, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) MemberCount(ctx context.Context, teamID string) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) GetTeamMembers(ctx context.Context, teamID string) ([]teamModel.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]teamModel.TeamMember), args.Error(1)
}

func TestService_GetTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("empty team id", func(t *testing.T) {
		mockRepo := new(mockRepository)
		svc := New(mockRepo, zap.NewNop().Sugar())

		resp, err := svc.GetTeam(ctx, "")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, teamModel.ErrInvalidTeamID)
	})

	t.Run("team not found", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("GetByID", ctx, "missing").Return(nil, teamModel.ErrTeamNotFound)
		svc := New(mockRepo, zap.NewNop().Sugar())

		resp, err := svc.GetTeam(ctx, "missing")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})

	t.Run("team with members", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("GetByID", ctx, "team-1").Return(&teamModel.Team{
			ID:        "team-1",
			Name:      "Forest Rangers",
			CreatedBy: "user-1",
		}, nil)
		mockRepo.On("GetTeamMembers", ctx, "team-1").Return([]teamModel.TeamMember{
			{UserID: "user-1", DisplayName: "Alice", ContributionPoints: 120},
			{UserID: "user-2", DisplayName: "Bob", ContributionPoints: 40},
		}, nil)
		svc := New(mockRepo, zap.NewNop().Sugar())

		resp, err := svc.GetTeam(ctx, "team-1")

		require.NoError(t, err)
		assert.Equal(t, "team-1", resp.ID)
		assert.Equal(t, "Forest Rangers", resp.Name)
		assert.Len(t, resp.Members, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("members query fails", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("GetByID", ctx, "team-1").Return(&teamModel.Team{ID: "team-1", Name: "Forest Rangers"}, nil)
		mockRepo.On("GetTeamMembers", ctx, "team-1").Return(nil, errors.New("db down"))
		svc := New(mockRepo, zap.NewNop().Sugar())

		resp, err := svc.GetTeam(ctx, "team-1")

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}
