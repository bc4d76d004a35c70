package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inviteModel "github.com/idleforest/team-service/internal/invite/model"
	inviteRepository "github.com/idleforest/team-service/internal/invite/repository"
	"github.com/idleforest/team-service/internal/membership/model"
	"github.com/idleforest/team-service/internal/membership/repository"
	teamRepository "github.com/idleforest/team-service/internal/team/repository"
)

type testTeam struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	CreatedBy string    `gorm:"column:created_by;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (testTeam) TableName() string {
	return "teams"
}

type testMembership struct {
	ID                 string    `gorm:"primaryKey;column:id"`
	TeamID             string    `gorm:"column:team_id;not null"`
	UserID             string    `gorm:"column:user_id;not null;uniqueIndex"`
	ContributionPoints int64     `gorm:"column:contribution_points;not null;default:0"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (testMembership) TableName() string {
	return "team_members"
}

type testInvite struct {
	ID            string     `gorm:"primaryKey;column:id"`
	TeamID        string     `gorm:"column:team_id;not null"`
	CreatedBy     string     `gorm:"column:created_by;not null"`
	Code          string     `gorm:"column:code;not null;uniqueIndex"`
	UsesRemaining *int       `gorm:"column:uses_remaining"`
	ExpiresAt     *time.Time `gorm:"column:expires_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
}

func (testInvite) TableName() string {
	return "invites"
}

type recordedUse struct {
	inviteID    string
	userID      string
	teamID      string
	isNewSignup bool
}

type captureRecorder struct {
	mu      sync.Mutex
	records []recordedUse
}

func (r *captureRecorder) Record(inviteID, userID, teamID string, isNewSignup bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, recordedUse{inviteID, userID, teamID, isNewSignup})
}

func setupService(t *testing.T) (Service, *gorm.DB, *captureRecorder) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testTeam{}, &testMembership{}, &testInvite{}))

	logger := zap.NewNop().Sugar()
	rec := &captureRecorder{}
	svc := New(
		repository.New(db, logger),
		inviteRepository.New(db, logger),
		teamRepository.New(db, logger),
		rec,
		db,
		logger,
	)

	return svc, db, rec
}

func seedTeam(t *testing.T, db *gorm.DB, id, name, createdBy string) {
	t.Helper()
	require.NoError(t, db.Create(&testTeam{ID: id, Name: name, CreatedBy: createdBy, CreatedAt: time.Now()}).Error)
}

func seedMember(t *testing.T, db *gorm.DB, id, teamID, userID string) {
	t.Helper()
	require.NoError(t, db.Create(&testMembership{ID: id, TeamID: teamID, UserID: userID, CreatedAt: time.Now()}).Error)
}

func seedInvite(t *testing.T, db *gorm.DB, id, teamID, createdBy, code string, uses *int, expiresAt *time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&testInvite{
		ID: id, TeamID: teamID, CreatedBy: createdBy, Code: code,
		UsesRemaining: uses, ExpiresAt: expiresAt, CreatedAt: time.Now(),
	}).Error)
}

func membershipRows(t *testing.T, db *gorm.DB, userID string) []testMembership {
	t.Helper()
	var rows []testMembership
	require.NoError(t, db.Where("user_id = ?", userID).Find(&rows).Error)
	return rows
}

func usesRemaining(t *testing.T, db *gorm.DB, inviteID string) *int {
	t.Helper()
	var invite testInvite
	require.NoError(t, db.Where("id = ?", inviteID).First(&invite).Error)
	return invite.UsesRemaining
}

func intPtr(v int) *int {
	return &v
}

func TestService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("joins team with no prior membership", func(t *testing.T) {
		svc, db, rec := setupService(t)
		seedTeam(t, db, "team-1", "Forest Rangers", "creator-1")
		seedInvite(t, db, "inv-1", "team-1", "creator-1", "code-1", intPtr(5), nil)

		resp, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: "code-1", IsNewSignup: true})

		require.NoError(t, err)
		assert.Equal(t, model.JoinStatusJoined, resp.Status)
		assert.Equal(t, "team-1", resp.Team.ID)
		assert.Equal(t, "Forest Rangers", resp.Team.Name)

		rows := membershipRows(t, db, "user-a")
		require.Len(t, rows, 1)
		assert.Equal(t, "team-1", rows[0].TeamID)
		assert.Equal(t, 4, *usesRemaining(t, db, "inv-1"))

		require.Len(t, rec.records, 1)
		assert.Equal(t, recordedUse{"inv-1", "user-a", "team-1", true}, rec.records[0])
	})

	t.Run("unlimited invite keeps nil uses", func(t *testing.T) {
		svc, db, _ := setupService(t)
		seedTeam(t, db, "team-1", "Forest Rangers", "creator-1")
		seedInvite(t, db, "inv-1", "team-1", "creator-1", "code-1", nil, nil)

		_, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: "code-1"})

		require.NoError(t, err)
		assert.Nil(t, usesRemaining(t, db, "inv-1"))
	})

	t.Run("unknown code", func(t *testing.T) {
		svc, _, rec := setupService(t)

		resp, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: "nope"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, inviteModel.ErrInviteNotFound)
		assert.Empty(t, rec.records)
	})

	t.Run("empty code", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: ""})

		assert.ErrorIs(t, err, inviteModel.ErrInviteNotFound)
	})

	t.Run("already member performs no mutation", func(t *testing.T) {
		svc, db, rec := setupService(t)
		seedTeam(t, db, "team-1", "Forest Rangers", "creator-1")
		seedInvite(t, db, "inv-1", "team-1", "creator-1", "code-1", intPtr(5), nil)
		seedMember(t, db, "m-1", "team-1", "user-a")

		resp, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: "code-1", ConfirmSwitch: true})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, model.ErrAlreadyMember)
		assert.Len(t, membershipRows(t, db, "user-a"), 1)
		assert.Equal(t, 5, *usesRemaining(t, db, "inv-1"))
		assert.Empty(t, rec.records)
	})

	t.Run("different team without confirmation", func(t *testing.T) {
		svc, db, rec := setupService(t)
		seedTeam(t, db, "team-s", "Team S", "creator-s")
		seedTeam(t, db, "team-t", "Team T", "creator-t")
		seedInvite(t, db, "inv-1", "team-t", "creator-t", "code-t", intPtr(5), nil)
		seedMember(t, db, "m-1", "team-s", "user-b")

		resp, err := svc.Join(ctx, "user-b", &model.JoinRequest{InviteCode: "code-t"})

		assert.Nil(t, resp)
		var confirmation *model.ConfirmationRequiredError
		require.ErrorAs(t, err, &confirmation)
		assert.Equal(t, "team-s", confirmation.CurrentTeamID)
		assert.Equal(t, "Team S", confirmation.CurrentTeamName)

		rows := membershipRows(t, db, "user-b")
		require.Len(t, rows, 1)
		assert.Equal(t, "team-s", rows[0].TeamID)
		assert.Equal(t, 5, *usesRemaining(t, db, "inv-1"))
		assert.Empty(t, rec.records)
	})

	t.Run("confirmed switch leaves old team and joins new", func(t *testing.T) {
		svc, db, _ := setupService(t)
		seedTeam(t, db, "team-s", "Team S", "creator-s")
		seedTeam(t, db, "team-t", "Team T", "creator-t")
		seedInvite(t, db, "inv-1", "team-t", "creator-t", "code-t", intPtr(5), nil)
		seedMember(t, db, "m-1", "team-s", "user-b")

		resp, err := svc.Join(ctx, "user-b", &model.JoinRequest{InviteCode: "code-t", ConfirmSwitch: true})

		require.NoError(t, err)
		assert.Equal(t, "team-t", resp.Team.ID)

		rows := membershipRows(t, db, "user-b")
		require.Len(t, rows, 1)
		assert.Equal(t, "team-t", rows[0].TeamID)
		assert.Equal(t, 4, *usesRemaining(t, db, "inv-1"))
	})

	t.Run("owner cannot switch regardless of confirmation", func(t *testing.T) {
		for _, confirmed := range []bool{false, true} {
			t.Run(fmt.Sprintf("confirm_switch=%v", confirmed), func(t *testing.T) {
				svc, db, _ := setupService(t)
				seedTeam(t, db, "team-s", "Team S", "owner-1")
				seedTeam(t, db, "team-t", "Team T", "creator-t")
				seedInvite(t, db, "inv-1", "team-t", "creator-t", "code-t", intPtr(5), nil)
				seedMember(t, db, "m-1", "team-s", "owner-1")

				resp, err := svc.Join(ctx, "owner-1", &model.JoinRequest{InviteCode: "code-t", ConfirmSwitch: confirmed})

				assert.Nil(t, resp)
				var ownerErr *model.OwnerCannotSwitchError
				require.ErrorAs(t, err, &ownerErr)
				assert.Equal(t, "team-s", ownerErr.OwnedTeamID)
				assert.Equal(t, "Team S", ownerErr.OwnedTeamName)

				rows := membershipRows(t, db, "owner-1")
				require.Len(t, rows, 1)
				assert.Equal(t, "team-s", rows[0].TeamID)
				assert.Equal(t, 5, *usesRemaining(t, db, "inv-1"))
			})
		}
	})

	t.Run("single use invite exhausts after first redemption", func(t *testing.T) {
		svc, db, _ := setupService(t)
		seedTeam(t, db, "team-1", "Forest Rangers", "creator-1")
		seedInvite(t, db, "inv-1", "team-1", "creator-1", "code-1", intPtr(1), nil)

		_, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: "code-1"})
		require.NoError(t, err)
		assert.Equal(t, 0, *usesRemaining(t, db, "inv-1"))

		_, err = svc.Join(ctx, "user-b", &model.JoinRequest{InviteCode: "code-1"})
		assert.ErrorIs(t, err, inviteModel.ErrInviteExhausted)
		assert.Empty(t, membershipRows(t, db, "user-b"))
		assert.Equal(t, 0, *usesRemaining(t, db, "inv-1"))
	})

	t.Run("expired invite wins over remaining uses", func(t *testing.T) {
		svc, db, _ := setupService(t)
		seedTeam(t, db, "team-1", "Forest Rangers", "creator-1")
		past := time.Now().Add(-time.Hour)
		seedInvite(t, db, "inv-1", "team-1", "creator-1", "code-1", intPtr(5), &past)

		resp, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: "code-1"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, inviteModel.ErrInviteExpired)
		assert.Empty(t, membershipRows(t, db, "user-a"))
	})

	t.Run("invite pointing at deleted team reads as not found", func(t *testing.T) {
		svc, db, _ := setupService(t)
		seedInvite(t, db, "inv-1", "team-gone", "creator-1", "code-1", intPtr(5), nil)

		_, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: "code-1"})

		assert.ErrorIs(t, err, inviteModel.ErrInviteNotFound)
	})
}

func TestService_Join_EndToEndScenario(t *testing.T) {
	ctx := context.Background()
	svc, db, rec := setupService(t)

	seedTeam(t, db, "team-s", "Team S", "owner-s")
	seedTeam(t, db, "team-t", "Team T", "creator-c")
	seedMember(t, db, "m-b", "team-s", "user-b")

	expiresAt := time.Now().AddDate(0, 0, 7)
	seedInvite(t, db, "inv-1", "team-t", "creator-c", "code-t", intPtr(2), &expiresAt)

	// A has no prior team and joins directly.
	resp, err := svc.Join(ctx, "user-a", &model.JoinRequest{InviteCode: "code-t"})
	require.NoError(t, err)
	assert.Equal(t, "team-t", resp.Team.ID)
	assert.Equal(t, 1, *usesRemaining(t, db, "inv-1"))

	// B is in another team and must confirm first.
	_, err = svc.Join(ctx, "user-b", &model.JoinRequest{InviteCode: "code-t"})
	var confirmation *model.ConfirmationRequiredError
	require.ErrorAs(t, err, &confirmation)
	assert.Equal(t, "team-s", confirmation.CurrentTeamID)
	assert.Equal(t, "Team S", confirmation.CurrentTeamName)
	assert.Equal(t, 1, *usesRemaining(t, db, "inv-1"))

	// B confirms and switches.
	resp, err = svc.Join(ctx, "user-b", &model.JoinRequest{InviteCode: "code-t", ConfirmSwitch: true})
	require.NoError(t, err)
	assert.Equal(t, "team-t", resp.Team.ID)
	rows := membershipRows(t, db, "user-b")
	require.Len(t, rows, 1)
	assert.Equal(t, "team-t", rows[0].TeamID)
	assert.Equal(t, 0, *usesRemaining(t, db, "inv-1"))

	// D finds the invite spent.
	_, err = svc.Join(ctx, "user-d", &model.JoinRequest{InviteCode: "code-t"})
	assert.ErrorIs(t, err, inviteModel.ErrInviteExhausted)
	assert.Empty(t, membershipRows(t, db, "user-d"))

	// Only the two successful redemptions were recorded.
	assert.Len(t, rec.records, 2)
}

// TestService_MembershipInvariant drives a random interleaving of join,
// switch, and leave operations and checks that no user ever holds more than
// one membership row and no counter goes negative.
func TestService_MembershipInvariant(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := setupService(t)

	rng := rand.New(rand.NewSource(42))

	const teamCount = 4
	codes := make([]string, 0, teamCount)
	for i := 0; i < teamCount; i++ {
		teamID := fmt.Sprintf("team-%d", i)
		code := fmt.Sprintf("code-%d", i)
		seedTeam(t, db, teamID, fmt.Sprintf("Team %d", i), fmt.Sprintf("owner-%d", i))
		seedInvite(t, db, fmt.Sprintf("inv-%d", i), teamID, fmt.Sprintf("owner-%d", i), code, intPtr(100), nil)
		codes = append(codes, code)
	}

	users := []string{"user-0", "user-1", "user-2", "user-3", "user-4"}

	for op := 0; op < 200; op++ {
		userID := users[rng.Intn(len(users))]

		if rng.Intn(4) == 0 {
			err := svc.Leave(ctx, userID)
			if err != nil {
				assert.ErrorIs(t, err, model.ErrMembershipNotFound)
			}
		} else {
			code := codes[rng.Intn(len(codes))]
			_, err := svc.Join(ctx, userID, &model.JoinRequest{InviteCode: code, ConfirmSwitch: rng.Intn(2) == 0})
			if err != nil {
				var confirmation *model.ConfirmationRequiredError
				isBranch := errors.Is(err, model.ErrAlreadyMember) || errors.As(err, &confirmation)
				assert.True(t, isBranch, "unexpected join error: %v", err)
			}
		}

		for _, u := range users {
			assert.LessOrEqual(t, len(membershipRows(t, db, u)), 1, "user %s holds multiple memberships", u)
		}
		for i := 0; i < teamCount; i++ {
			uses := usesRemaining(t, db, fmt.Sprintf("inv-%d", i))
			require.NotNil(t, uses)
			assert.GreaterOrEqual(t, *uses, 0)
		}
	}
}

func TestService_Current(t *testing.T) {
	ctx := context.Background()

	t.Run("no membership", func(t *testing.T) {
		svc, _, _ := setupService(t)

		resp, err := svc.Current(ctx, "user-a")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, model.ErrMembershipNotFound)
	})

	t.Run("existing membership", func(t *testing.T) {
		svc, db, _ := setupService(t)
		seedTeam(t, db, "team-1", "Forest Rangers", "creator-1")
		seedMember(t, db, "m-1", "team-1", "user-a")

		resp, err := svc.Current(ctx, "user-a")

		require.NoError(t, err)
		assert.Equal(t, "team-1", resp.TeamID)
		assert.Equal(t, "Forest Rangers", resp.TeamName)
		assert.Equal(t, int64(0), resp.ContributionPoints)
	})
}

func TestService_Leave(t *testing.T) {
	ctx := context.Background()

	t.Run("no membership", func(t *testing.T) {
		svc, _, _ := setupService(t)

		err := svc.Leave(ctx, "user-a")

		assert.ErrorIs(t, err, model.ErrMembershipNotFound)
	})

	t.Run("owner cannot leave", func(t *testing.T) {
		svc, db, _ := setupService(t)
		seedTeam(t, db, "team-1", "Forest Rangers", "owner-1")
		seedMember(t, db, "m-1", "team-1", "owner-1")

		err := svc.Leave(ctx, "owner-1")

		assert.ErrorIs(t, err, model.ErrOwnerCannotLeave)
		assert.Len(t, membershipRows(t, db, "owner-1"), 1)
	})

	t.Run("regular member leaves", func(t *testing.T) {
		svc, db, _ := setupService(t)
		seedTeam(t, db, "team-1", "Forest Rangers", "owner-1")
		seedMember(t, db, "m-1", "team-1", "user-a")

		err := svc.Leave(ctx, "user-a")

		require.NoError(t, err)
		assert.Empty(t, membershipRows(t, db, "user-a"))
	})
}
