//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *E2ETestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *E2ETestSuite) seedTeam(name, ownerID string) string {
	teamID := uuid.NewString()
	err := s.db.Exec(
		"INSERT INTO teams (id, name, created_by, created_at) VALUES (?, ?, ?, now())",
		teamID, name, ownerID,
	).Error
	require.NoError(s.T(), err)
	return teamID
}

func (s *E2ETestSuite) seedMember(teamID, userID string) {
	err := s.db.Exec(
		"INSERT INTO team_members (id, team_id, user_id, contribution_points, created_at) VALUES (?, ?, ?, 0, now())",
		uuid.NewString(), teamID, userID,
	).Error
	require.NoError(s.T(), err)
}

func (s *E2ETestSuite) seedInvite(teamID, createdBy, code string, uses *int) string {
	inviteID := uuid.NewString()
	err := s.db.Exec(
		"INSERT INTO invites (id, team_id, created_by, code, uses_remaining, created_at) VALUES (?, ?, ?, ?, ?, now())",
		inviteID, teamID, createdBy, code, uses,
	).Error
	require.NoError(s.T(), err)
	return inviteID
}

func (s *E2ETestSuite) membershipCount(userID string) int64 {
	var count int64
	err := s.db.Table("team_members").Where("user_id = ?", userID).Count(&count).Error
	require.NoError(s.T(), err)
	return count
}

func (s *E2ETestSuite) usesRemaining(inviteID string) int {
	var uses int
	err := s.db.Table("invites").Select("uses_remaining").Where("id = ?", inviteID).Scan(&uses).Error
	require.NoError(s.T(), err)
	return uses
}

func intPtr(v int) *int {
	return &v
}

// TestJoinLifecycle covers the full invite lifecycle over HTTP: create,
// public landing, redemption, listing with stats.
func (s *E2ETestSuite) TestJoinLifecycle() {
	ownerID := uuid.NewString()
	joinerID := uuid.NewString()
	teamID := s.seedTeam("Forest Rangers", ownerID)
	s.seedMember(teamID, ownerID)
	require.NoError(s.T(), s.db.Exec(
		"INSERT INTO profiles (id, display_name) VALUES (?, ?)", ownerID, "Carol",
	).Error)

	w := s.doRequest(http.MethodPost, "/invites", s.bearerToken(ownerID), map[string]any{
		"team_id":         teamID,
		"uses_remaining":  2,
		"expires_in_days": 7,
	})
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Code string `json:"code"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(s.T(), created.Code)

	w = s.doRequest(http.MethodGet, "/invites/"+created.Code, "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Forest Rangers")
	assert.Contains(s.T(), w.Body.String(), "Carol")

	w = s.doRequest(http.MethodPost, "/join", s.bearerToken(joinerID), map[string]any{
		"invite_code":   created.Code,
		"is_new_signup": true,
	})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Equal(s.T(), int64(1), s.membershipCount(joinerID))

	s.recorder.Wait()
	var uses int64
	require.NoError(s.T(), s.db.Table("invite_uses").Count(&uses).Error)
	assert.Equal(s.T(), int64(1), uses)

	w = s.doRequest(http.MethodGet, "/invites?team_id="+teamID, s.bearerToken(ownerID), nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"redemptions":1`)
}

// TestConcurrentRedemptions redeems a five-use invite from twenty users at
// once. Exactly five joins may succeed and the counter must stop at zero.
func (s *E2ETestSuite) TestConcurrentRedemptions() {
	ownerID := uuid.NewString()
	teamID := s.seedTeam("Limited Team", ownerID)
	inviteID := s.seedInvite(teamID, ownerID, "e2e-limited-code", intPtr(5))

	const attempts = 20
	results := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			w := s.doRequest(http.MethodPost, "/join", s.bearerToken(uuid.NewString()), map[string]any{
				"invite_code": "e2e-limited-code",
			})
			results[idx] = w.Code
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, code := range results {
		switch code {
		case http.StatusOK:
			succeeded++
		case http.StatusGone:
		default:
			s.T().Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(s.T(), 5, succeeded)
	assert.Equal(s.T(), 0, s.usesRemaining(inviteID))

	var members int64
	require.NoError(s.T(), s.db.Table("team_members").Where("team_id = ?", teamID).Count(&members).Error)
	assert.Equal(s.T(), int64(5), members)
}

// TestConcurrentSameUser fires concurrent joins by one user at several teams.
// The unique index on user_id must leave exactly one membership standing.
func (s *E2ETestSuite) TestConcurrentSameUser() {
	userID := uuid.NewString()

	const teams = 8
	codes := make([]string, teams)
	for i := 0; i < teams; i++ {
		ownerID := uuid.NewString()
		teamID := s.seedTeam("Race Team", ownerID)
		codes[i] = uuid.NewString()
		s.seedInvite(teamID, ownerID, codes[i], nil)
	}

	var wg sync.WaitGroup
	for i := 0; i < teams; i++ {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			s.doRequest(http.MethodPost, "/join", s.bearerToken(userID), map[string]any{
				"invite_code": code,
			})
		}(codes[i])
	}
	wg.Wait()

	assert.Equal(s.T(), int64(1), s.membershipCount(userID))

	// Give the stragglers a moment, then re-check nothing else landed.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(s.T(), int64(1), s.membershipCount(userID))
}
