// Package recorder provides best-effort recording of invite redemptions.
package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idleforest/team-service/internal/analytics/model"
	"github.com/idleforest/team-service/internal/analytics/repository"
)

// recordTimeout bounds a single background write.
const recordTimeout = 5 * time.Second

// Recorder writes invite redemption records in the background. Every failure
// is logged and swallowed; the join that triggered the record never observes
// the outcome. The repository must be backed by the service-role connection,
// since the analytics table is not writable by acting users.
type Recorder struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
	wg     sync.WaitGroup
}

// New creates a new recorder instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record schedules an invite redemption record. It returns immediately.
func (r *Recorder) Record(inviteID, userID, teamID string, isNewSignup bool) {
	use := &model.InviteUse{
		ID:          uuid.NewString(),
		InviteID:    inviteID,
		UserID:      userID,
		TeamID:      teamID,
		IsNewSignup: isNewSignup,
		CreatedAt:   time.Now(),
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := r.repo.Insert(ctx, use); err != nil {
			r.logger.Warnw("failed to record invite use",
				"invite_id", inviteID,
				"user_id", userID,
				"error", err,
			)
		}
	}()
}

// Wait blocks until all in-flight records have finished. Called on shutdown
// so pending records are not lost with the process.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
