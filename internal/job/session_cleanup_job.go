package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/craftedbits/resumatch/internal/session"
)

// SessionCleanupJob drops sessions idle past the configured TTL so the
// in-process session table stays bounded. Indexed facts are left alone;
// the index has no deletion path.
type SessionCleanupJob struct {
	sessions *session.Manager
}

func NewSessionCleanupJob(sessions *session.Manager) *SessionCleanupJob {
	return &SessionCleanupJob{sessions: sessions}
}

func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	removed := j.sessions.SweepExpired()
	logutil.GetLogger(ctx).Info("expired sessions swept",
		zap.Int("removed", removed),
		zap.Int("remaining", j.sessions.Count()),
	)
	return nil
}
