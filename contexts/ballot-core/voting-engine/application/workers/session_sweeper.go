package workers

import (
	"context"
	"log/slog"
	"time"

	application "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/application"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"
)

// SessionSweeper removes sessions whose idle deadline passed without any
// kiosk request noticing. The command path already expires lazily; the
// sweeper only keeps the store from accumulating abandoned tokens.
type SessionSweeper struct {
	Sessions  ports.SessionStore
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce drops a bounded batch of idle-expired sessions.
func (s SessionSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)
	limit := s.BatchSize
	if limit <= 0 {
		limit = 100
	}
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}

	idle, err := s.Sessions.ListIdleSessions(ctx, now, limit)
	if err != nil {
		logger.Error("session sweep list failed",
			"event", "voting_session_sweep_list_failed",
			"module", "ballot-core/voting-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(idle) == 0 {
		logger.Debug("session sweep found nothing idle",
			"event", "voting_session_sweep_noop",
			"module", "ballot-core/voting-engine",
			"layer", "worker",
		)
		return nil
	}

	for _, session := range idle {
		if err := s.Sessions.DeleteSession(ctx, session.Token); err != nil {
			logger.Error("session sweep delete failed",
				"event", "voting_session_sweep_delete_failed",
				"module", "ballot-core/voting-engine",
				"layer", "worker",
				"participant_id", session.ParticipantID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("session sweep completed",
		"event", "voting_session_sweep_completed",
		"module", "ballot-core/voting-engine",
		"layer", "worker",
		"swept_count", len(idle),
	)
	return nil
}
