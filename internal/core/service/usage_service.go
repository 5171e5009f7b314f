package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/toolhub/dashboard-api/internal/api/metrics"
	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// UsageService opens and closes usage sessions with at-most-one-mutation
// semantics. The close signal arrives over a fire-and-forget beacon, so it
// may be delivered twice or not at all; both cases are handled here rather
// than treated as errors.
type UsageService struct {
	usageRepo   ports.UsageRepository
	assignments ports.AssignmentRepository
	logger      zerolog.Logger
	now         func() time.Time
}

func NewUsageService(usageRepo ports.UsageRepository, assignments ports.AssignmentRepository, logger zerolog.Logger) *UsageService {
	return &UsageService{
		usageRepo:   usageRepo,
		assignments: assignments,
		logger:      logger,
		now:         time.Now,
	}
}

// Start opens a new session for userID on itemID. Every call creates an
// independent session; there is no dedup across repeated opens of the same
// tool.
func (s *UsageService) Start(ctx context.Context, userID, itemID int64) (int64, error) {
	assigned, err := s.assignments.IsAssigned(ctx, userID, itemID)
	if err != nil {
		return 0, err
	}
	if !assigned {
		s.logger.Warn().Int64("user_id", userID).Int64("item_id", itemID).Msg("usage start for unassigned item")
		return 0, domain.ErrForbidden
	}

	now := s.now().UTC()
	id, err := s.usageRepo.InsertSession(ctx, &domain.UsageSession{
		UserID:       userID,
		ItemID:       &itemID,
		ClickedAt:    now,
		SessionStart: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg("failed to open usage session")
		return 0, err
	}

	metrics.SessionsStartedTotal.Inc()
	s.logger.Debug().Int64("session_id", id).Int64("user_id", userID).Int64("item_id", itemID).Msg("usage session opened")
	return id, nil
}

// End closes a session, computing its duration in whole seconds. A second
// close of the same session — beacons are retried by some browsers — is
// accepted as a no-op and never overwrites the first recorded close.
func (s *UsageService) End(ctx context.Context, sessionID, userID int64) error {
	sess, err := s.usageRepo.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.UserID != userID {
		return domain.ErrForbidden
	}
	if sess.Closed() {
		metrics.SessionsClosedTotal.WithLabelValues("duplicate").Inc()
		s.logger.Debug().Int64("session_id", sessionID).Msg("duplicate close ignored")
		return nil
	}

	end := s.now().UTC()
	duration := domain.ComputeDuration(sess.SessionStart, end)

	applied, err := s.usageRepo.CloseSession(ctx, sessionID, userID, end, duration)
	if err != nil {
		s.logger.Error().Err(err).Int64("session_id", sessionID).Msg("failed to close usage session")
		return err
	}
	if !applied {
		// A concurrent close won the conditional update; keep its values.
		metrics.SessionsClosedTotal.WithLabelValues("duplicate").Inc()
		return nil
	}

	metrics.SessionsClosedTotal.WithLabelValues("closed").Inc()
	s.logger.Debug().Int64("session_id", sessionID).Int64("duration_seconds", duration).Msg("usage session closed")
	return nil
}
