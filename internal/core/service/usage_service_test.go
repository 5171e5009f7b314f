package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/toolhub/dashboard-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUsageRepo struct {
	sessions  map[int64]*domain.UsageSession
	nextID    int64
	insertErr error
	// closeRejected forces CloseSession to report the conditional guard lost,
	// simulating a concurrent close that was applied first.
	closeRejected bool
}

func newStubUsageRepo() *stubUsageRepo {
	return &stubUsageRepo{sessions: make(map[int64]*domain.UsageSession), nextID: 1}
}

func (r *stubUsageRepo) InsertSession(_ context.Context, s *domain.UsageSession) (int64, error) {
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	clone := *s
	clone.ID = r.nextID
	r.nextID++
	r.sessions[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubUsageRepo) GetSession(_ context.Context, id int64) (*domain.UsageSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubUsageRepo) CloseSession(_ context.Context, id, userID int64, end time.Time, durationSeconds int64) (bool, error) {
	if r.closeRejected {
		return false, nil
	}
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID || s.SessionEnd != nil {
		return false, nil
	}
	s.SessionEnd = &end
	s.DurationSeconds = &durationSeconds
	return true, nil
}

type stubAssignmentRepo struct {
	assigned map[[2]int64]bool
	err      error
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{assigned: make(map[[2]int64]bool)}
}

func (r *stubAssignmentRepo) assign(userID, itemID int64) {
	r.assigned[[2]int64{userID, itemID}] = true
}

func (r *stubAssignmentRepo) IsAssigned(_ context.Context, userID, itemID int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.assigned[[2]int64{userID, itemID}], nil
}

func (r *stubAssignmentRepo) ListItemIDs(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}

func (r *stubAssignmentRepo) Replace(_ context.Context, _ int64, _ []int64) error {
	return nil
}

func (r *stubAssignmentRepo) ListUsersForItem(_ context.Context, _ int64) ([]*domain.User, error) {
	return nil, nil
}

func newTestUsageService(repo *stubUsageRepo, assignments *stubAssignmentRepo) *UsageService {
	return NewUsageService(repo, assignments, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Start
// ---------------------------------------------------------------------------

func TestUsageService_Start_OpensSession(t *testing.T) {
	repo := newStubUsageRepo()
	assignments := newStubAssignmentRepo()
	assignments.assign(7, 3)
	svc := newTestUsageService(repo, assignments)

	t0 := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	id, err := svc.Start(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	sess := repo.sessions[id]
	if sess == nil {
		t.Fatalf("no session inserted")
	}
	if sess.UserID != 7 || sess.ItemID == nil || *sess.ItemID != 3 {
		t.Fatalf("unexpected session ownership: %+v", sess)
	}
	if !sess.ClickedAt.Equal(t0) || !sess.SessionStart.Equal(t0) {
		t.Fatalf("clicked_at/session_start not set to now: %+v", sess)
	}
	if sess.SessionEnd != nil || sess.DurationSeconds != nil {
		t.Fatalf("new session must be open: %+v", sess)
	}
}

func TestUsageService_Start_UnassignedItemForbidden(t *testing.T) {
	repo := newStubUsageRepo()
	assignments := newStubAssignmentRepo()
	assignments.assign(7, 3)
	svc := newTestUsageService(repo, assignments)

	if _, err := svc.Start(context.Background(), 7, 9); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("no row must be written on authorization failure")
	}
}

func TestUsageService_Start_EachCallIndependent(t *testing.T) {
	repo := newStubUsageRepo()
	assignments := newStubAssignmentRepo()
	assignments.assign(7, 3)
	svc := newTestUsageService(repo, assignments)

	a, err := svc.Start(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}
	b, err := svc.Start(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if a == b {
		t.Fatalf("repeated opens must create independent sessions")
	}
}

// ---------------------------------------------------------------------------
// End
// ---------------------------------------------------------------------------

func TestUsageService_End_ComputesDuration(t *testing.T) {
	repo := newStubUsageRepo()
	assignments := newStubAssignmentRepo()
	assignments.assign(7, 3)
	svc := newTestUsageService(repo, assignments)

	t0 := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }
	id, err := svc.Start(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	svc.now = func() time.Time { return t0.Add(125 * time.Second) }
	if err := svc.End(context.Background(), id, 7); err != nil {
		t.Fatalf("End returned error: %v", err)
	}

	sess := repo.sessions[id]
	if sess.SessionEnd == nil || sess.DurationSeconds == nil {
		t.Fatalf("session not closed: %+v", sess)
	}
	if *sess.DurationSeconds != 125 {
		t.Fatalf("duration = %d, want 125", *sess.DurationSeconds)
	}
	if sess.SessionEnd.Before(sess.SessionStart) {
		t.Fatalf("session_end before session_start")
	}
}

func TestUsageService_End_SecondCloseIsNoop(t *testing.T) {
	repo := newStubUsageRepo()
	assignments := newStubAssignmentRepo()
	assignments.assign(7, 3)
	svc := newTestUsageService(repo, assignments)

	t0 := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }
	id, _ := svc.Start(context.Background(), 7, 3)

	svc.now = func() time.Time { return t0.Add(125 * time.Second) }
	if err := svc.End(context.Background(), id, 7); err != nil {
		t.Fatalf("first End: %v", err)
	}

	svc.now = func() time.Time { return t0.Add(400 * time.Second) }
	if err := svc.End(context.Background(), id, 7); err != nil {
		t.Fatalf("second End must be a no-op success, got %v", err)
	}

	sess := repo.sessions[id]
	if *sess.DurationSeconds != 125 {
		t.Fatalf("duplicate close overwrote duration: %d", *sess.DurationSeconds)
	}
	if !sess.SessionEnd.Equal(t0.Add(125 * time.Second)) {
		t.Fatalf("duplicate close overwrote session_end: %v", sess.SessionEnd)
	}
}

func TestUsageService_End_LostRaceIsNoop(t *testing.T) {
	repo := newStubUsageRepo()
	assignments := newStubAssignmentRepo()
	assignments.assign(7, 3)
	svc := newTestUsageService(repo, assignments)

	id, _ := svc.Start(context.Background(), 7, 3)

	// The session still looks open when read, but the conditional update is
	// rejected because a concurrent close was applied in between.
	repo.closeRejected = true
	if err := svc.End(context.Background(), id, 7); err != nil {
		t.Fatalf("losing the close race must be a no-op success, got %v", err)
	}
}

func TestUsageService_End_WrongUserForbidden(t *testing.T) {
	repo := newStubUsageRepo()
	assignments := newStubAssignmentRepo()
	assignments.assign(7, 3)
	svc := newTestUsageService(repo, assignments)

	id, _ := svc.Start(context.Background(), 7, 3)

	if err := svc.End(context.Background(), id, 8); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if repo.sessions[id].SessionEnd != nil {
		t.Fatalf("session must stay open after forbidden close")
	}
}

func TestUsageService_End_UnknownSession(t *testing.T) {
	repo := newStubUsageRepo()
	svc := newTestUsageService(repo, newStubAssignmentRepo())

	if err := svc.End(context.Background(), 42, 7); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
