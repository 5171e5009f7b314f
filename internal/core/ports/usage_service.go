package ports

import "context"

// UsageService implements the usage-session lifecycle. Sessions are opened
// when a user launches a tool and closed by a best-effort beacon that may
// never arrive; a session with no close signal stays open forever.
type UsageService interface {
	// Start opens a session for the user on an item assigned to them and
	// returns the session id the client later reports on close. An item not
	// assigned to the user yields domain.ErrForbidden with nothing written.
	Start(ctx context.Context, userID, itemID int64) (int64, error)
	// End closes a session. Closing an already-closed session is a no-op
	// success that leaves the recorded end time and duration untouched.
	End(ctx context.Context, sessionID, userID int64) error
}
