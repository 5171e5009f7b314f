package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/toolhub/dashboard-api/internal/api/middleware"
	"github.com/toolhub/dashboard-api/internal/core/domain"
)

type stubUsageService struct {
	startFn func(ctx context.Context, userID, itemID int64) (int64, error)
	endFn   func(ctx context.Context, sessionID, userID int64) error
}

func (s *stubUsageService) Start(ctx context.Context, userID, itemID int64) (int64, error) {
	return s.startFn(ctx, userID, itemID)
}

func (s *stubUsageService) End(ctx context.Context, sessionID, userID int64) error {
	return s.endFn(ctx, sessionID, userID)
}

func TestUsageHandler_Start_Success(t *testing.T) {
	stub := &stubUsageService{
		startFn: func(ctx context.Context, userID, itemID int64) (int64, error) {
			if userID != 7 || itemID != 3 {
				t.Fatalf("unexpected args: user=%d item=%d", userID, itemID)
			}
			return 101, nil
		},
	}
	handler := NewUsageHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/usage/start", `{"item_id":3}`)
	c.Set(middleware.CtxUserID, int64(7))

	if err := handler.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["session_id"] != float64(101) {
		t.Fatalf("session_id = %v, want 101", resp["session_id"])
	}
}

func TestUsageHandler_Start_Unassigned(t *testing.T) {
	stub := &stubUsageService{
		startFn: func(ctx context.Context, userID, itemID int64) (int64, error) {
			return 0, domain.ErrForbidden
		},
	}
	handler := NewUsageHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/usage/start", `{"item_id":9}`)
	c.Set(middleware.CtxUserID, int64(7))

	err := handler.Start(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUsageHandler_Start_MissingItemID(t *testing.T) {
	stub := &stubUsageService{
		startFn: func(ctx context.Context, userID, itemID int64) (int64, error) {
			t.Fatalf("should not be called")
			return 0, nil
		},
	}
	handler := NewUsageHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/usage/start", `{}`)
	c.Set(middleware.CtxUserID, int64(7))

	err := handler.Start(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUsageHandler_End_Success(t *testing.T) {
	stub := &stubUsageService{
		endFn: func(ctx context.Context, sessionID, userID int64) error {
			if sessionID != 101 || userID != 7 {
				t.Fatalf("unexpected args: session=%d user=%d", sessionID, userID)
			}
			return nil
		},
	}
	handler := NewUsageHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/usage/end", `{"session_id":101}`)
	c.Set(middleware.CtxUserID, int64(7))

	if err := handler.End(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUsageHandler_End_SessionNotFound(t *testing.T) {
	stub := &stubUsageService{
		endFn: func(ctx context.Context, sessionID, userID int64) error {
			return domain.ErrSessionNotFound
		},
	}
	handler := NewUsageHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/usage/end", `{"session_id":999}`)
	c.Set(middleware.CtxUserID, int64(7))

	err := handler.End(c)
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUsageHandler_End_NoClaims(t *testing.T) {
	handler := NewUsageHandler(&stubUsageService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/usage/end", `{"session_id":101}`)
	if err := handler.End(c); err == nil {
		t.Fatalf("expected error without auth claims")
	}
}
