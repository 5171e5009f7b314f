package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

type recordingAssignmentRepo struct {
	stubAssignmentRepo
	replaced map[int64][]int64
}

func newRecordingAssignmentRepo() *recordingAssignmentRepo {
	return &recordingAssignmentRepo{
		stubAssignmentRepo: *newStubAssignmentRepo(),
		replaced:           make(map[int64][]int64),
	}
}

func (r *recordingAssignmentRepo) Replace(_ context.Context, userID int64, itemIDs []int64) error {
	r.replaced[userID] = append([]int64(nil), itemIDs...)
	return nil
}

func (r *recordingAssignmentRepo) ListItemIDs(_ context.Context, userID int64) ([]int64, error) {
	return r.replaced[userID], nil
}

func newTestUserService(repo *stubUserRepo, assignments *recordingAssignmentRepo) *UserService {
	return NewUserService(repo, assignments, zerolog.Nop())
}

func TestUserService_Create(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, newRecordingAssignmentRepo())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "dave", Password: "secret1", IsAdmin: true})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !user.MustChangePassword {
		t.Fatalf("new accounts must start with a forced password change")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("password stored in clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newRecordingAssignmentRepo())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "ab", Password: "secret1"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("short username: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "dave", Password: "short"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("short password: expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	repo.addUser("dave", "secret1", false)
	svc := newTestUserService(repo, newRecordingAssignmentRepo())

	if _, err := svc.Create(context.Background(), ports.CreateUserInput{Username: "dave", Password: "secret2"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_PasswordResetForcesChange(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.addUser("dave", "secret1", false)
	svc := newTestUserService(repo, newRecordingAssignmentRepo())

	err := svc.Update(context.Background(), ports.UpdateUserInput{
		ID:          u.ID,
		Username:    "david",
		IsAdmin:     true,
		NewPassword: "temp-pass",
		ActorID:     99,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	stored := repo.byID[u.ID]
	if stored.Username != "david" || !stored.IsAdmin {
		t.Fatalf("user fields not updated: %+v", stored)
	}
	if !stored.MustChangePassword {
		t.Fatalf("admin-set password must force a change")
	}
	if len(repo.auditLog) != 1 || repo.auditLog[0] != [2]int64{u.ID, 99} {
		t.Fatalf("audit row must attribute the acting admin: %+v", repo.auditLog)
	}
}

func TestUserService_Delete_SelfRejected(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.addUser("admin", "secret1", true)
	svc := newTestUserService(repo, newRecordingAssignmentRepo())

	if err := svc.Delete(context.Background(), u.ID, u.ID); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("self deletion must be rejected, got %v", err)
	}
	if _, ok := repo.byID[u.ID]; !ok {
		t.Fatalf("user must not be deleted")
	}
}

func TestUserService_ReplaceAssignments(t *testing.T) {
	repo := newStubUserRepo()
	u := repo.addUser("dave", "secret1", false)
	assignments := newRecordingAssignmentRepo()
	svc := newTestUserService(repo, assignments)

	if err := svc.ReplaceAssignments(context.Background(), u.ID, []int64{5, 2, 9}); err != nil {
		t.Fatalf("ReplaceAssignments returned error: %v", err)
	}
	got, _ := svc.Assignments(context.Background(), u.ID)
	if len(got) != 3 || got[0] != 5 || got[1] != 2 || got[2] != 9 {
		t.Fatalf("assignment order not preserved: %v", got)
	}

	if err := svc.ReplaceAssignments(context.Background(), 404, nil); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
