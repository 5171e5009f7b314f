package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// UserService implements admin-side account management.
type UserService struct {
	repo        ports.UserRepository
	assignments ports.AssignmentRepository
	logger      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, assignments ports.AssignmentRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, assignments: assignments, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if len(input.Username) < domain.MinUsernameLength || len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:           input.Username,
		PasswordHash:       string(hash),
		IsAdmin:            input.IsAdmin,
		MustChangePassword: true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Bool("is_admin", created.IsAdmin).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) error {
	if input.Username == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return err
	}
	user.Username = input.Username
	user.IsAdmin = input.IsAdmin

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	if input.NewPassword != "" {
		if len(input.NewPassword) < domain.MinPasswordLength {
			return domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		// Admin-set passwords are temporary: force a change at next login.
		if err := s.repo.UpdatePassword(ctx, input.ID, string(hash), true); err != nil {
			return err
		}
		if err := s.repo.InsertPasswordChange(ctx, input.ID, input.ActorID); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", input.ID).Msg("failed to record password change")
		}
	}

	s.logger.Info().Int64("user_id", input.ID).Msg("user updated")
	return nil
}

func (s *UserService) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Int64("deleted_by", actorID).Msg("user deleted")
	return nil
}

func (s *UserService) Assignments(ctx context.Context, userID int64) ([]int64, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.assignments.ListItemIDs(ctx, userID)
}

func (s *UserService) ReplaceAssignments(ctx context.Context, userID int64, itemIDs []int64) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.assignments.Replace(ctx, userID, itemIDs); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", userID).Int("items", len(itemIDs)).Msg("assignments replaced")
	return nil
}
