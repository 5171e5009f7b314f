package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/toolhub/dashboard-api/internal/core/domain"
	"github.com/toolhub/dashboard-api/internal/core/ports"
)

// ItemService implements admin-side catalog management.
type ItemService struct {
	repo        ports.ItemRepository
	assignments ports.AssignmentRepository
	logger      zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, assignments ports.AssignmentRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, assignments: assignments, logger: logger}
}

func (s *ItemService) List(ctx context.Context) ([]*ports.ItemWithCount, error) {
	return s.repo.ListWithCounts(ctx)
}

func (s *ItemService) Create(ctx context.Context, input ports.ItemInput) (*domain.Item, error) {
	if input.Name == "" || input.URL == "" {
		return nil, domain.ErrInvalidInput
	}

	createdBy := input.CreatedBy
	created, err := s.repo.Create(ctx, &domain.Item{
		Name:            input.Name,
		Description:     input.Description,
		URL:             input.URL,
		Icon:            input.Icon,
		Category:        input.Category,
		OpenInNewWindow: input.OpenInNewWindow,
		CreatedBy:       &createdBy,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", created.ID).Str("name", created.Name).Msg("item created")
	return created, nil
}

func (s *ItemService) Update(ctx context.Context, input ports.ItemInput) error {
	if input.Name == "" || input.URL == "" {
		return domain.ErrInvalidInput
	}

	item, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	item.Name = input.Name
	item.Description = input.Description
	item.URL = input.URL
	item.Icon = input.Icon
	item.Category = input.Category
	item.OpenInNewWindow = input.OpenInNewWindow

	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}
	s.logger.Info().Int64("item_id", item.ID).Msg("item updated")
	return nil
}

// Delete removes a catalog entry. Usage history survives with a nulled item
// reference; assignments cascade away at the schema level.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("item_id", id).Msg("item deleted")
	return nil
}

func (s *ItemService) AssignedUsers(ctx context.Context, itemID int64) ([]*domain.User, error) {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.assignments.ListUsersForItem(ctx, itemID)
}

// DashboardService is the end-user read surface: only assigned items are
// ever visible.
type DashboardService struct {
	repo ports.ItemRepository
}

func NewDashboardService(repo ports.ItemRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) Items(ctx context.Context, userID int64) ([]*domain.Item, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *DashboardService) Item(ctx context.Context, itemID, userID int64) (*domain.Item, error) {
	return s.repo.GetForUser(ctx, itemID, userID)
}
