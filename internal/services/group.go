package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"eventhub/internal/domain"
)

type groupService struct {
	groupRepo domain.GroupRepository
	logger    *slog.Logger
}

// NewGroupService creates a GroupService with the given repository.
func NewGroupService(groupRepo domain.GroupRepository, logger *slog.Logger) domain.GroupService {
	return &groupService{groupRepo: groupRepo, logger: logger}
}

func (s *groupService) Create(ctx context.Context, name string) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
	}
	group := &domain.Group{Name: name}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: group %q already exists", domain.ErrConflict, name)
		}
		return nil, err
	}
	s.logger.Info("group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

func (s *groupService) List(ctx context.Context) ([]*domain.GroupWithMemberCount, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	if groups == nil {
		groups = []*domain.GroupWithMemberCount{}
	}
	return groups, nil
}

// Delete removes an empty group. A group that still has members is left
// untouched and ErrConflict is returned.
func (s *groupService) Delete(ctx context.Context, id string) error {
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: group still has members", domain.ErrConflict)
		}
		return err
	}
	s.logger.Info("group deleted", "group_id", id)
	return nil
}
