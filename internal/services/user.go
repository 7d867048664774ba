package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventhub/internal/domain"
)

type userService struct {
	userRepo  domain.UserRepository
	groupRepo domain.GroupRepository
	hasher    domain.PasswordHasher
	logger    *slog.Logger
}

// NewUserService creates a UserService with the given repositories and password hasher.
func NewUserService(userRepo domain.UserRepository, groupRepo domain.GroupRepository, hasher domain.PasswordHasher, logger *slog.Logger) domain.UserService {
	return &userService{
		userRepo:  userRepo,
		groupRepo: groupRepo,
		hasher:    hasher,
		logger:    logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyProfileUpdate(user, upd); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, currentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Salt = salt
	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password changed", "user_id", userID)
	return nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*domain.UserWithRole, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	result := make([]*domain.UserWithRole, 0, len(users))
	for _, u := range users {
		groups, err := s.groupRepo.ListByUserID(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load groups for user %s: %w", u.ID, err)
		}
		names := make([]string, len(groups))
		for i, g := range groups {
			names[i] = g.Name
		}
		identity := domain.Identity{ID: u.ID, Username: u.Username, Roles: names}
		if len(names) > 1 {
			s.logger.Warn("user belongs to multiple groups", "user_id", u.ID, "groups", names)
		}
		result = append(result, &domain.UserWithRole{
			User:   u,
			Groups: names,
			Role:   identity.EffectiveRole(),
		})
	}
	return result, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, upd domain.AdminUserUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyProfileUpdate(user, upd.ProfileUpdate); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if upd.GroupName != nil {
		name := strings.TrimSpace(*upd.GroupName)
		if name == "" {
			if err := s.groupRepo.ReplaceUserGroups(ctx, userID, nil); err != nil {
				return nil, fmt.Errorf("failed to clear groups: %w", err)
			}
		} else {
			group, err := s.groupRepo.GetByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to get group %q: %w", name, err)
			}
			if err := s.groupRepo.ReplaceUserGroups(ctx, userID, []string{group.ID}); err != nil {
				return nil, fmt.Errorf("failed to replace groups: %w", err)
			}
		}
		s.logger.Info("user groups updated", "user_id", userID, "group", name)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

func applyProfileUpdate(user *domain.User, upd domain.ProfileUpdate) error {
	if upd.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*upd.Email))
		if !emailRegexp.MatchString(email) {
			return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	if upd.FirstName != nil {
		user.FirstName = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		user.LastName = strings.TrimSpace(*upd.LastName)
	}
	if upd.Phone != nil {
		user.Phone = strings.TrimSpace(*upd.Phone)
	}
	return nil
}
