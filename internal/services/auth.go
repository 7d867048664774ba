package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"eventhub/internal/domain"
)

const (
	defaultGroup          = domain.RoleUser
	activationExpiryHours = 48
	minPasswordLength     = 8
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo       domain.UserRepository
	groupRepo      domain.GroupRepository
	activationRepo domain.ActivationTokenRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	emailService   domain.EmailService
	activationBase string
	logger         *slog.Logger
}

// NewAuthService creates an AuthService with the given repositories and auth ports.
func NewAuthService(
	userRepo domain.UserRepository,
	groupRepo domain.GroupRepository,
	activationRepo domain.ActivationTokenRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	emailService domain.EmailService,
	activationBase string,
	logger *slog.Logger,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		groupRepo:      groupRepo,
		activationRepo: activationRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		emailService:   emailService,
		activationBase: activationBase,
		logger:         logger,
	}
}

func (s *authService) SignUp(ctx context.Context, input domain.SignUpInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Salt:         salt,
		IsActive:     false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.GetByName(ctx, defaultGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to get group %q: %w", defaultGroup, err)
	}
	if err := s.groupRepo.AssignUser(ctx, user.ID, group.ID); err != nil {
		return nil, fmt.Errorf("failed to assign group: %w", err)
	}

	token, err := generateActivationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate activation token: %w", err)
	}
	expiresAt := time.Now().Add(activationExpiryHours * time.Hour)
	if err := s.activationRepo.Create(ctx, user.ID, hashActivationToken(token), expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store activation token: %w", err)
	}

	if s.emailService != nil {
		data := &domain.ActivationEmailData{
			Email:         user.Email,
			Username:      user.Username,
			ActivationURL: s.activationURL(user.ID, token),
		}
		if err := s.emailService.SendActivationLink(ctx, data); err != nil {
			return nil, fmt.Errorf("failed to send activation email: %w", err)
		}
	}
	s.logger.Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *authService) Activate(ctx context.Context, userID, token string) error {
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return fmt.Errorf("%w: missing activation parameters", domain.ErrInvalidInput)
	}
	consumed, err := s.activationRepo.Consume(ctx, userID, hashActivationToken(token))
	if err != nil {
		return fmt.Errorf("failed to verify activation token: %w", err)
	}
	if !consumed {
		return fmt.Errorf("%w: invalid or expired activation token", domain.ErrInvalidInput)
	}
	if err := s.userRepo.SetActive(ctx, userID, true); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	s.logger.Info("user activated", "user_id", userID)
	return nil
}

func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (string, domain.Identity, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return "", domain.Anonymous, domain.ErrInvalidCredentials
	}

	user, err := s.lookupUser(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.Anonymous, domain.ErrInvalidCredentials
		}
		return "", domain.Anonymous, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", domain.Anonymous, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", domain.Anonymous, domain.ErrAccountInactive
	}

	groups, err := s.groupRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return "", domain.Anonymous, fmt.Errorf("failed to load groups: %w", err)
	}
	roles := make([]string, len(groups))
	for i, g := range groups {
		roles[i] = g.Name
	}
	if len(roles) > 1 {
		s.logger.Warn("user belongs to multiple groups", "user_id", user.ID, "groups", roles)
	}

	identity := domain.Identity{ID: user.ID, Username: user.Username, Roles: roles}
	token, err := s.tokenIssuer.Issue(user.ID, user.Username, roles, s.tokenExpiry)
	if err != nil {
		return "", domain.Anonymous, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, identity, nil
}

func (s *authService) lookupUser(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	if strings.Contains(usernameOrEmail, "@") {
		return s.userRepo.GetByEmail(ctx, strings.ToLower(usernameOrEmail))
	}
	return s.userRepo.GetByUsername(ctx, usernameOrEmail)
}

func (s *authService) activationURL(userID, token string) string {
	return fmt.Sprintf("%s/activate?uid=%s&token=%s",
		strings.TrimRight(s.activationBase, "/"), url.QueryEscape(userID), url.QueryEscape(token))
}

func generateActivationToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func hashActivationToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
