package domain

import (
	"context"
	"time"
)

// User represents a registered account. Self-registered users start inactive
// and are activated through a one-time emailed token.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserWithRole bundles a user with their group names and resolved display
// role for the admin user list.
type UserWithRole struct {
	User   *User    `json:"user"`
	Groups []string `json:"groups"`
	Role   string   `json:"role"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, username string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ActivationTokenRepository stores hashed one-time account activation tokens.
type ActivationTokenRepository interface {
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	Consume(ctx context.Context, userID, tokenHash string) (consumed bool, err error)
}

// ProfileUpdate carries optional profile fields; nil means leave unchanged.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// AdminUserUpdate extends ProfileUpdate with group assignment for admin edits.
type AdminUserUpdate struct {
	ProfileUpdate
	GroupName *string
}

// UserService defines profile and admin user-management operations.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	ListUsers(ctx context.Context) ([]*UserWithRole, error)
	UpdateUser(ctx context.Context, userID string, upd AdminUserUpdate) (*User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// SignUpInput is the self-registration payload.
type SignUpInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthService defines registration, activation, and login.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*User, error)
	Activate(ctx context.Context, userID, token string) error
	Login(ctx context.Context, usernameOrEmail, password string) (token string, identity Identity, err error)
}
