package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/pkg/logger"
	"cluster-dashboard-backend/internal/pkg/password"
	"cluster-dashboard-backend/internal/pkg/token"
	"cluster-dashboard-backend/internal/repository"
	"cluster-dashboard-backend/pkg/utils"
)

type AuthService struct {
	users  repository.UserRepository
	hasher password.Hasher
	tokens *token.Manager
	logger *logger.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, hasher password.Hasher, tokens *token.Manager, logger *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AuthService) Hash(plain string) string {
	return s.hasher.Hash(plain)
}

func (s *AuthService) Verify(plain, digest string) bool {
	return s.hasher.Verify(plain, digest)
}

func (s *AuthService) IssueToken(user *model.User) (string, error) {
	signed, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.OperationFailed("issue_token", err)
		return "", utils.NewInternalError("Authentication failed")
	}
	return signed, nil
}

// ResolveIdentity never fails: a missing, invalid or expired token, or one
// whose user no longer exists, yields nil.
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenString string) *model.Identity {
	if tokenString == "" {
		return nil
	}

	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil
	}

	return &model.Identity{ID: user.ID, Username: user.Username, Role: user.Role}
}

func (s *AuthService) Login(ctx context.Context, username, plain string) (*model.AuthPayload, error) {
	if username == "" || plain == "" {
		return nil, utils.NewValidationError("Username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Unknown user and wrong password are indistinguishable to the caller.
	if user == nil {
		s.hasher.Hash(plain)
		err := utils.NewInvalidCredentialsError()
		s.logger.AuthAttempt("login", username, err)
		return nil, err
	}
	if !s.hasher.Verify(plain, user.Password) {
		err := utils.NewInvalidCredentialsError()
		s.logger.AuthAttempt("login", username, err)
		return nil, err
	}

	signed, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.AuthAttempt("login", username, nil)
	return &model.AuthPayload{Token: signed, User: user.Public()}, nil
}

func (s *AuthService) Register(ctx context.Context, username, email, plain string) (*model.AuthPayload, error) {
	if username == "" || email == "" || plain == "" {
		return nil, utils.NewValidationError("Username, email and password are required")
	}
	if err := utils.ValidatePassword(plain); err != nil {
		return nil, err
	}
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  s.hasher.Hash(plain),
		Role:      model.RoleUser,
		CreatedAt: s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.AuthAttempt("register", username, err)
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, utils.NewConflictError("Username already exists")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, utils.NewConflictError("Email already exists")
		default:
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	signed, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.AuthAttempt("register", username, nil)
	return &model.AuthPayload{Token: signed, User: user.Public()}, nil
}

// Logout is a no-op: tokens are stateless and stay valid until they expire.
func (s *AuthService) Logout(_ context.Context) bool {
	return true
}

func (s *AuthService) Me(ctx context.Context, id *model.Identity) (*model.PublicUser, error) {
	if id == nil {
		return nil, nil
	}
	user, err := s.users.FindByID(ctx, id.ID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user.Public(), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*model.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]*model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// SeedAccount stores an account with a known id, role and creation time.
// Existing usernames are left alone so restarts with seeding stay idempotent.
func (s *AuthService) SeedAccount(ctx context.Context, acct repository.DemoAccount) error {
	if acct.ID == "" {
		acct.ID = uuid.NewString()
	}
	if acct.CreatedAt.IsZero() {
		acct.CreatedAt = s.now()
	}

	err := s.users.Create(ctx, &model.User{
		ID:        acct.ID,
		Username:  acct.Username,
		Email:     acct.Email,
		Password:  s.hasher.Hash(acct.Password),
		Role:      acct.Role,
		CreatedAt: acct.CreatedAt,
	})
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return nil
	}
	return err
}
