package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/auth"
	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/repository"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

// LoginResult carries a freshly issued credential.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *domain.Admin
}

// AdminService authenticates administrators and issues bearer tokens.
type AdminService struct {
	admins     repository.AdminRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
	clock      Clock
}

// AdminDependencies bundles collaborators for admin identity.
type AdminDependencies struct {
	AdminRepo  repository.AdminRepository
	Tokens     *auth.TokenManager
	BcryptCost int
	Logger     *zap.Logger
	Clock      Clock
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		admins:     deps.AdminRepo,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		logger:     logger,
		clock:      deps.Clock,
	}
}

// Login checks credentials, stamps the login time and issues a token.
// Unknown usernames and wrong passwords fail identically.
func (s *AdminService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, validation("username and password are required", KeyAdminCredentialsRequired, nil)
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			auth.BurnCompare(password)
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, invalidCredentials()
	}

	loginAt := s.clock.after(admin.LastLoginAt)
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, loginAt); err != nil {
		return nil, err
	}
	admin.LastLoginAt = &loginAt

	token, meta, err := s.tokens.GenerateToken(admin)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", zap.String("username", admin.Username), zap.String("token_id", meta.ID))
	return &LoginResult{Token: token, ExpiresAt: meta.ExpiresAt, Admin: admin}, nil
}

// Validate reports whether token is a live credential for an existing account.
func (s *AdminService) Validate(ctx context.Context, token string) bool {
	_, err := s.Authenticate(ctx, token)
	return err == nil
}

// Authenticate resolves a token into the principal of an existing account.
// The token's account id and username must still name the same account.
func (s *AdminService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, invalidToken()
	}

	admin, err := s.admins.GetByID(ctx, claims.AdminID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, invalidToken()
		}
		return nil, err
	}
	if admin.Username != claims.Username {
		return nil, invalidToken()
	}

	return &auth.Principal{
		AdminID:  admin.ID,
		Username: admin.Username,
		Admin:    claims.Admin,
		TokenID:  claims.ID,
	}, nil
}

// GetProfile returns the account for username.
func (s *AdminService) GetProfile(ctx context.Context, username string) (*domain.Admin, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("admin", map[string]any{"username": username}).WithKey(KeyAdminNotFound)
		}
		return nil, err
	}
	return admin, nil
}

// EnsureSeedAccount creates the account when it does not exist yet. Existing accounts are left untouched.
func (s *AdminService) EnsureSeedAccount(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}

	if _, err := s.admins.GetByUsername(ctx, username); err == nil {
		return false, nil
	} else if !repository.IsNotFound(err) {
		return false, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return false, err
	}
	admin := &domain.Admin{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.clock.now(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return false, nil
		}
		return false, err
	}

	s.logger.Info("seeded admin account", zap.String("username", username))
	return true, nil
}

func invalidCredentials() error {
	return apperrors.NewUnauthorized("invalid username or password").WithKey(KeyAdminInvalidCredentials)
}

func invalidToken() error {
	return apperrors.NewUnauthorized("invalid or expired token").WithKey(KeyAuthInvalidToken)
}
