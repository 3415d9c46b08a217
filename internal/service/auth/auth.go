// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"time"

	"garimoto-service/internal/domain/auth"
	xerrors "garimoto-service/internal/pkg/errors"
	"garimoto-service/internal/pkg/jwt"
	"garimoto-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ForceLogouter tells live websocket sessions of an identity to
// re-authenticate. The hub satisfies it; tests pass nil.
type ForceLogouter interface {
	ForceLogout(identityID int64, sessionID string, reason string)
}

type AuthService struct {
	repo           auth.Repository
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
	hub            ForceLogouter
	logger         *zap.Logger
}

func NewAuthService(repo auth.Repository, jwtManager *jwt.Manager, sessionManager *session.Manager, hub ForceLogouter, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:           repo,
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		hub:            hub,
		logger:         logger,
	}
}

// Login authenticates an admin and opens a Redis-backed session. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest, ip, userAgent string) (*auth.LoginResponse, error) {
	admin, err := s.repo.FindAdminByEmail(ctx, req.Email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthorized
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, xerrors.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	token, jti, expiresAt, err := s.jwtManager.Generate(admin.ID, admin.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now()
	if err := s.sessionManager.CreateSession(ctx, &session.SessionData{
		JTI:            jti,
		IdentityID:     admin.ID,
		Email:          admin.Email,
		Roles:          admin.Roles,
		IPAddress:      ip,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("admin logged in",
		zap.Int64("admin_id", admin.ID),
		zap.String("email", admin.Email),
	)

	return &auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     admin,
	}, nil
}

// Logout tears the session down and blacklists the token for the remainder
// of its lifetime, so a stolen copy dies with the session.
func (s *AuthService) Logout(ctx context.Context, identityID int64, jti string, expiresAt time.Time) error {
	if err := s.sessionManager.InvalidateSession(ctx, identityID, jti); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}

	if ttl := time.Until(expiresAt); ttl > 0 {
		if err := s.sessionManager.BlacklistToken(ctx, jti, ttl); err != nil {
			return fmt.Errorf("failed to blacklist token: %w", err)
		}
	}

	s.logger.Info("admin logged out", zap.Int64("admin_id", identityID))
	return nil
}

// ValidateToken verifies the JWT and confirms the backing session is still
// live. Used by the auth middleware on every guarded request.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, *session.SessionData, error) {
	claims, err := s.jwtManager.Verify(token)
	if err != nil {
		return nil, nil, xerrors.ErrUnauthorized
	}

	blacklisted, err := s.sessionManager.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if blacklisted {
		return nil, nil, xerrors.ErrUnauthorized
	}

	sess, err := s.sessionManager.GetSession(ctx, claims.IdentityID, claims.ID)
	if err != nil {
		return nil, nil, err
	}

	return claims, sess, nil
}

// Me returns the authenticated admin's profile.
func (s *AuthService) Me(ctx context.Context, identityID int64) (*auth.Admin, error) {
	return s.repo.FindAdminByID(ctx, identityID)
}

// ChangePassword rotates the password and revokes every open session so all
// devices re-authenticate with the new credential.
func (s *AuthService) ChangePassword(ctx context.Context, identityID int64, req *auth.ChangePasswordRequest) error {
	admin, err := s.repo.FindAdminByID(ctx, identityID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return xerrors.ErrUnauthorized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, identityID, string(hash)); err != nil {
		return err
	}

	if err := s.sessionManager.InvalidateAllUserSessions(ctx, identityID); err != nil {
		s.logger.Warn("failed to invalidate sessions after password change",
			zap.Int64("admin_id", identityID), zap.Error(err))
	}
	if s.hub != nil {
		s.hub.ForceLogout(identityID, "", "password changed")
	}

	s.logger.Info("admin password changed", zap.Int64("admin_id", identityID))
	return nil
}

// EnsureAdminExists seeds the configured admin account on startup so a fresh
// deployment is reachable without manual SQL.
func (s *AuthService) EnsureAdminExists(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	exists, err := s.repo.ExistsAdminByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check seed admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := &auth.Admin{
		Email:        email,
		FullName:     name,
		PasswordHash: string(hash),
		Roles:        []string{"admin"},
		IsActive:     true,
	}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	s.logger.Info("seed admin created", zap.String("email", email))
	return nil
}
