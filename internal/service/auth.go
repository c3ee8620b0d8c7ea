package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arslanca/portfolio/internal/events"
	"github.com/arslanca/portfolio/internal/hash"
	"github.com/arslanca/portfolio/internal/logging"
	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/ratelimit"
	"github.com/arslanca/portfolio/internal/repo"
	"github.com/arslanca/portfolio/internal/tokens"
)

const (
	AccessTTL          = 15 * time.Minute
	RefreshTTLShort    = 24 * time.Hour
	RefreshTTLRemember = 15 * 24 * time.Hour

	// A user keeps at most 5 live sessions; on the login that would
	// create a 6th, everything beyond the 4 latest-expiring is revoked
	// so the new session always fits.
	maxActiveSessions  = 5
	keepActiveSessions = 4
)

type AuthService struct {
	Repo    *repo.GormRepo
	Codec   *tokens.Codec
	Limiter *ratelimit.Limiter
	Events  *events.Producer
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) Login(ctx context.Context, username, password, clientAddr string, rememberMe bool) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	// The bucket is drained before any credential work so a flood cannot
	// buy free bcrypt comparisons.
	if !s.Limiter.AllowLogin(clientAddr) {
		l.Warn("login_rate_limited", "status", 429, "addr", clientAddr)
		return nil, ErrRateLimited
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown_user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "bad_password")
		return nil, ErrInvalidCredentials
	}

	if err := s.enforceSessionCap(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	refreshTTL := RefreshTTLShort
	if rememberMe {
		refreshTTL = RefreshTTLRemember
	}
	res, err := s.issuePair(ctx, user, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.publish(ctx, user, "user_logged_in")
	l.Info("login_successful", "username", username)
	return res, nil
}

// enforceSessionCap revokes every active refresh token beyond the 4
// most-recently-expiring ones, newest sessions preferred.
func (s *AuthService) enforceSessionCap(ctx context.Context, userID uint) error {
	active, err := s.Repo.ActiveRefreshTokens(ctx, userID)
	if err != nil {
		return err
	}
	if len(active) < maxActiveSessions {
		return nil
	}
	stale := make([]uint, 0, len(active)-keepActiveSessions)
	for _, t := range active[keepActiveSessions:] {
		stale = append(stale, t.ID)
	}
	return s.Repo.RevokeRefreshTokens(ctx, stale)
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User, refreshTTL time.Duration) (*LoginResult, error) {
	accessToken, accessExp, err := s.Codec.GenerateAccess(user.Username, user.Role, AccessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.Codec.GenerateRefresh(user.Username, refreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreateRefreshToken(ctx, &models.RefreshToken{
		Token:     tokens.Digest(refreshToken),
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}); err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	subject, err := s.Codec.RefreshSubject(rawRefresh)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "unparsable_token")
		return nil, ErrInvalidRefreshToken
	}
	user, err := s.Repo.FindUserByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("refresh_failed", "status", 401, "reason", "unknown_subject")
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if !s.Codec.ValidRefresh(rawRefresh, user.Username) {
		l.Warn("refresh_failed", "status", 401, "reason", "invalid_signature_or_expiry")
		return nil, ErrInvalidRefreshToken
	}

	accessToken, accessExp, err := s.Codec.GenerateAccess(user.Username, user.Role, AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	// Rotation always issues the long TTL, whatever remember-me said at
	// login. Kept as-is from the original behavior.
	refreshToken, refreshExp, err := s.Codec.GenerateRefresh(user.Username, RefreshTTLRemember)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	err = s.Repo.RotateRefresh(ctx, tokens.Digest(rawRefresh), &models.RefreshToken{
		Token:     tokens.Digest(refreshToken),
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrTokenRevoked) {
			l.Warn("refresh_failed", "status", 401, "reason", "rotated_or_revoked")
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	s.publish(ctx, user, "token_refreshed")
	l.Info("refresh_successful", "username", user.Username)
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// Logout revokes whatever tokens the caller presented. Missing or
// already-dead tokens are not errors: logging out twice succeeds.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	if refreshToken != "" {
		if err := s.Repo.RevokeRefreshByDigest(ctx, tokens.Digest(refreshToken)); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}

	if accessToken != "" {
		exp, err := s.Codec.AccessExpiry(accessToken)
		if err == nil {
			digest := tokens.Digest(accessToken)
			revoked, err := s.Repo.IsTokenRevoked(ctx, digest)
			if err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			if !revoked {
				if err := s.Repo.AddRevokedToken(ctx, digest, exp); err != nil {
					return fmt.Errorf("logout: %w", err)
				}
			}
		}
	}

	l.Info("logout_successful")
	return nil
}

func (s *AuthService) publish(ctx context.Context, user *models.User, eventType string) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := s.Events.Publish(ctx, fmt.Sprint(user.ID), map[string]any{
		"type":     eventType,
		"user_id":  user.ID,
		"username": user.Username,
	})
	if err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", eventType, "error", err)
	}
}
