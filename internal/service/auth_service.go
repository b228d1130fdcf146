package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/config"
	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/pkg/jwt"
	"github.com/sristy17/sgay-v1/pkg/redis"
)

var (
	ErrInvalidRole           = errors.New("role must be admin or officer")
	ErrRevocationUnavailable = errors.New("token revocation requires redis")
)

// AuthService token issuing and revocation. Identity itself is established by
// the surrounding application; tokens are minted by the admin tool.
type AuthService interface {
	IssueToken(name, role string) (*dto.TokenResponse, error)
	// Logout blacklists the token's id until it expires.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.Config
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService creates an AuthService. rdb may be nil.
func NewAuthService(cfg *config.Config, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

func (s *authService) IssueToken(name, role string) (*dto.TokenResponse, error) {
	if role != model.RoleAdmin && role != model.RoleOfficer {
		return nil, ErrInvalidRole
	}

	token, err := s.jwtMgr.GenerateAccessToken(name, role)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.cfg.Auth.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		s.logger.Warn("logout without redis, token stays valid until expiry", zap.String("jti", jti))
		return ErrRevocationUnavailable
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}
