// Package auth verifies admin credentials for the login endpoint.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"couriertrack/internal/config"
	apperrors "couriertrack/internal/errors"
)

const RoleAdmin = "admin"

type Principal struct {
	Username string
	Role     string
}

type CredentialProvider interface {
	Verify(ctx context.Context, username, password string) (*Principal, error)
}

// StaticCredentialProvider checks a single configured admin account whose
// password is stored as a bcrypt hash.
type StaticCredentialProvider struct {
	username     string
	passwordHash []byte
	logger       *zap.Logger
}

func NewStaticCredentialProvider(cfg config.AuthConfig, logger *zap.Logger) *StaticCredentialProvider {
	if cfg.AdminPasswordHash == "" {
		logger.Warn("no admin password hash configured, every login will be rejected")
	}
	return &StaticCredentialProvider{
		username:     cfg.AdminUsername,
		passwordHash: []byte(cfg.AdminPasswordHash),
		logger:       logger,
	}
}

func (p *StaticCredentialProvider) Verify(ctx context.Context, username, password string) (*Principal, error) {
	username = strings.TrimSpace(username)
	var details []apperrors.ValidationDetail
	if username == "" {
		details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username is required"})
	}
	if password == "" {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password is required"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("username and password are required", details...)
	}

	if len(p.passwordHash) == 0 {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(p.username)) == 1
	err := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		p.logger.Error("admin password hash is unusable", zap.Error(err))
	}
	if !userOK || err != nil {
		p.logger.Info("login rejected", zap.String("username", username))
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	return &Principal{Username: p.username, Role: RoleAdmin}, nil
}
