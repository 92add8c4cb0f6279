package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/notetab/internal/notes/domain"
	"github.com/aussiebroadwan/notetab/internal/notes/store"
	"github.com/aussiebroadwan/notetab/pkg/cryptox"
	"github.com/aussiebroadwan/notetab/pkg/jwtx"
	"github.com/aussiebroadwan/notetab/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

// TokenService authenticates users and issues access tokens carrying their
// tenant and role claims.
type TokenService struct {
	Signer *jwtx.Signer
	Store  store.Store
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      domain.User
}

// Login verifies credentials and issues a signed token. Unknown emails and
// wrong passwords are deliberately indistinguishable to the caller.
func (s *TokenService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", "err", err)
		return LoginResult{}, err
	}

	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		log.Info("login failed", "email", email)
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.Signer.Issue(user.ID, user.TenantID, user.Role.String(), user.Email, time.Now())
	if err != nil {
		log.Error("failed to issue token", "err", err)
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		ExpiresIn: s.Signer.TTL(),
		User:      user,
	}, nil
}
