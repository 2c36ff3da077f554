package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-card-keeper/internal/config"
	"github.com/MKhiriev/go-card-keeper/internal/crypto"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/store"
	"github.com/MKhiriev/go-card-keeper/internal/utils"
	"github.com/MKhiriev/go-card-keeper/models"
)

// authService is the concrete implementation of AuthService. It handles
// account registration, credential verification and the session token
// lifecycle, using a UserRepository and SessionRepository for persistence
// and Argon2id digests for passwords.
//
// Tokens are opaque: all session state lives server-side, so revocation is
// a row deletion and needs no signing keys.
type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository

	// hasher derives and verifies the stored password digests.
	hasher crypto.PasswordHasher

	// tokens generates the opaque token values handed out at login.
	tokens *utils.TokenGenerator

	// tokenDuration controls how long a newly issued session remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, sessions store.SessionRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    users,
		sessionRepository: sessions,
		hasher:            crypto.NewPasswordHasher(),
		tokens:            utils.NewTokenGenerator(),
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// Register creates a new account.
//
// It validates that username, email and password are all non-empty, derives
// the password digest under a fresh salt, and delegates persistence to the
// UserRepository.
//
// Returns the persisted user (with derived UserID and SignupTime) or:
//   - ErrInvalidDataProvided if any field is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameAlreadyExists).
func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || email == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	salt, err := a.hasher.GenerateSalt()
	if err != nil {
		log.Err(err).Msg("salt generation failed")
		return models.User{}, fmt.Errorf("salt generation failed: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: a.hasher.Digest(password, salt),
		PasswordSalt: salt,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates the account addressed by email and issues a session.
//
// Returns the stored session (its Token field is the value handed to the
// client) or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - A wrapped storage error if the account lookup fails (e.g.
//     store.ErrUserNotFound).
//   - ErrWrongPassword if the password digest does not match.
func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	user, err := a.verifyPassword(ctx, email, password)
	if err != nil {
		return models.Session{}, err
	}

	now := time.Now()
	session := models.Session{
		Token:     a.tokens.Generate(),
		UserID:    user.UserID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(a.tokenDuration).Unix(),
	}

	if err := a.sessionRepository.CreateSession(ctx, session); err != nil {
		log.Err(err).Uint64("user_id", user.UserID).Msg("session creation ended with error")
		return models.Session{}, fmt.Errorf("session creation ended with error: %w", err)
	}

	return session, nil
}

// ChangePassword verifies the old password and re-persists the account
// record with a digest of the new password under a fresh salt. Existing
// sessions stay valid.
func (a *authService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		log.Error().Msg("empty new password provided")
		return ErrInvalidDataProvided
	}

	user, err := a.verifyPassword(ctx, email, oldPassword)
	if err != nil {
		return err
	}

	salt, err := a.hasher.GenerateSalt()
	if err != nil {
		log.Err(err).Msg("salt generation failed")
		return fmt.Errorf("salt generation failed: %w", err)
	}
	user.PasswordSalt = salt
	user.PasswordHash = a.hasher.Digest(newPassword, salt)

	if err := a.userRepository.UpdateUser(ctx, user); err != nil {
		log.Err(err).Uint64("user_id", user.UserID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}

// DeleteAccount verifies the password and removes the account together with
// every deck and session it owns.
func (a *authService) DeleteAccount(ctx context.Context, email, password string) error {
	log := logger.FromContext(ctx)

	user, err := a.verifyPassword(ctx, email, password)
	if err != nil {
		return err
	}

	if err := a.userRepository.DeleteUser(ctx, user); err != nil {
		log.Err(err).Uint64("user_id", user.UserID).Msg("account deletion ended with error")
		return fmt.Errorf("account deletion ended with error: %w", err)
	}

	return nil
}

// ValidateToken resolves an access token to the owning user id.
//
// Expiry is enforced lazily: an expired session found here is deleted
// before the token is rejected. Unknown, expired and revoked tokens are all
// reported as ErrBadAccessToken; the caller learns nothing else.
func (a *authService) ValidateToken(ctx context.Context, token string) (uint64, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return 0, ErrBadAccessToken
	}

	session, err := a.sessionRepository.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return 0, ErrBadAccessToken
		}
		log.Err(err).Msg("session lookup ended with error")
		return 0, fmt.Errorf("session lookup ended with error: %w", err)
	}

	if session.Expired(time.Now()) {
		// reclaim the row; best-effort, the rejection stands either way
		if delErr := a.sessionRepository.DeleteSession(ctx, token); delErr != nil && !errors.Is(delErr, store.ErrSessionNotFound) {
			log.Err(delErr).Msg("expired session cleanup ended with error")
		}
		return 0, ErrBadAccessToken
	}

	return session.UserID, nil
}

// Logout revokes the session addressed by token. Revoking an unknown or
// already-expired token is rejected the same way validation would reject it.
func (a *authService) Logout(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return ErrBadAccessToken
	}

	if err := a.sessionRepository.DeleteSession(ctx, token); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return ErrBadAccessToken
		}
		log.Err(err).Msg("session deletion ended with error")
		return fmt.Errorf("session deletion ended with error: %w", err)
	}

	return nil
}

// verifyPassword resolves email to an account and checks password against
// its stored digest. Shared by every operation that authenticates with
// credentials instead of a token.
func (a *authService) verifyPassword(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Msg("invalid credentials data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordSalt, user.PasswordHash) {
		log.Error().Uint64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return user, nil
}
