package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-lead-keeper/internal/crypto"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification with opportunistic
// hash upgrades, and the bearer-token lifecycle.
type authService struct {
	// userRepository is the credential store.
	userRepository store.UserRepository

	// passwordPolicy hashes new passwords and verifies stored hashes of any
	// supported scheme.
	passwordPolicy crypto.PasswordPolicy

	// tokenService issues and validates bearer tokens.
	tokenService crypto.TokenService

	// now is the clock used for created_at stamps.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService. The returned service is safe
// for concurrent use; all state is read-only after construction.
func NewAuthService(userRepository store.UserRepository, passwordPolicy crypto.PasswordPolicy, tokenService crypto.TokenService, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		passwordPolicy: passwordPolicy,
		tokenService:   tokenService,
		now:            time.Now,
		logger:         logger,
	}
}

// RegisterUser hashes the password with the current scheme and stores the
// new account.
//
// Returns the persisted user or:
//   - ErrPasswordHashing if hashing fails.
//   - store.ErrUserAlreadyExists if the username or email is taken.
//   - A wrapped storage error for anything else.
func (a *authService) RegisterUser(ctx context.Context, in models.UserCreate) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := a.passwordPolicy.Hash(in.Password)
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    a.now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			log.Info().Str("username", in.Username).Msg("username or email already taken")
			return models.User{}, err
		}
		log.Err(err).Str("username", in.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// An unknown username and a wrong password both yield
// ErrIncorrectCredentials. When the stored hash is flagged by the password
// policy, the plaintext is re-hashed and persisted before returning.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Info().Str("username", credentials.Username).Msg("login for unknown user")
			return models.User{}, ErrIncorrectCredentials
		}
		log.Err(err).Str("username", credentials.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.passwordPolicy.Verify(credentials.Password, foundUser.PasswordHash) {
		log.Info().Int64("id", foundUser.ID).Str("username", foundUser.Username).Msg("wrong password")
		return models.User{}, ErrIncorrectCredentials
	}

	if a.passwordPolicy.NeedsUpgrade(foundUser.PasswordHash) {
		upgraded, err := a.upgradePasswordHash(ctx, foundUser, credentials.Password)
		if err != nil {
			return models.User{}, err
		}
		foundUser = upgraded
	}

	return foundUser, nil
}

func (a *authService) upgradePasswordHash(ctx context.Context, user models.User, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := a.passwordPolicy.Hash(password)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("password re-hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	if err = a.userRepository.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("storing upgraded password hash failed")
		return models.User{}, fmt.Errorf("storing upgraded password hash failed: %w", err)
	}

	log.Info().Int64("id", user.ID).Msg("password hash upgraded")
	user.PasswordHash = hash
	return user, nil
}

// CreateToken issues a bearer token whose subject is the username.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := a.tokenService.Issue(user.Username, 0)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("username", user.Username).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Authenticate validates token and loads its subject.
//
// Any token failure, and a subject that no longer exists, yields
// ErrInvalidCredentials. Storage failures are returned wrapped.
func (a *authService) Authenticate(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	username, err := a.tokenService.Validate(token)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Info().Str("username", username).Msg("token subject does not exist")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("token subject lookup failed")
		return models.User{}, fmt.Errorf("token subject lookup failed: %w", err)
	}

	return user, nil
}
