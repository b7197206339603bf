package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/models"
	"github.com/ashimkarki/inventory-service/internal/repositories"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

// Error variables
var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password, so login failures cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (int64, error)
	UpdateEmail(ctx context.Context, userID int64, email string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// AuthService handles registration, login and profile changes.
type AuthService struct {
	reader UserReader
	writer UserWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter) *AuthService {
	return &AuthService{reader: reader, writer: writer}
}

// Register validates the registration input, checks uniqueness and
// creates the user with a bcrypt password hash. All validation runs
// before any write; a non-empty message list means nothing was stored.
func (svc *AuthService) Register(ctx context.Context, in validation.RegistrationInput) (int64, error) {
	errs := validation.Registration(in)

	// Uniqueness checks follow the field checks, username first. The
	// table's unique constraints remain the backstop for concurrent
	// identical registrations.
	if len(errs) == 0 {
		existing, err := svc.reader.GetByUsername(ctx, in.Username)
		if err != nil {
			logger.Log.Errorw("failed to check username", "err", err)
			return 0, err
		}
		if existing != nil {
			errs = append(errs, "Username already exists")
		}
	}
	if len(errs) == 0 {
		existing, err := svc.reader.GetByEmail(ctx, in.Email)
		if err != nil {
			logger.Log.Errorw("failed to check email", "err", err)
			return 0, err
		}
		if existing != nil {
			errs = append(errs, "Email already registered")
		}
	}
	if len(errs) > 0 {
		return 0, errs
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return 0, err
	}

	userID, err := svc.writer.Save(ctx, in.Username, in.Email, string(hashed))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUsernameExists):
			return 0, validation.Errors{"Username already exists"}
		case errors.Is(err, repositories.ErrEmailExists):
			return 0, validation.Errors{"Email already registered"}
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return 0, err
	}

	return userID, nil
}

// Login authenticates a user by username and password.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*models.UserDB, error) {
	var errs validation.Errors
	if username == "" {
		errs = append(errs, "Username is required")
	}
	if password == "" {
		errs = append(errs, "Password is required")
	}
	if len(errs) > 0 {
		return nil, errs
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Profile returns the user record for the given id.
func (svc *AuthService) Profile(ctx context.Context, userID int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateEmail replaces the user's email after checking the format and
// that no other user owns the address.
func (svc *AuthService) UpdateEmail(ctx context.Context, userID int64, email string) error {
	if errs := validation.Email(email); len(errs) > 0 {
		return errs
	}

	owner, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check email owner", "err", err)
		return err
	}
	if owner != nil && owner.UserID != userID {
		return validation.Errors{"Email already registered to another user"}
	}

	if err := svc.writer.UpdateEmail(ctx, userID, email); err != nil {
		if errors.Is(err, repositories.ErrEmailExists) {
			return validation.Errors{"Email already registered to another user"}
		}
		logger.Log.Errorw("failed to update email", "user_id", userID, "err", err)
		return err
	}
	return nil
}

// ChangePassword verifies the current password and replaces the hash.
func (svc *AuthService) ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error {
	if errs := validation.PasswordChange(current, newPassword, confirm); len(errs) > 0 {
		return errs
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	return svc.writer.UpdatePassword(ctx, userID, string(hashed))
}

// UsernameAvailable reports whether the username is unclaimed. Used by
// the live registration check.
func (svc *AuthService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// EmailAvailable reports whether the email is unclaimed. Malformed
// addresses count as unavailable.
func (svc *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	if !validation.ValidEmail(email) {
		return false, nil
	}
	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}
