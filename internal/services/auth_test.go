package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashimkarki/inventory-service/internal/models"
	"github.com/ashimkarki/inventory-service/internal/repositories"
	"github.com/ashimkarki/inventory-service/internal/services"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

func validRegistration() validation.RegistrationInput {
	return validation.RegistrationInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("successful registration", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		in := validRegistration()
		mockReader.EXPECT().GetByUsername(gomock.Any(), in.Username).Return(nil, nil)
		mockReader.EXPECT().GetByEmail(gomock.Any(), in.Email).Return(nil, nil)
		mockWriter.EXPECT().
			Save(gomock.Any(), in.Username, in.Email, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, hash string) (int64, error) {
				// The stored secret must be a bcrypt hash of the raw password.
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)))
				return int64(11), nil
			})

		userID, err := svc.Register(context.Background(), in)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), userID)
	})

	t.Run("field validation failure skips all reads and writes", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		in := validRegistration()
		in.Username = "a!"
		in.Password = "short"
		in.ConfirmPassword = "other"

		_, err := svc.Register(context.Background(), in)
		verrs, ok := validation.AsErrors(err)
		assert.True(t, ok)
		assert.Equal(t, validation.Errors{
			"Username must be at least 3 characters",
			"Password must be at least 6 characters",
			"Passwords do not match",
		}, verrs)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		in := validRegistration()
		mockReader.EXPECT().
			GetByUsername(gomock.Any(), in.Username).
			Return(&models.UserDB{UserID: 1, Username: in.Username}, nil)

		_, err := svc.Register(context.Background(), in)
		verrs, ok := validation.AsErrors(err)
		assert.True(t, ok)
		assert.Equal(t, validation.Errors{"Username already exists"}, verrs)
	})

	t.Run("constraint backstop maps to validation error", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		in := validRegistration()
		mockReader.EXPECT().GetByUsername(gomock.Any(), in.Username).Return(nil, nil)
		mockReader.EXPECT().GetByEmail(gomock.Any(), in.Email).Return(nil, nil)
		mockWriter.EXPECT().
			Save(gomock.Any(), in.Username, in.Email, gomock.Any()).
			Return(int64(0), repositories.ErrUsernameExists)

		_, err := svc.Register(context.Background(), in)
		verrs, ok := validation.AsErrors(err)
		assert.True(t, ok)
		assert.Equal(t, validation.Errors{"Username already exists"}, verrs)
	})

	t.Run("reader error propagates", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		in := validRegistration()
		mockReader.EXPECT().GetByUsername(gomock.Any(), in.Username).Return(nil, errors.New("db error"))

		_, err := svc.Register(context.Background(), in)
		assert.EqualError(t, err, "db error")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	password := "secret123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	stored := &models.UserDB{UserID: 7, Username: "alice", PasswordHash: string(hashed)}

	tests := []struct {
		name      string
		username  string
		password  string
		user      *models.UserDB
		readerErr error
		wantErr   error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: password,
			user:     stored,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "nope000",
			user:     stored,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "unknown user gets the same error",
			username: "mallory",
			password: password,
			user:     nil,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			username:  "alice",
			password:  password,
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			svc := services.NewAuthService(mockReader, mockWriter)

			mockReader.EXPECT().
				GetByUsername(gomock.Any(), tt.username).
				Return(tt.user, tt.readerErr)

			user, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(7), user.UserID)
			}
		})
	}

	t.Run("missing fields are validation errors", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		_, err := svc.Login(context.Background(), "", "")
		verrs, ok := validation.AsErrors(err)
		assert.True(t, ok)
		assert.Equal(t, validation.Errors{"Username is required", "Password is required"}, verrs)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	current := "oldsecret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(current), bcrypt.DefaultCost)
	stored := &models.UserDB{UserID: 7, PasswordHash: string(hashed)}

	t.Run("success", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(stored, nil)
		mockWriter.EXPECT().
			UpdatePassword(gomock.Any(), int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, hash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")))
				return nil
			})

		err := svc.ChangePassword(context.Background(), 7, current, "newsecret", "newsecret")
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(stored, nil)

		err := svc.ChangePassword(context.Background(), 7, "wrong", "newsecret", "newsecret")
		assert.ErrorIs(t, err, services.ErrWrongPassword)
	})

	t.Run("short new password rejected before any read", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		err := svc.ChangePassword(context.Background(), 7, current, "tiny", "tiny")
		verrs, ok := validation.AsErrors(err)
		assert.True(t, ok)
		assert.Equal(t, validation.Errors{"New password must be at least 6 characters"}, verrs)
	})
}

func TestAuthService_UpdateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, nil)
		mockWriter.EXPECT().UpdateEmail(gomock.Any(), int64(7), "new@example.com").Return(nil)

		assert.NoError(t, svc.UpdateEmail(context.Background(), 7, "new@example.com"))
	})

	t.Run("email owned by another user", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().
			GetByEmail(gomock.Any(), "taken@example.com").
			Return(&models.UserDB{UserID: 2}, nil)

		err := svc.UpdateEmail(context.Background(), 7, "taken@example.com")
		verrs, ok := validation.AsErrors(err)
		assert.True(t, ok)
		assert.Equal(t, validation.Errors{"Email already registered to another user"}, verrs)
	})

	t.Run("keeping own email is allowed", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		mockReader.EXPECT().
			GetByEmail(gomock.Any(), "mine@example.com").
			Return(&models.UserDB{UserID: 7}, nil)
		mockWriter.EXPECT().UpdateEmail(gomock.Any(), int64(7), "mine@example.com").Return(nil)

		assert.NoError(t, svc.UpdateEmail(context.Background(), 7, "mine@example.com"))
	})

	t.Run("bad format", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter)

		err := svc.UpdateEmail(context.Background(), 7, "not-an-email")
		verrs, ok := validation.AsErrors(err)
		assert.True(t, ok)
		assert.Equal(t, validation.Errors{"Invalid email format"}, verrs)
	})
}

func TestAuthService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	svc := services.NewAuthService(mockReader, mockWriter)

	mockReader.EXPECT().GetByUsername(gomock.Any(), "free_name").Return(nil, nil)
	available, err := svc.UsernameAvailable(context.Background(), "free_name")
	assert.NoError(t, err)
	assert.True(t, available)

	mockReader.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(&models.UserDB{UserID: 1}, nil)
	available, err = svc.UsernameAvailable(context.Background(), "alice")
	assert.NoError(t, err)
	assert.False(t, available)

	// Empty username and malformed email never hit the repository.
	available, err = svc.UsernameAvailable(context.Background(), "")
	assert.NoError(t, err)
	assert.False(t, available)

	available, err = svc.EmailAvailable(context.Background(), "not-an-email")
	assert.NoError(t, err)
	assert.False(t, available)

	mockReader.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, nil)
	available, err = svc.EmailAvailable(context.Background(), "new@example.com")
	assert.NoError(t, err)
	assert.True(t, available)
}
