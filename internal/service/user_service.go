package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/yakoovad/eventhub/internal/auth"
	"github.com/yakoovad/eventhub/internal/model"
	"github.com/yakoovad/eventhub/internal/repository"
	"github.com/yakoovad/eventhub/pkg/logger"
	"go.uber.org/zap"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService() *UserService {
	return &UserService{}
}

func (u *UserService) Register(ctx context.Context, in *model.NewUser) (*model.User, *Error) {
	l := logger.FromContext(ctx)
	l.Info("registering user", zap.String("username", in.Username), zap.String("role", string(in.Role)))

	role, err := model.ParseRole(string(in.Role))
	if err != nil {
		return nil, NewValidationError(map[string]string{"role": err.Error()})
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to register user")
	}

	user := &model.User{
		Username: in.Username,
		Password: hash,
		Name:     in.Name,
		Email:    in.Email,
		Role:     role,
	}

	err = u.users.Create(ctx, user)
	if errors.Is(err, repository.ErrAlreadyExists) {
		l.Warn("username already exists", zap.String("username", in.Username))
		return nil, NewError(ErrorCodeUserExists, "Username already exists").WithKey("user_exists")
	}
	if err != nil {
		l.Error("failed to create user", zap.String("username", in.Username), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to register user")
	}

	l.Debug("user registered", zap.Int64("user_id", user.ID))

	return user, nil
}

// Login checks credentials. Unknown usernames and wrong passwords are indistinguishable to the caller.
func (u *UserService) Login(ctx context.Context, username, password string) (*model.User, *Error) {
	l := logger.FromContext(ctx)

	user, err := u.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		l.Info("login with unknown username", zap.String("username", username))
		return nil, errInvalidCredentials()
	}
	if err != nil {
		l.Error("failed to get user", zap.String("username", username), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to log in")
	}

	if !auth.CheckPassword(user.Password, password) {
		l.Info("login with wrong password", zap.Int64("user_id", user.ID))
		return nil, errInvalidCredentials()
	}

	return user, nil
}

func (u *UserService) GetUser(ctx context.Context, id int64) (*model.User, *Error) {
	user, err := u.users.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(ErrorCodeNotFound, "User not found").WithKey("user_not_found")
	}
	if err != nil {
		logger.FromContext(ctx).Error("failed to get user", zap.Int64("user_id", id), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to get user")
	}
	return user, nil
}

func (u *UserService) WithUserRepo(r repository.UserRepository) *UserService {
	u.users = r
	return u
}

func errInvalidCredentials() *Error {
	return NewError(ErrorCodeInvalidCredentials, "Invalid username or password").WithKey("invalid_credentials")
}
