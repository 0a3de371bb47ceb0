package service

import (
	"context"
	"strings"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/errs"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/model"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/sqlerr"
	"github.com/rs/zerolog"
)

// UserStore is the persistence UserService needs. *repository.UserRepository
// implements it.
type UserStore interface {
	Create(ctx context.Context, userName, email, password string) (*model.User, error)
	ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error)
	FindByCredentials(ctx context.Context, email, password string) (*model.User, error)
}

// UserService handles registration, existence checks and sign-in.
type UserService struct {
	store UserStore
}

// NewUserService returns a UserService backed by store.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// AddUser inserts a user. It does not look for an existing user first; the
// unique constraints on user_name and email reject duplicates, including
// ones that race past the handler's existence check.
func (s *UserService) AddUser(ctx context.Context, userName, email, password string) (*model.User, error) {
	if blank(userName) || blank(email) || blank(password) {
		return nil, errs.NewBadRequestError(MsgInvalidUserData, true, nil, nil)
	}

	user, err := s.store.Create(ctx, userName, email, password)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			zerolog.Ctx(ctx).Warn().Str("user_name", userName).Msg("user name or email already taken")
			return nil, errs.NewConflictError(MsgUserExists, true, nil)
		}
		zerolog.Ctx(ctx).Error().Err(err).Str("user_name", userName).Msg("failed to add user")
		return nil, errs.NewBackendError("add user", err)
	}

	zerolog.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("user added")
	return user, nil
}

// UserNameAndEmailExists reports whether any user has userName or any user
// has email. Either may be blank; when both are, the answer is false and
// the store is not queried.
func (s *UserService) UserNameAndEmailExists(ctx context.Context, userName, email string) (bool, error) {
	if blank(userName) && blank(email) {
		return false, nil
	}

	exists, err := s.store.ExistsByUserNameOrEmail(ctx, userName, email)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to check user existence")
		return false, errs.NewBackendError("check user exists", err)
	}

	return exists, nil
}

// AuthenticateUser returns the id and user name of the user with exactly
// this email and password.
//
// A mismatch is a 401 *errs.HTTPError. A store failure is an
// *errs.BackendError, so callers can tell the two apart.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*model.User, error) {
	if blank(email) || blank(password) {
		return nil, errs.NewBadRequestError(MsgInvalidUserData, true, nil, nil)
	}

	user, err := s.store.FindByCredentials(ctx, email, password)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("authentication backend failure")
		return nil, errs.NewBackendError("authenticate user", err)
	}
	if user == nil {
		zerolog.Ctx(ctx).Warn().Msg("authentication failed")
		return nil, errs.NewUnauthorizedError(MsgAuthFailed, true)
	}

	return &model.User{ID: user.ID, UserName: user.UserName}, nil
}
