package repository

import (
	"context"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/database"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// UserRepository reads and writes rows of the users table.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository returns a UserRepository running its statements on db.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const insertUser = `
INSERT INTO users (user_name, email, password)
VALUES ($1, $2, $3)
RETURNING id`

// Create inserts a user and returns it with the store-assigned id.
// Duplicate user names or emails surface as a unique violation from the
// store's constraints.
func (r *UserRepository) Create(ctx context.Context, userName, email, password string) (*model.User, error) {
	user := &model.User{UserName: userName, Email: email, Password: password}

	if err := r.db.QueryRow(ctx, insertUser, userName, email, password).Scan(&user.ID); err != nil {
		return nil, errors.Wrap(err, "insert user")
	}

	return user, nil
}

const selectUserExists = `
SELECT EXISTS (
	SELECT 1 FROM users WHERE user_name = $1 OR email = $2
)`

// ExistsByUserNameOrEmail reports whether any user has userName or email.
// A blank argument is sent as NULL so it can never match.
func (r *UserRepository) ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, selectUserExists, nullIfBlank(userName), nullIfBlank(email)).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "select user exists")
	}
	return exists, nil
}

const selectUserByCredentials = `
SELECT id, user_name
FROM users
WHERE email = $1 AND password = $2`

// FindByCredentials returns the id and user name of the user whose email
// and password both match exactly, or nil when none does.
func (r *UserRepository) FindByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx, selectUserByCredentials, email, password).Scan(&u.ID, &u.UserName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "select user by credentials")
	}
	return &u, nil
}
