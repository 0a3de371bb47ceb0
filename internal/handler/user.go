package handler

import (
	"strings"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/errs"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/model"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/middleware"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/server"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/service"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/validation"
	"github.com/labstack/echo/v4"
)

// AddUserRequest is the JSON body of POST /users/add.
type AddUserRequest struct {
	UserName string `json:"userName" validate:"notblank"`
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

func (r *AddUserRequest) Validate() error           { return validation.Struct(r) }
func (r *AddUserRequest) RequiresBody() bool        { return true }
func (r *AddUserRequest) ValidationMessage() string { return service.MsgInvalidUserData }

// UserExistsRequest needs at least one of the two parameters.
type UserExistsRequest struct {
	UserName string `query:"userName"`
	Email    string `query:"email"`
}

func (r *UserExistsRequest) Validate() error {
	if strings.TrimSpace(r.UserName) == "" && strings.TrimSpace(r.Email) == "" {
		return validation.CustomValidationErrors{
			{Field: "userName", Message: "userName or email is required"},
		}
	}
	return nil
}

func (r *UserExistsRequest) ValidationMessage() string { return service.MsgNoUserData }

// AuthenticateRequest is the JSON body of POST /users/authenticated.
type AuthenticateRequest struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

func (r *AuthenticateRequest) Validate() error           { return validation.Struct(r) }
func (r *AuthenticateRequest) RequiresBody() bool        { return true }
func (r *AuthenticateRequest) ValidationMessage() string { return service.MsgInvalidUserData }

// UserHandler serves the /users routes.
type UserHandler struct {
	Handler
	users *service.UserService
}

// NewUserHandler returns a UserHandler using users.
func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// AddUser rejects a taken user name or email before inserting. The check
// and the insert are separate statements; the unique constraints catch
// a duplicate that slips in between.
func (h *UserHandler) AddUser(c echo.Context, req *AddUserRequest) (*model.User, error) {
	ctx := c.Request().Context()

	exists, err := h.users.UserNameAndEmailExists(ctx, req.UserName, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		middleware.GetLogger(c).Warn().Str("user_name", req.UserName).Msg("user name or email already in use")
		return nil, errs.NewConflictError(service.MsgUserExists, true, nil)
	}

	return h.users.AddUser(ctx, req.UserName, req.Email, req.Password)
}

// UserExists reports whether the user name or email is taken.
func (h *UserHandler) UserExists(c echo.Context, req *UserExistsRequest) (bool, error) {
	return h.users.UserNameAndEmailExists(c.Request().Context(), req.UserName, req.Email)
}

// Authenticate answers the matching user's id and user name.
func (h *UserHandler) Authenticate(c echo.Context, req *AuthenticateRequest) (*model.User, error) {
	return h.users.AuthenticateUser(c.Request().Context(), req.Email, req.Password)
}
