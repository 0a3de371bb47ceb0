// Package service contains the business logic.
//
// It sits between the handler and repository layers: it re-checks the
// business rules (positive ids, non-blank names), issues exactly one
// repository call per operation and turns every failure into a typed error
// so handlers never have to guess what a nil or false meant.
package service

import (
	"github.com/Emma-Lee-123/Mylist-Functions/internal/repository"
)

// Client-visible messages shared with the handler layer.
const (
	MsgInvalidTaskData = "Invalid task item data."
	MsgInvalidUserID   = "Invalid UserId."
	MsgInvalidTaskID   = "Invalid TaskId."
	MsgInvalidUserData = "Invalid user data."
	MsgNoUserData      = "No user data provided."
	MsgTaskNotFound    = "Task not found."
	MsgUserExists      = "UserName or Email already exists."
	MsgAuthFailed      = "Authentication failed."
)

// Services groups the business services the handlers call.
type Services struct {
	Tasks *TaskService
	Users *UserService
}

// NewServices builds every service on top of repos.
func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Tasks: NewTaskService(repos.Tasks),
		Users: NewUserService(repos.Users),
	}
}
