package handler

import (
	"github.com/Emma-Lee-123/Mylist-Functions/internal/model"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/server"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/service"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/validation"
	"github.com/labstack/echo/v4"
)

// AddTaskRequest is the JSON body of POST /tasks/add.
type AddTaskRequest struct {
	UserID   int64  `json:"userId" validate:"gt=0"`
	TaskName string `json:"taskName" validate:"notblank"`
}

func (r *AddTaskRequest) Validate() error           { return validation.Struct(r) }
func (r *AddTaskRequest) RequiresBody() bool        { return true }
func (r *AddTaskRequest) ValidationMessage() string { return service.MsgInvalidTaskData }

// ListTasksRequest carries the userId path parameter.
type ListTasksRequest struct {
	UserID int64 `param:"userId" validate:"gt=0"`
}

func (r *ListTasksRequest) Validate() error           { return validation.Struct(r) }
func (r *ListTasksRequest) ValidationMessage() string { return service.MsgInvalidUserID }

// SetTaskCompletedRequest is the JSON body of PUT /tasks/complete.
// A missing isCompleted decodes as false.
type SetTaskCompletedRequest struct {
	ID          int64 `json:"id" validate:"gt=0"`
	IsCompleted bool  `json:"isCompleted"`
}

func (r *SetTaskCompletedRequest) Validate() error           { return validation.Struct(r) }
func (r *SetTaskCompletedRequest) RequiresBody() bool        { return true }
func (r *SetTaskCompletedRequest) ValidationMessage() string { return service.MsgInvalidTaskData }

// DeleteTaskRequest carries the taskId path parameter.
type DeleteTaskRequest struct {
	TaskID int64 `param:"taskId" validate:"gt=0"`
}

func (r *DeleteTaskRequest) Validate() error           { return validation.Struct(r) }
func (r *DeleteTaskRequest) ValidationMessage() string { return service.MsgInvalidTaskID }

// TaskHandler serves the /tasks routes.
type TaskHandler struct {
	Handler
	tasks *service.TaskService
}

// NewTaskHandler returns a TaskHandler using tasks.
func NewTaskHandler(s *server.Server, tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{
		Handler: NewHandler(s),
		tasks:   tasks,
	}
}

// AddTask stores a new task and returns it with its generated id.
func (h *TaskHandler) AddTask(c echo.Context, req *AddTaskRequest) (*model.Task, error) {
	return h.tasks.AddTask(c.Request().Context(), req.UserID, req.TaskName)
}

// ListTasksByUser returns the user's tasks, an empty list when there are none.
func (h *TaskHandler) ListTasksByUser(c echo.Context, req *ListTasksRequest) ([]model.Task, error) {
	return h.tasks.ListTasksByUser(c.Request().Context(), req.UserID)
}

// SetTaskCompleted answers true once the flag is stored.
func (h *TaskHandler) SetTaskCompleted(c echo.Context, req *SetTaskCompletedRequest) (bool, error) {
	if err := h.tasks.SetTaskCompleted(c.Request().Context(), req.ID, req.IsCompleted); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteTask answers true once the row is gone.
func (h *TaskHandler) DeleteTask(c echo.Context, req *DeleteTaskRequest) (bool, error) {
	if err := h.tasks.DeleteTask(c.Request().Context(), req.TaskID); err != nil {
		return false, err
	}
	return true, nil
}
