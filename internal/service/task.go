package service

import (
	"context"
	"strings"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/errs"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/model"
	"github.com/rs/zerolog"
)

// TaskStore is the persistence TaskService needs. *repository.TaskRepository
// implements it.
type TaskStore interface {
	Create(ctx context.Context, userID int64, taskName string) (*model.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Task, error)
	SetCompleted(ctx context.Context, id int64, isCompleted bool) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TaskService enforces the task rules and turns store outcomes into API errors.
type TaskService struct {
	store TaskStore
}

// NewTaskService returns a TaskService backed by store.
func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// AddTask creates a task named taskName for userID. The returned task
// carries the store-assigned id and is not completed.
func (s *TaskService) AddTask(ctx context.Context, userID int64, taskName string) (*model.Task, error) {
	if userID <= 0 || strings.TrimSpace(taskName) == "" {
		return nil, errs.NewBadRequestError(MsgInvalidTaskData, true, nil, nil)
	}

	task, err := s.store.Create(ctx, userID, taskName)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("failed to add task")
		return nil, errs.NewBackendError("add task", err)
	}

	zerolog.Ctx(ctx).Info().Int64("task_id", task.ID).Int64("user_id", userID).Msg("task added")
	return task, nil
}

// ListTasksByUser returns the tasks of userID. A non-positive id is
// rejected before the store is contacted.
func (s *TaskService) ListTasksByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	if userID <= 0 {
		return nil, errs.NewBadRequestError(MsgInvalidUserID, true, nil, nil)
	}

	tasks, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("failed to list tasks")
		return nil, errs.NewBackendError("list tasks", err)
	}

	return tasks, nil
}

// SetTaskCompleted sets the completion flag of taskID. Setting the value a
// task already has succeeds; an unknown id is a not found error.
func (s *TaskService) SetTaskCompleted(ctx context.Context, taskID int64, isCompleted bool) error {
	if taskID <= 0 {
		return errs.NewBadRequestError(MsgInvalidTaskData, true, nil, nil)
	}

	updated, err := s.store.SetCompleted(ctx, taskID, isCompleted)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("task_id", taskID).Msg("failed to update task completion")
		return errs.NewBackendError("set task completed", err)
	}
	if !updated {
		return errs.NewNotFoundError(MsgTaskNotFound, true, nil)
	}

	zerolog.Ctx(ctx).Info().Int64("task_id", taskID).Bool("is_completed", isCompleted).Msg("task completion updated")
	return nil
}

// DeleteTask removes taskID. An unknown id is a not found error.
func (s *TaskService) DeleteTask(ctx context.Context, taskID int64) error {
	if taskID <= 0 {
		return errs.NewBadRequestError(MsgInvalidTaskID, true, nil, nil)
	}

	deleted, err := s.store.Delete(ctx, taskID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("task_id", taskID).Msg("failed to delete task")
		return errs.NewBackendError("delete task", err)
	}
	if !deleted {
		return errs.NewNotFoundError(MsgTaskNotFound, true, nil)
	}

	zerolog.Ctx(ctx).Info().Int64("task_id", taskID).Msg("task deleted")
	return nil
}
