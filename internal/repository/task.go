package repository

import (
	"context"
	"time"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/database"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// TaskRepository reads and writes rows of the tasks table.
type TaskRepository struct {
	db database.DBTX
}

// NewTaskRepository returns a TaskRepository running its statements on db.
func NewTaskRepository(db database.DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

const insertTask = `
INSERT INTO tasks (user_id, task_name)
VALUES ($1, $2)
RETURNING id, is_completed, created_at`

// Create inserts a task for userID and returns it with the store-assigned
// id, completion flag and creation time.
func (r *TaskRepository) Create(ctx context.Context, userID int64, taskName string) (*model.Task, error) {
	task := &model.Task{UserID: userID, TaskName: taskName}

	var createdAt time.Time
	err := r.db.QueryRow(ctx, insertTask, userID, taskName).Scan(&task.ID, &task.IsCompleted, &createdAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert task")
	}
	task.CreatedAt = &createdAt

	return task, nil
}

const selectTasksByUser = `
SELECT id, task_name, is_completed
FROM tasks
WHERE user_id = $1
ORDER BY id`

// ListByUser returns every task owned by userID. A user without tasks
// yields an empty, non-nil slice.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, selectTasksByUser, userID)
	if err != nil {
		return nil, errors.Wrap(err, "select tasks by user")
	}

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Task, error) {
		var t model.Task
		err := row.Scan(&t.ID, &t.TaskName, &t.IsCompleted)
		return t, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan tasks")
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return tasks, nil
}

const updateTaskCompleted = `UPDATE tasks SET is_completed = $1 WHERE id = $2`

// SetCompleted sets the completion flag of task id. It reports whether a
// row was affected; writing the value a row already has still counts.
func (r *TaskRepository) SetCompleted(ctx context.Context, id int64, isCompleted bool) (bool, error) {
	tag, err := r.db.Exec(ctx, updateTaskCompleted, isCompleted, id)
	if err != nil {
		return false, errors.Wrap(err, "update task completion")
	}
	return tag.RowsAffected() == 1, nil
}

const deleteTask = `DELETE FROM tasks WHERE id = $1`

// Delete removes task id and reports whether a row was removed.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteTask, id)
	if err != nil {
		return false, errors.Wrap(err, "delete task")
	}
	return tag.RowsAffected() == 1, nil
}
