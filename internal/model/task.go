// Package model holds the persisted entities.
//
// JSON field names are lower camel case and empty optional fields are
// omitted, which is the wire shape clients of the API expect.
package model

import "time"

// Task is a row of the tasks table.
//
// List queries project only ID, TaskName and IsCompleted; the remaining
// fields stay zero and drop out of the JSON.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId,omitempty"`
	TaskName    string     `json:"taskName"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`

	// Category is stored but no operation reads or writes it yet.
	Category *string `json:"category,omitempty"`
}
