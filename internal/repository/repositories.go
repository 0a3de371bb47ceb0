// Package repository handles all interactions with the database.
//
// Every method issues exactly one parameterized SQL statement against the
// pool it was built with and returns driver errors wrapped with the
// statement's purpose. Classifying those errors is the service layer's job.
package repository

import (
	"github.com/Emma-Lee-123/Mylist-Functions/internal/database"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Tasks *TaskRepository
	Users *UserRepository
}

// NewRepositories builds every repository on top of db, normally the
// server's pool.
func NewRepositories(db database.DBTX) *Repositories {
	return &Repositories{
		Tasks: NewTaskRepository(db),
		Users: NewUserRepository(db),
	}
}
