package service

import (
	"context"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/model"
)

type fakeTaskStore struct {
	calls int

	task    *model.Task
	tasks   []model.Task
	changed bool
	err     error
}

func (f *fakeTaskStore) Create(_ context.Context, userID int64, taskName string) (*model.Task, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.task, nil
}

func (f *fakeTaskStore) ListByUser(context.Context, int64) ([]model.Task, error) {
	f.calls++
	return f.tasks, f.err
}

func (f *fakeTaskStore) SetCompleted(context.Context, int64, bool) (bool, error) {
	f.calls++
	return f.changed, f.err
}

func (f *fakeTaskStore) Delete(context.Context, int64) (bool, error) {
	f.calls++
	return f.changed, f.err
}

type fakeUserStore struct {
	calls int

	users  map[string]*model.User // by email
	create error
	find   error
	exists error
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, userName, email, password string) (*model.User, error) {
	f.calls++
	if f.create != nil {
		return nil, f.create
	}
	u := &model.User{ID: f.nextID, UserName: userName, Email: email, Password: password}
	f.nextID++
	f.users[email] = u
	return u, nil
}

func (f *fakeUserStore) ExistsByUserNameOrEmail(_ context.Context, userName, email string) (bool, error) {
	f.calls++
	if f.exists != nil {
		return false, f.exists
	}
	for _, u := range f.users {
		if (userName != "" && u.UserName == userName) || (email != "" && u.Email == email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) FindByCredentials(_ context.Context, email, password string) (*model.User, error) {
	f.calls++
	if f.find != nil {
		return nil, f.find
	}
	u, ok := f.users[email]
	if !ok || u.Password != password {
		return nil, nil
	}
	return &model.User{ID: u.ID, UserName: u.UserName}, nil
}
