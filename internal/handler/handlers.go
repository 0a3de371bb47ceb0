package handler

import (
	"github.com/Emma-Lee-123/Mylist-Functions/internal/server"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/service"
)

// Handlers groups every HTTP handler so the router takes one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Tasks   *TaskHandler
	Users   *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Tasks:   NewTaskHandler(s, services.Tasks),
		Users:   NewUserHandler(s, services.Users),
	}
}
